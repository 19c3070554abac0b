package analytics

import (
	"context"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
)

const (
	defaultTrendDays    = 7
	defaultPopularLimit = 10
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetOverview(ctx context.Context) (*Overview, error)
	GetBookingTrends(ctx context.Context) ([]BookingTrend, error)
	GetPopularMovies(ctx context.Context) ([]PopularMovie, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetOverview(ctx context.Context) (*Overview, error) {
	if s.cacheService != nil {
		var cached Overview
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_ANALYTICS_OVERVIEW, &cached); err == nil {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		go s.cacheService.Set(context.Background(), constants.CACHE_KEY_ANALYTICS_OVERVIEW,
			overview, constants.TTL_ANALYTICS_OVERVIEW)
	}

	return overview, nil
}

func (s *service) GetBookingTrends(ctx context.Context) ([]BookingTrend, error) {
	if s.cacheService != nil {
		var cached []BookingTrend
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_ANALYTICS_TRENDS, &cached); err == nil {
			return cached, nil
		}
	}

	trends, err := s.repo.GetBookingTrends(ctx, defaultTrendDays)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		go s.cacheService.Set(context.Background(), constants.CACHE_KEY_ANALYTICS_TRENDS,
			trends, constants.TTL_ANALYTICS_TRENDS)
	}

	return trends, nil
}

func (s *service) GetPopularMovies(ctx context.Context) ([]PopularMovie, error) {
	if s.cacheService != nil {
		var cached []PopularMovie
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_ANALYTICS_POPULAR, &cached); err == nil {
			return cached, nil
		}
	}

	popular, err := s.repo.GetPopularMovies(ctx, defaultPopularLimit)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		go s.cacheService.Set(context.Background(), constants.CACHE_KEY_ANALYTICS_POPULAR,
			popular, constants.TTL_ANALYTICS_POPULAR)
	}

	return popular, nil
}
