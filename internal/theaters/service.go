package theaters

import (
	"context"
	"errors"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrTheaterNotFound = errors.New("theater not found")
	ErrScreenNotFound  = errors.New("screen not found")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateTheater(ctx context.Context, req CreateTheaterRequest) (*TheaterResponse, error)
	GetTheaterByID(ctx context.Context, id uuid.UUID) (*TheaterResponse, error)
	GetAllTheaters(ctx context.Context) ([]TheaterResponse, error)
	UpdateTheater(ctx context.Context, id uuid.UUID, req UpdateTheaterRequest) (*TheaterResponse, error)
	DeleteTheater(ctx context.Context, id uuid.UUID) error

	// GetScreen resolves a screen by name within a theater; used when
	// scheduling showtimes.
	GetScreen(ctx context.Context, theaterID uuid.UUID, screenName string) (*Screen, error)
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

func (s *service) CreateTheater(ctx context.Context, req CreateTheaterRequest) (*TheaterResponse, error) {
	theater := &Theater{
		Name:     req.Name,
		Location: req.Location,
	}
	for _, screen := range req.Screens {
		theater.Screens = append(theater.Screens, Screen{
			Name:     screen.Name,
			Capacity: screen.Capacity,
		})
	}

	if err := s.repo.Create(ctx, theater); err != nil {
		return nil, err
	}

	s.invalidateTheaterCache(ctx)

	resp := theater.ToResponse()
	return &resp, nil
}

func (s *service) GetTheaterByID(ctx context.Context, id uuid.UUID) (*TheaterResponse, error) {
	if s.cacheService != nil {
		var cached TheaterResponse
		key := constants.CACHE_KEY_THEATER_DETAIL + id.String()
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	theater, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := theater.ToResponse()

	if s.cacheService != nil {
		key := constants.CACHE_KEY_THEATER_DETAIL + id.String()
		go s.cacheService.Set(context.Background(), key, resp, constants.TTL_THEATER_DETAIL)
	}

	return &resp, nil
}

func (s *service) GetAllTheaters(ctx context.Context) ([]TheaterResponse, error) {
	if s.cacheService != nil {
		var cached []TheaterResponse
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_THEATERS_LIST, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]TheaterResponse, 0, len(result))
	for i := range result {
		responses = append(responses, result[i].ToResponse())
	}

	if s.cacheService != nil {
		go s.cacheService.Set(context.Background(), constants.CACHE_KEY_THEATERS_LIST, responses, constants.TTL_THEATERS_LIST)
	}

	return responses, nil
}

func (s *service) UpdateTheater(ctx context.Context, id uuid.UUID, req UpdateTheaterRequest) (*TheaterResponse, error) {
	theater, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		theater.Name = *req.Name
	}
	if req.Location != nil {
		theater.Location = *req.Location
	}

	if err := s.repo.Update(ctx, theater); err != nil {
		return nil, err
	}

	if len(req.Screens) > 0 {
		screens := make([]Screen, 0, len(req.Screens))
		for _, screen := range req.Screens {
			screens = append(screens, Screen{
				Name:     screen.Name,
				Capacity: screen.Capacity,
			})
		}
		if err := s.repo.ReplaceScreens(ctx, id, screens); err != nil {
			return nil, err
		}
		theater.Screens = screens
	}

	s.invalidateTheaterCache(ctx)

	resp := theater.ToResponse()
	return &resp, nil
}

func (s *service) DeleteTheater(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateTheaterCache(ctx)
	return nil
}

func (s *service) GetScreen(ctx context.Context, theaterID uuid.UUID, screenName string) (*Screen, error) {
	theater, err := s.repo.GetByID(ctx, theaterID)
	if err != nil {
		return nil, err
	}

	screen := theater.FindScreen(screenName)
	if screen == nil {
		return nil, ErrScreenNotFound
	}
	return screen, nil
}

func (s *service) invalidateTheaterCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	// best effort; stale entries expire via TTL
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_THEATERS_ALL)
}
