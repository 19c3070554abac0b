package showtimes

import (
	"context"
	"errors"

	"cinebook/internal/shared/constants"
	"cinebook/internal/theaters"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*ShowtimeResponse, error)
	GetShowtime(ctx context.Context, id uuid.UUID) (*ShowtimeResponse, error)
	GetShowtimesForMovie(ctx context.Context, movieID uuid.UUID) ([]ShowtimeListItem, error)
	UpdateShowtime(ctx context.Context, id uuid.UUID, req UpdateShowtimeRequest) (*ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id uuid.UUID) error

	IsSeatAvailable(ctx context.Context, id uuid.UUID, label string) (bool, error)
	HoldSeats(ctx context.Context, id uuid.UUID, userID string, labels []string) error
	ReleaseHolds(ctx context.Context, id uuid.UUID, userID string, labels []string) error
	BlockSeats(ctx context.Context, id uuid.UUID, labels []string) (int64, error)
	UnblockSeats(ctx context.Context, id uuid.UUID, labels []string) (int64, error)
}

// TheaterService resolves screens without importing the theaters wiring
type TheaterService interface {
	GetScreen(ctx context.Context, theaterID uuid.UUID, screenName string) (*theaters.Screen, error)
}

type service struct {
	repo           Repository
	theaterService TheaterService
	holds          *SeatHolds
	cacheService   cache.Service
	log            *logger.Logger
}

func NewService(repo Repository, theaterService TheaterService, holds *SeatHolds) Service {
	return &service{
		repo:           repo,
		theaterService: theaterService,
		holds:          holds,
		log:            logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*ShowtimeResponse, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, err
	}
	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, err
	}

	screen, err := s.theaterService.GetScreen(ctx, theaterID, req.ScreenName)
	if err != nil {
		return nil, err
	}

	// Seat map is generated once here and never regenerated
	seats, err := GenerateSeatMap(screen.Capacity)
	if err != nil {
		return nil, err
	}

	showtime := &Showtime{
		MovieID:    movieID,
		TheaterID:  theaterID,
		ScreenName: screen.Name,
		StartTime:  req.StartTime,
		Seats:      seats,
	}

	if err := s.repo.Create(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.LogShowtimeCreated(ctx, showtime.ID.String(), movieID.String(), len(seats))
	s.invalidateShowtimeCache(ctx)

	resp := showtime.ToResponse(true)
	return &resp, nil
}

func (s *service) GetShowtime(ctx context.Context, id uuid.UUID) (*ShowtimeResponse, error) {
	showtime, err := s.repo.GetByIDWithSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := showtime.ToResponse(true)
	return &resp, nil
}

func (s *service) GetShowtimesForMovie(ctx context.Context, movieID uuid.UUID) ([]ShowtimeListItem, error) {
	if s.cacheService != nil {
		var cached []ShowtimeListItem
		key := constants.BuildShowtimesByMovieKey(movieID.String())
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		key := constants.BuildShowtimesByMovieKey(movieID.String())
		go s.cacheService.Set(context.Background(), key, items, constants.TTL_SHOWTIMES_BY_MOVIE)
	}

	return items, nil
}

func (s *service) UpdateShowtime(ctx context.Context, id uuid.UUID, req UpdateShowtimeRequest) (*ShowtimeResponse, error) {
	showtime, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		showtime.StartTime = *req.StartTime
	}

	if err := s.repo.Update(ctx, showtime); err != nil {
		return nil, err
	}

	s.invalidateShowtimeCache(ctx)

	resp := showtime.ToResponse(false)
	return &resp, nil
}

func (s *service) DeleteShowtime(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountConfirmedBookings(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrShowtimeHasBookings
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateShowtimeCache(ctx)
	return nil
}

func (s *service) IsSeatAvailable(ctx context.Context, id uuid.UUID, label string) (bool, error) {
	seat, err := s.repo.GetSeat(ctx, id, label)
	if err != nil {
		if errors.Is(err, ErrSeatNotFound) {
			// Distinguish a missing showtime from a missing seat
			if _, stErr := s.repo.GetByID(ctx, id); stErr != nil {
				return false, stErr
			}
		}
		return false, err
	}
	return seat.Status == SeatAvailable, nil
}

func (s *service) HoldSeats(ctx context.Context, id uuid.UUID, userID string, labels []string) error {
	// Holds only make sense on seats that are actually claimable
	seats, err := s.repo.GetSeatsByLabels(ctx, id, labels)
	if err != nil {
		return err
	}
	if len(seats) != len(labels) {
		return ErrSeatNotFound
	}
	for _, seat := range seats {
		if seat.Status != SeatAvailable {
			return ErrSeatUnavailable
		}
	}

	return s.holds.Hold(ctx, id.String(), userID, labels)
}

func (s *service) ReleaseHolds(ctx context.Context, id uuid.UUID, userID string, labels []string) error {
	_, err := s.holds.Release(ctx, id.String(), userID, labels)
	return err
}

func (s *service) BlockSeats(ctx context.Context, id uuid.UUID, labels []string) (int64, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return 0, err
	}
	changed, err := s.repo.SetSeatStatus(ctx, id, labels, SeatAvailable, SeatBlocked)
	if err != nil {
		return 0, err
	}
	s.invalidateShowtimeCache(ctx)
	return changed, nil
}

func (s *service) UnblockSeats(ctx context.Context, id uuid.UUID, labels []string) (int64, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return 0, err
	}
	changed, err := s.repo.SetSeatStatus(ctx, id, labels, SeatBlocked, SeatAvailable)
	if err != nil {
		return 0, err
	}
	s.invalidateShowtimeCache(ctx)
	return changed, nil
}

func (s *service) invalidateShowtimeCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	// best effort; stale entries expire via TTL
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SHOWTIMES_ALL)
}
