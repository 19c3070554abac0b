package movies

import (
	"context"
	"errors"
	"math"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrMovieHasShowtimes = errors.New("movie has scheduled showtimes")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error)
	GetAllMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
	ImportPopular(ctx context.Context) (*ImportResult, error)
}

type service struct {
	repo         Repository
	importer     *Importer
	cacheService cache.Service
}

func NewService(repo Repository, importer *Importer) Service {
	return &service{
		repo:     repo,
		importer: importer,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error) {
	movie := &Movie{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Duration:    req.Duration,
		PosterURL:   req.PosterURL,
		ReleaseDate: req.ReleaseDate,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.invalidateMovieCache(ctx)

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	if s.cacheService != nil {
		var cached MovieResponse
		key := constants.BuildMovieDetailKey(id.String())
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := movie.ToResponse()

	if s.cacheService != nil {
		key := constants.BuildMovieDetailKey(id.String())
		go s.cacheService.Set(context.Background(), key, resp, constants.TTL_MOVIE_DETAIL)
	}

	return &resp, nil
}

func (s *service) GetAllMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error) {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	// Only unfiltered listings are cached; searches go to the database
	cacheable := query.Search == "" && query.Genre == ""
	key := constants.BuildMovieListKey(query.Page, query.Limit)

	if cacheable && s.cacheService != nil {
		var cached PaginatedMovies
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	result, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]MovieResponse, 0, len(result))
	for i := range result {
		responses = append(responses, result[i].ToResponse())
	}

	paginated := &PaginatedMovies{
		Movies:     responses,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
	}

	if cacheable && s.cacheService != nil {
		go s.cacheService.Set(context.Background(), key, paginated, constants.TTL_MOVIES_LIST)
	}

	return paginated, nil
}

func (s *service) UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.Duration != nil {
		movie.Duration = *req.Duration
	}
	if req.PosterURL != nil {
		movie.PosterURL = *req.PosterURL
	}
	if req.ReleaseDate != nil {
		movie.ReleaseDate = *req.ReleaseDate
	}

	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, err
	}

	s.invalidateMovieCache(ctx)

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountShowtimes(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrMovieHasShowtimes
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateMovieCache(ctx)
	return nil
}

// ImportPopular syncs the popular-movies feed from the external catalog,
// upserting by external id.
func (s *service) ImportPopular(ctx context.Context) (*ImportResult, error) {
	entries, err := s.importer.FetchPopular(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, entry := range entries {
		existing, err := s.repo.GetByExternalID(ctx, entry.ExternalID)
		switch {
		case err == nil:
			existing.Title = entry.Title
			existing.Description = entry.Description
			existing.Genre = entry.Genre
			existing.PosterURL = entry.PosterURL
			if !entry.ReleaseDate.IsZero() {
				existing.ReleaseDate = entry.ReleaseDate
			}
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, err
			}
			result.Updated++
		case errors.Is(err, ErrMovieNotFound):
			duration := entry.Duration
			if duration == 0 {
				duration = 120 // feed omits runtime; assume a standard feature length
			}
			externalID := entry.ExternalID
			movie := &Movie{
				Title:       entry.Title,
				Description: entry.Description,
				Genre:       entry.Genre,
				Duration:    duration,
				PosterURL:   entry.PosterURL,
				ReleaseDate: entry.ReleaseDate,
				ExternalID:  &externalID,
			}
			if err := s.repo.Create(ctx, movie); err != nil {
				return nil, err
			}
			result.Imported++
		default:
			return nil, err
		}
	}

	if result.Imported > 0 || result.Updated > 0 {
		s.invalidateMovieCache(ctx)
	}

	return result, nil
}

func (s *service) invalidateMovieCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	// best effort; stale entries expire via TTL
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_MOVIES_ALL)
}

// CatalogEntry is a movie row parsed from the external catalog feed
type CatalogEntry struct {
	ExternalID  int64
	Title       string
	Description string
	Genre       string
	Duration    int
	PosterURL   string
	ReleaseDate time.Time
}
