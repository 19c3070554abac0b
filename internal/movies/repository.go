package movies

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	GetByExternalID(ctx context.Context, externalID int64) (*Movie, error)
	List(ctx context.Context, query MovieListQuery) ([]Movie, int64, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountShowtimes(ctx context.Context, movieID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).First(&movie, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (r *repository) GetByExternalID(ctx context.Context, externalID int64) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).First(&movie, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (r *repository) List(ctx context.Context, query MovieListQuery) ([]Movie, int64, error) {
	db := r.db.WithContext(ctx).Model(&Movie{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}
	if query.Genre != "" {
		db = db.Where("genre = ?", query.Genre)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	var result []Movie
	err := db.Order("release_date DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&result).Error
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *repository) Update(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Save(movie).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Movie{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// CountShowtimes counts showtimes referencing a movie. Queried by table
// name to keep this package decoupled from the showtimes package.
func (r *repository) CountShowtimes(ctx context.Context, movieID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("showtimes").Where("movie_id = ?", movieID).Count(&count).Error
	return count, err
}
