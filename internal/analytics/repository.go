package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GetOverview(ctx context.Context) (*Overview, error)
	GetBookingTrends(ctx context.Context, days int) ([]BookingTrend, error)
	GetPopularMovies(ctx context.Context, limit int) ([]PopularMovie, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOverview(ctx context.Context) (*Overview, error) {
	var overview Overview
	db := r.db.WithContext(ctx)

	if err := db.Table("bookings").Count(&overview.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Table("bookings").Where("status = ?", "CONFIRMED").
		Count(&overview.ConfirmedBookings).Error; err != nil {
		return nil, err
	}
	overview.CancelledBookings = overview.TotalBookings - overview.ConfirmedBookings

	// Revenue only counts bookings that are still confirmed
	if err := db.Table("bookings").Where("status = ?", "CONFIRMED").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&overview.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := db.Table("users").Count(&overview.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Table("movies").Count(&overview.TotalMovies).Error; err != nil {
		return nil, err
	}
	if err := db.Table("showtimes").Count(&overview.TotalShowtimes).Error; err != nil {
		return nil, err
	}

	return &overview, nil
}

func (r *repository) GetBookingTrends(ctx context.Context, days int) ([]BookingTrend, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	var trends []BookingTrend
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`DATE(created_at) AS date,
			COUNT(*) AS bookings,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'CONFIRMED'), 0) AS revenue`).
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&trends).Error
	if err != nil {
		return nil, err
	}

	return trends, nil
}

func (r *repository) GetPopularMovies(ctx context.Context, limit int) ([]PopularMovie, error) {
	var popular []PopularMovie
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`movies.id AS movie_id, movies.title, COUNT(bookings.id) AS bookings`).
		Joins("JOIN showtimes ON showtimes.id = bookings.showtime_id").
		Joins("JOIN movies ON movies.id = showtimes.movie_id").
		Where("bookings.status = ?", "CONFIRMED").
		Group("movies.id, movies.title").
		Order("bookings DESC, movies.title ASC").
		Limit(limit).
		Scan(&popular).Error
	if err != nil {
		return nil, err
	}

	return popular, nil
}
