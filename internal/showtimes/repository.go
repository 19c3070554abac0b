package showtimes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, showtime *Showtime) error
	GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error)
	GetByIDWithSeats(ctx context.Context, id uuid.UUID) (*Showtime, error)
	ListByMovie(ctx context.Context, movieID uuid.UUID) ([]ShowtimeListItem, error)
	Update(ctx context.Context, showtime *Showtime) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetSeat(ctx context.Context, showtimeID uuid.UUID, label string) (*Seat, error)
	GetSeatsByLabels(ctx context.Context, showtimeID uuid.UUID, labels []string) ([]Seat, error)
	ClaimSeats(ctx context.Context, showtimeID uuid.UUID, labels []string) error
	ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, labels []string) error
	SetSeatStatus(ctx context.Context, showtimeID uuid.UUID, labels []string, from, to SeatStatus) (int64, error)
	CountConfirmedBookings(ctx context.Context, showtimeID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, showtime *Showtime) error {
	return r.db.WithContext(ctx).Create(showtime).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	var showtime Showtime
	err := r.db.WithContext(ctx).First(&showtime, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &showtime, nil
}

func (r *repository) GetByIDWithSeats(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	var showtime Showtime
	err := r.db.WithContext(ctx).
		Preload("Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("seats.row, seats.number")
		}).
		First(&showtime, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &showtime, nil
}

// ListByMovie returns showtimes for a movie ordered by start time with
// the theater resolved in a single join.
func (r *repository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]ShowtimeListItem, error) {
	var items []ShowtimeListItem
	err := r.db.WithContext(ctx).
		Table("showtimes").
		Select(`showtimes.id, showtimes.movie_id, showtimes.theater_id,
			theaters.name AS theater_name, theaters.location,
			showtimes.screen_name, showtimes.start_time,
			COUNT(seats.id) FILTER (WHERE seats.status = 'AVAILABLE') AS available`).
		Joins("JOIN theaters ON theaters.id = showtimes.theater_id").
		Joins("LEFT JOIN seats ON seats.showtime_id = showtimes.id").
		Where("showtimes.movie_id = ?", movieID).
		Group("showtimes.id, theaters.name, theaters.location").
		Order("showtimes.start_time ASC").
		Scan(&items).Error
	return items, err
}

func (r *repository) Update(ctx context.Context, showtime *Showtime) error {
	return r.db.WithContext(ctx).Omit("Seats").Save(showtime).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("showtime_id = ?", id).Delete(&Seat{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Showtime{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrShowtimeNotFound
		}
		return nil
	})
}

func (r *repository) GetSeat(ctx context.Context, showtimeID uuid.UUID, label string) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).
		Where("showtime_id = ? AND label = ?", showtimeID, label).
		First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &seat, nil
}

func (r *repository) GetSeatsByLabels(ctx context.Context, showtimeID uuid.UUID, labels []string) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("showtime_id = ? AND label IN ?", showtimeID, labels).
		Order("row, number").
		Find(&seats).Error
	return seats, err
}

// ClaimSeats flips all labels from AVAILABLE to BOOKED in one
// conditional batched update. The transaction commits only when every
// requested seat was flipped; a single unavailable or unknown label
// rolls the whole claim back. Two overlapping concurrent claims can
// therefore never both succeed.
func (r *repository) ClaimSeats(ctx context.Context, showtimeID uuid.UUID, labels []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Seat{}).
			Where("showtime_id = ? AND label IN ? AND status = ?", showtimeID, labels, SeatAvailable).
			Update("status", SeatBooked)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(labels)) {
			return ErrSeatUnavailable
		}
		return nil
	})
}

// ReleaseSeats is the symmetric conditional update BOOKED -> AVAILABLE
func (r *repository) ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, labels []string) error {
	return r.db.WithContext(ctx).Model(&Seat{}).
		Where("showtime_id = ? AND label IN ? AND status = ?", showtimeID, labels, SeatBooked).
		Update("status", SeatAvailable).Error
}

// SetSeatStatus conditionally moves seats between states and reports
// how many rows changed. Used for admin block/unblock.
func (r *repository) SetSeatStatus(ctx context.Context, showtimeID uuid.UUID, labels []string, from, to SeatStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Seat{}).
		Where("showtime_id = ? AND label IN ? AND status = ?", showtimeID, labels, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// CountConfirmedBookings counts confirmed bookings referencing a
// showtime. Queried by table name to stay decoupled from the bookings
// package.
func (r *repository) CountConfirmedBookings(ctx context.Context, showtimeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("bookings").
		Where("showtime_id = ? AND status = ?", showtimeID, "CONFIRMED").
		Count(&count).Error
	return count, err
}
