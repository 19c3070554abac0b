package bookings

import (
	"context"
	"errors"
	"time"

	"cinebook/internal/showtimes"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetShowtime(ctx context.Context, id uuid.UUID) (*showtimes.Showtime, error)

	// CreateWithClaim claims the seats and writes the booking in one
	// transaction; either both happen or neither does.
	CreateWithClaim(ctx context.Context, booking *Booking, labels []string) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	ListAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// CancelAndRelease flips the booking to CANCELLED and releases
	// exactly its seats in one transaction.
	CancelAndRelease(ctx context.Context, booking *Booking) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetShowtime(ctx context.Context, id uuid.UUID) (*showtimes.Showtime, error) {
	var showtime showtimes.Showtime
	err := r.db.WithContext(ctx).First(&showtime, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, showtimes.ErrShowtimeNotFound
		}
		return nil, err
	}
	return &showtime, nil
}

func (r *repository) CreateWithClaim(ctx context.Context, booking *Booking, labels []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Atomic conditional claim: all requested seats flip
		// AVAILABLE -> BOOKED or the transaction rolls back. Any
		// unavailable, unknown or duplicated label makes the row
		// count fall short.
		result := tx.Model(&showtimes.Seat{}).
			Where("showtime_id = ? AND label IN ? AND status = ?",
				booking.ShowtimeID, labels, showtimes.SeatAvailable).
			Update("status", showtimes.SeatBooked)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(labels)) {
			return showtimes.ErrSeatUnavailable
		}

		// Stamp seat prices from the claimed rows; stored seat prices
		// are the source of truth for the total.
		var seats []showtimes.Seat
		if err := tx.Where("showtime_id = ? AND label IN ?", booking.ShowtimeID, labels).
			Order("row, number").
			Find(&seats).Error; err != nil {
			return err
		}

		booking.Seats = booking.Seats[:0]
		booking.TotalAmount = 0
		for _, seat := range seats {
			booking.Seats = append(booking.Seats, BookingSeat{
				Label: seat.Label,
				Price: seat.Price,
			})
			booking.TotalAmount += seat.Price
		}

		return tx.Create(booking).Error
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Seats").First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// ListByUser returns the user's bookings most recent first
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	db := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	var result []Booking
	err := db.Preload("Seats").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&result).Error
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *repository) ListAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	db := r.db.WithContext(ctx).Model(&Booking{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	var result []Booking
	err := db.Preload("Seats").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&result).Error
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *repository) CancelAndRelease(ctx context.Context, booking *Booking) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Release exactly this booking's seats
		if err := tx.Model(&showtimes.Seat{}).
			Where("showtime_id = ? AND label IN ? AND status = ?",
				booking.ShowtimeID, booking.SeatLabels(), showtimes.SeatBooked).
			Update("status", showtimes.SeatAvailable).Error; err != nil {
			return err
		}

		// Flip the ledger entry; the conditional guards a concurrent cancel
		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", booking.ID, StatusConfirmed).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyCancelled
		}

		booking.Status = StatusCancelled
		booking.CancelledAt = &now
		return nil
	})
}
