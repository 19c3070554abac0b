package notifications

import (
	"context"
	"fmt"
	"strings"

	"cinebook/internal/bookings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingNotifier turns booking lifecycle events into queued email
// notifications. It implements bookings.Notifier.
type BookingNotifier struct {
	service NotificationService
	db      *gorm.DB
}

func NewBookingNotifier(service NotificationService, db *gorm.DB) *BookingNotifier {
	return &BookingNotifier{
		service: service,
		db:      db,
	}
}

type recipient struct {
	Email string
	Name  string
}

func (bn *BookingNotifier) lookupRecipient(ctx context.Context, userID uuid.UUID) (*recipient, error) {
	var r recipient
	err := bn.db.WithContext(ctx).
		Table("users").
		Select("email, name").
		Where("id = ?", userID).
		Scan(&r).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up recipient: %w", err)
	}
	if r.Email == "" {
		return nil, fmt.Errorf("no recipient found for user %s", userID)
	}
	return &r, nil
}

func (bn *BookingNotifier) lookupMovieTitle(ctx context.Context, showtimeID uuid.UUID) string {
	var title string
	err := bn.db.WithContext(ctx).
		Table("showtimes").
		Select("movies.title").
		Joins("JOIN movies ON movies.id = showtimes.movie_id").
		Where("showtimes.id = ?", showtimeID).
		Scan(&title).Error
	if err != nil || title == "" {
		return "your movie"
	}
	return title
}

func (bn *BookingNotifier) BookingConfirmed(ctx context.Context, booking *bookings.Booking) error {
	r, err := bn.lookupRecipient(ctx, booking.UserID)
	if err != nil {
		return err
	}

	title := bn.lookupMovieTitle(ctx, booking.ShowtimeID)
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithRecipient(booking.UserID, r.Email, r.Name).
		WithSubject(fmt.Sprintf("Booking Confirmed for %s", title)).
		WithBookingContext(booking.ID).
		WithShowtimeContext(booking.ShowtimeID).
		WithTemplateData(map[string]interface{}{
			"movie_title":  title,
			"reference":    booking.Reference,
			"seats":        strings.Join(booking.SeatLabels(), ", "),
			"total_amount": booking.TotalAmount,
		}).
		Build()

	return bn.service.SendNotification(ctx, notification)
}

func (bn *BookingNotifier) BookingCancelled(ctx context.Context, booking *bookings.Booking) error {
	r, err := bn.lookupRecipient(ctx, booking.UserID)
	if err != nil {
		return err
	}

	title := bn.lookupMovieTitle(ctx, booking.ShowtimeID)
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingCancelled).
		WithRecipient(booking.UserID, r.Email, r.Name).
		WithSubject(fmt.Sprintf("Booking Cancelled for %s", title)).
		WithBookingContext(booking.ID).
		WithShowtimeContext(booking.ShowtimeID).
		WithTemplateData(map[string]interface{}{
			"movie_title": title,
			"reference":   booking.Reference,
		}).
		Build()

	return bn.service.SendNotification(ctx, notification)
}
