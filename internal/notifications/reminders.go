package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	reminderScanInterval = 15 * time.Minute
	reminderWindow       = time.Hour
	remindedKeyPrefix    = "cinebook:notifications:reminded:"
)

// ReminderScheduler periodically finds confirmed bookings whose showtime
// starts within the next hour and queues a reminder email for each.
type ReminderScheduler struct {
	db        *gorm.DB
	redis     *redis.Client
	service   NotificationService
	scheduler gocron.Scheduler
}

func NewReminderScheduler(db *gorm.DB, redisClient *redis.Client, service NotificationService) (*ReminderScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder scheduler: %w", err)
	}

	return &ReminderScheduler{
		db:        db,
		redis:     redisClient,
		service:   service,
		scheduler: scheduler,
	}, nil
}

func (rs *ReminderScheduler) Start() error {
	_, err := rs.scheduler.NewJob(
		gocron.DurationJob(reminderScanInterval),
		gocron.NewTask(rs.scanAndSend),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}

	rs.scheduler.Start()
	log.Printf("⏰ Showtime reminder scheduler started (every %v)", reminderScanInterval)
	return nil
}

func (rs *ReminderScheduler) Stop() error {
	if err := rs.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop reminder scheduler: %w", err)
	}
	log.Printf("⏰ Showtime reminder scheduler stopped")
	return nil
}

type upcomingBooking struct {
	BookingID  uuid.UUID
	Reference  string
	UserID     uuid.UUID
	ShowtimeID uuid.UUID
	StartTime  time.Time
	MovieTitle string
	Email      string
	Name       string
	Seats      string
}

func (rs *ReminderScheduler) scanAndSend() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now().UTC()
	var upcoming []upcomingBooking
	err := rs.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id AS booking_id, bookings.reference, bookings.user_id,
			bookings.showtime_id, showtimes.start_time, movies.title AS movie_title,
			users.email, users.name,
			(SELECT STRING_AGG(label, ', ' ORDER BY label) FROM booking_seats WHERE booking_id = bookings.id) AS seats`).
		Joins("JOIN showtimes ON showtimes.id = bookings.showtime_id").
		Joins("JOIN movies ON movies.id = showtimes.movie_id").
		Joins("JOIN users ON users.id = bookings.user_id").
		Where("bookings.status = ?", "CONFIRMED").
		Where("showtimes.start_time BETWEEN ? AND ?", now, now.Add(reminderWindow)).
		Scan(&upcoming).Error
	if err != nil {
		log.Printf("⏰ Reminder scan failed: %v", err)
		return
	}

	sent := 0
	for _, booking := range upcoming {
		if rs.alreadyReminded(ctx, booking.BookingID) {
			continue
		}

		notification := NewNotificationBuilder().
			WithType(NotificationTypeShowtimeReminder).
			WithRecipient(booking.UserID, booking.Email, booking.Name).
			WithSubject(fmt.Sprintf("Reminder: %s starts soon", booking.MovieTitle)).
			WithBookingContext(booking.BookingID).
			WithShowtimeContext(booking.ShowtimeID).
			WithExpiration(&booking.StartTime).
			WithTemplateData(map[string]interface{}{
				"movie_title": booking.MovieTitle,
				"start_time":  booking.StartTime.Format(time.RFC1123),
				"reference":   booking.Reference,
				"seats":       booking.Seats,
			}).
			Build()

		if err := rs.service.SendNotification(ctx, notification); err != nil {
			log.Printf("⏰ Failed to queue reminder for booking %s: %v", booking.BookingID, err)
			continue
		}

		rs.markReminded(ctx, booking.BookingID)
		sent++
	}

	if sent > 0 {
		log.Printf("⏰ Queued %d showtime reminders", sent)
	}
}

// alreadyReminded dedupes across scan runs using a short-lived Redis key
func (rs *ReminderScheduler) alreadyReminded(ctx context.Context, bookingID uuid.UUID) bool {
	if rs.redis == nil {
		return false
	}
	exists, err := rs.redis.Exists(ctx, remindedKeyPrefix+bookingID.String()).Result()
	return err == nil && exists > 0
}

func (rs *ReminderScheduler) markReminded(ctx context.Context, bookingID uuid.UUID) {
	if rs.redis == nil {
		return
	}
	rs.redis.Set(ctx, remindedKeyPrefix+bookingID.String(), "1", 2*reminderWindow)
}
