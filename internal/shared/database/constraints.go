package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// Seat labels must be unique within a showtime; conditional claims rely on it
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_seat_label_per_showtime
		ON seats (showtime_id, label);
	`).Error
	if err != nil {
		return err
	}

	// Index for seat availability scans
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seats_showtime_status
		ON seats (showtime_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Index for user booking history queries (most recent first)
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	// Index for showtime listing by movie ordered by start time
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_showtimes_movie_start
		ON showtimes (movie_id, start_time);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
