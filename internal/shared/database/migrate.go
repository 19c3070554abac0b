package database

import (
	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/showtimes"
	"cinebook/internal/theaters"
	"cinebook/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&movies.Movie{},
		&theaters.Theater{},
		&theaters.Screen{},
		&showtimes.Showtime{},
		&showtimes.Seat{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
	)
}
