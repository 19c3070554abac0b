package showtimes

import "errors"

var (
	ErrInvalidCapacity     = errors.New("invalid seat capacity")
	ErrShowtimeNotFound    = errors.New("showtime not found")
	ErrSeatNotFound        = errors.New("seat not found")
	ErrSeatUnavailable     = errors.New("seat unavailable")
	ErrSeatHeld            = errors.New("seat currently held by another user")
	ErrShowtimeHasBookings = errors.New("showtime has confirmed bookings")
)
