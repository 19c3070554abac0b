package bookings

import "errors"

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrEmptySeatSelection = errors.New("no seats selected")
	ErrNotAuthorized      = errors.New("not authorized for this booking")
	ErrShowtimeStarted    = errors.New("showtime has already started")
	ErrAlreadyCancelled   = errors.New("booking already cancelled")
	ErrInvalidPayment     = errors.New("invalid payment details")
)
