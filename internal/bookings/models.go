package bookings

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the ledger state of a booking. Bookings are never
// deleted; cancellation flips the status.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Reference     string        `json:"reference" gorm:"uniqueIndex;not null;size:20"`
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	ShowtimeID    uuid.UUID     `json:"showtime_id" gorm:"type:uuid;not null;index"`
	Seats         []BookingSeat `json:"seats" gorm:"constraint:OnDelete:CASCADE"`
	TotalAmount   float64       `json:"total_amount" gorm:"not null;check:total_amount >= 0"`
	PaymentMethod string        `json:"payment_method" gorm:"not null;size:20"`
	TransactionID string        `json:"transaction_id" gorm:"size:64"`
	PaidAt        *time.Time    `json:"paid_at"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'CONFIRMED'"`
	CancelledAt   *time.Time    `json:"cancelled_at"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// BookingSeat records one claimed seat by label, with the price paid.
// Seats are referenced by identifier only; the seat rows themselves
// live with the showtime.
type BookingSeat struct {
	ID        uuid.UUID `json:"-" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	Label     string    `json:"label" gorm:"not null;size:10"`
	Price     float64   `json:"price" gorm:"not null"`
}

type BookingResponse struct {
	ID            string        `json:"id"`
	Reference     string        `json:"reference"`
	UserID        string        `json:"user_id"`
	ShowtimeID    string        `json:"showtime_id"`
	Seats         []BookingSeat `json:"seats"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentMethod string        `json:"payment_method"`
	Status        BookingStatus `json:"status"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type CreateBookingRequest struct {
	ShowtimeID     string          `json:"showtime_id" binding:"required,uuid"`
	Seats          []string        `json:"seats" binding:"required,min=1,max=10,dive,seatlabel"`
	PaymentMethod  string          `json:"payment_method" binding:"required,oneof=CARD UPI WALLET"`
	PaymentDetails json.RawMessage `json:"payment_details" binding:"required"`
}

type BookingListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		Reference:     b.Reference,
		UserID:        b.UserID.String(),
		ShowtimeID:    b.ShowtimeID.String(),
		Seats:         b.Seats,
		TotalAmount:   b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		Status:        b.Status,
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
	}
}

// SeatLabels returns the labels claimed by this booking
func (b *Booking) SeatLabels() []string {
	labels := make([]string, 0, len(b.Seats))
	for _, seat := range b.Seats {
		labels = append(labels, seat.Label)
	}
	return labels
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}

// TableName specifies the table name for GORM
func (BookingSeat) TableName() string {
	return "booking_seats"
}
