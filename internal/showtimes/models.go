package showtimes

import (
	"time"

	"github.com/google/uuid"
)

// SeatStatus is the lifecycle state of a seat within one showtime
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatBooked    SeatStatus = "BOOKED"
	SeatBlocked   SeatStatus = "BLOCKED"
)

type Showtime struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MovieID    uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index"`
	TheaterID  uuid.UUID `json:"theater_id" gorm:"type:uuid;not null;index"`
	ScreenName string    `json:"screen_name" gorm:"not null;size:100"`
	StartTime  time.Time `json:"start_time" gorm:"not null"`
	Seats      []Seat    `json:"seats,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Seat is one seat of a showtime's seat map. The price is stamped at
// creation time and is the source of truth for booking totals.
type Seat struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ShowtimeID uuid.UUID  `json:"showtime_id" gorm:"type:uuid;not null;uniqueIndex:unique_seat_label_per_showtime"`
	Label      string     `json:"label" gorm:"not null;size:10;uniqueIndex:unique_seat_label_per_showtime"`
	Row        string     `json:"row" gorm:"not null;size:2"`
	Number     int        `json:"number" gorm:"not null"`
	Status     SeatStatus `json:"status" gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	Price      float64    `json:"price" gorm:"not null;check:price >= 0"`
}

type ShowtimeResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	TheaterID  string    `json:"theater_id"`
	ScreenName string    `json:"screen_name"`
	StartTime  time.Time `json:"start_time"`
	Seats      []Seat    `json:"seats,omitempty"`
	Available  int       `json:"available_seats"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShowtimeListItem is a listing row with the theater resolved
type ShowtimeListItem struct {
	ID          string    `json:"id"`
	MovieID     string    `json:"movie_id"`
	TheaterID   string    `json:"theater_id"`
	TheaterName string    `json:"theater_name"`
	Location    string    `json:"theater_location"`
	ScreenName  string    `json:"screen_name"`
	StartTime   time.Time `json:"start_time"`
	Available   int       `json:"available_seats"`
}

type CreateShowtimeRequest struct {
	MovieID    string    `json:"movie_id" binding:"required,uuid"`
	TheaterID  string    `json:"theater_id" binding:"required,uuid"`
	ScreenName string    `json:"screen_name" binding:"required,min=1,max=100"`
	StartTime  time.Time `json:"start_time" binding:"required"`
}

type UpdateShowtimeRequest struct {
	StartTime *time.Time `json:"start_time"`
}

// HoldSeatsRequest is the advisory seat-picker hold for a set of labels
type HoldSeatsRequest struct {
	Seats []string `json:"seats" binding:"required,min=1,max=10,dive,seatlabel"`
}

// BlockSeatsRequest toggles seats between AVAILABLE and BLOCKED
type BlockSeatsRequest struct {
	Seats []string `json:"seats" binding:"required,min=1,dive,seatlabel"`
}

type SeatAvailabilityResponse struct {
	ShowtimeID string `json:"showtime_id"`
	Label      string `json:"label"`
	Available  bool   `json:"available"`
}

func (s *Showtime) ToResponse(withSeats bool) ShowtimeResponse {
	resp := ShowtimeResponse{
		ID:         s.ID.String(),
		MovieID:    s.MovieID.String(),
		TheaterID:  s.TheaterID.String(),
		ScreenName: s.ScreenName,
		StartTime:  s.StartTime,
		CreatedAt:  s.CreatedAt,
	}
	for i := range s.Seats {
		if s.Seats[i].Status == SeatAvailable {
			resp.Available++
		}
	}
	if withSeats {
		resp.Seats = s.Seats
	}
	return resp
}

// TableName specifies the table name for GORM
func (Showtime) TableName() string {
	return "showtimes"
}

// TableName specifies the table name for GORM
func (Seat) TableName() string {
	return "seats"
}
