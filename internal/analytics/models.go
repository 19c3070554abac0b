package analytics

import "time"

// Overview summarises the platform at a glance
type Overview struct {
	TotalBookings     int64   `json:"total_bookings"`
	ConfirmedBookings int64   `json:"confirmed_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalUsers        int64   `json:"total_users"`
	TotalMovies       int64   `json:"total_movies"`
	TotalShowtimes    int64   `json:"total_showtimes"`
}

// BookingTrend is one day of booking activity
type BookingTrend struct {
	Date     time.Time `json:"date"`
	Bookings int64     `json:"bookings"`
	Revenue  float64   `json:"revenue"`
}

// PopularMovie ranks a movie by confirmed bookings
type PopularMovie struct {
	MovieID  string `json:"movie_id"`
	Title    string `json:"title"`
	Bookings int64  `json:"bookings"`
}
