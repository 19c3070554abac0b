package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the CineBook application.
// Pattern: cinebook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static data (long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // movie catalog
	TTL_STATIC_MEDIUM = 12 * time.Hour // theater layouts
	TTL_STATIC_SHORT  = 6 * time.Hour  // user profiles
)

// Semi-static data (medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // movie details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // movie listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // showtime listings
)

// Dynamic data (short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // analytics
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // showtime details
	TTL_DYNAMIC_QUICK  = 2 * time.Minute  // user booking lists
)

// Highly dynamic (micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // seat availability
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cinebook"
)

// ================== MOVIES MODULE ==================

const (
	CACHE_KEY_MOVIES_LIST   = CACHE_PREFIX + ":movies:list"         // + :page:X:limit:Y
	CACHE_KEY_MOVIE_DETAIL  = CACHE_PREFIX + ":movies:detail:uuid:" // + movie-id
	CACHE_KEY_MOVIES_SEARCH = CACHE_PREFIX + ":movies:search"       // + :query:X
)

const (
	TTL_MOVIES_LIST  = TTL_SEMI_STATIC_SHORT
	TTL_MOVIE_DETAIL = TTL_SEMI_STATIC_MEDIUM
)

// ================== THEATERS MODULE ==================

const (
	CACHE_KEY_THEATERS_LIST  = CACHE_PREFIX + ":theaters:list"
	CACHE_KEY_THEATER_DETAIL = CACHE_PREFIX + ":theaters:detail:uuid:" // + theater-id
)

const (
	TTL_THEATERS_LIST  = TTL_STATIC_MEDIUM
	TTL_THEATER_DETAIL = TTL_STATIC_MEDIUM
)

// ================== SHOWTIMES MODULE ==================

const (
	CACHE_KEY_SHOWTIMES_BY_MOVIE = CACHE_PREFIX + ":showtimes:by_movie:uuid:" // + movie-id
	CACHE_KEY_SHOWTIME_DETAIL    = CACHE_PREFIX + ":showtimes:detail:uuid:"   // + showtime-id
	CACHE_KEY_SEAT_AVAILABILITY  = CACHE_PREFIX + ":showtimes:seats:uuid:"    // + showtime-id
)

const (
	TTL_SHOWTIMES_BY_MOVIE = TTL_SEMI_STATIC_QUICK
	TTL_SHOWTIME_DETAIL    = TTL_DYNAMIC_SHORT
	TTL_SEAT_AVAILABILITY  = TTL_REALTIME_SHORT
)

// Seat hold keys (not a cache: authoritative advisory holds with TTL)
const (
	SEAT_HOLD_PREFIX = CACHE_PREFIX + ":seat_hold:" // + showtime-id:label
)

// ================== BOOKINGS MODULE ==================

const (
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":bookings:user:uuid:"   // + user-id:page:X
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:uuid:" // + booking-id
)

const (
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_QUICK
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_OVERVIEW = CACHE_PREFIX + ":analytics:overview:admin"
	CACHE_KEY_ANALYTICS_TRENDS   = CACHE_PREFIX + ":analytics:bookings:trends"
	CACHE_KEY_ANALYTICS_POPULAR  = CACHE_PREFIX + ":analytics:movies:popular"
)

const (
	TTL_ANALYTICS_OVERVIEW = TTL_DYNAMIC_MEDIUM
	TTL_ANALYTICS_TRENDS   = TTL_DYNAMIC_MEDIUM
	TTL_ANALYTICS_POPULAR  = TTL_DYNAMIC_MEDIUM
)

// ================== AUTH MODULE ==================

const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":auth:user:profile:uuid:" // + user-id
)

const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_MOVIES_ALL    = CACHE_PREFIX + ":movies:*"
	PATTERN_INVALIDATE_THEATERS_ALL  = CACHE_PREFIX + ":theaters:*"
	PATTERN_INVALIDATE_SHOWTIMES_ALL = CACHE_PREFIX + ":showtimes:*"
	PATTERN_INVALIDATE_ANALYTICS     = CACHE_PREFIX + ":analytics:*"
	PATTERN_INVALIDATE_USER_ALL      = CACHE_PREFIX + ":*:user:*" // + user-id + *
)

// ================== HELPER FUNCTIONS ==================

func BuildMovieListKey(page, limit int) string {
	return CACHE_KEY_MOVIES_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildMovieDetailKey(movieID string) string {
	return CACHE_KEY_MOVIE_DETAIL + movieID
}

func BuildShowtimesByMovieKey(movieID string) string {
	return CACHE_KEY_SHOWTIMES_BY_MOVIE + movieID
}

func BuildShowtimeDetailKey(showtimeID string) string {
	return CACHE_KEY_SHOWTIME_DETAIL + showtimeID
}

func BuildSeatAvailabilityKey(showtimeID string) string {
	return CACHE_KEY_SEAT_AVAILABILITY + showtimeID
}

func BuildUserBookingsKey(userID string, page int) string {
	return CACHE_KEY_USER_BOOKINGS + userID + ":page:" + fmt.Sprintf("%d", page)
}

func BuildSeatHoldKey(showtimeID, label string) string {
	return SEAT_HOLD_PREFIX + showtimeID + ":" + label
}
