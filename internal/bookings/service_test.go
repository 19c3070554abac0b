package bookings

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"cinebook/internal/showtimes"
	"cinebook/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps the seat and booking state in memory with the
// same claim semantics the database transaction enforces.
type fakeRepository struct {
	mu        sync.Mutex
	showtimes map[uuid.UUID]*showtimes.Showtime
	seats     map[uuid.UUID]map[string]*showtimes.Seat
	bookings  map[uuid.UUID]*Booking
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		showtimes: make(map[uuid.UUID]*showtimes.Showtime),
		seats:     make(map[uuid.UUID]map[string]*showtimes.Seat),
		bookings:  make(map[uuid.UUID]*Booking),
	}
}

func (r *fakeRepository) addShowtime(t *testing.T, capacity int, startTime time.Time) uuid.UUID {
	t.Helper()
	seats, err := showtimes.GenerateSeatMap(capacity)
	require.NoError(t, err)

	id := uuid.New()
	r.showtimes[id] = &showtimes.Showtime{
		ID:        id,
		StartTime: startTime,
	}
	byLabel := make(map[string]*showtimes.Seat, len(seats))
	for i := range seats {
		seat := seats[i]
		seat.ShowtimeID = id
		byLabel[seat.Label] = &seat
	}
	r.seats[id] = byLabel
	return id
}

func (r *fakeRepository) seatStatus(showtimeID uuid.UUID, label string) showtimes.SeatStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats[showtimeID][label].Status
}

func (r *fakeRepository) GetShowtime(ctx context.Context, id uuid.UUID) (*showtimes.Showtime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	showtime, ok := r.showtimes[id]
	if !ok {
		return nil, showtimes.ErrShowtimeNotFound
	}
	copied := *showtime
	return &copied, nil
}

func (r *fakeRepository) CreateWithClaim(ctx context.Context, booking *Booking, labels []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byLabel, ok := r.seats[booking.ShowtimeID]
	if !ok {
		return showtimes.ErrShowtimeNotFound
	}

	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		seat, exists := byLabel[label]
		if !exists || seen[label] || seat.Status != showtimes.SeatAvailable {
			return showtimes.ErrSeatUnavailable
		}
		seen[label] = true
	}

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now().UTC()
	booking.Seats = booking.Seats[:0]
	booking.TotalAmount = 0
	for _, label := range labels {
		seat := byLabel[label]
		seat.Status = showtimes.SeatBooked
		booking.Seats = append(booking.Seats, BookingSeat{Label: seat.Label, Price: seat.Price})
		booking.TotalAmount += seat.Price
	}

	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeRepository) ListByUser(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			result = append(result, *booking)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, int64(len(result)), nil
}

func (r *fakeRepository) ListAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []Booking
	for _, booking := range r.bookings {
		result = append(result, *booking)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, int64(len(result)), nil
}

func (r *fakeRepository) CancelAndRelease(ctx context.Context, booking *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.bookings[booking.ID]
	if !ok {
		return ErrBookingNotFound
	}
	if stored.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	byLabel := r.seats[stored.ShowtimeID]
	for _, seat := range stored.Seats {
		if row, exists := byLabel[seat.Label]; exists && row.Status == showtimes.SeatBooked {
			row.Status = showtimes.SeatAvailable
		}
	}

	now := time.Now().UTC()
	stored.Status = StatusCancelled
	stored.CancelledAt = &now
	booking.Status = StatusCancelled
	booking.CancelledAt = &now
	return nil
}

func cardPayment() json.RawMessage {
	return json.RawMessage(`{"card_number":"4111111111111111","card_holder":"Asha Rao","expiry":"09/27"}`)
}

func bookingRequest(showtimeID uuid.UUID, seats ...string) CreateBookingRequest {
	return CreateBookingRequest{
		ShowtimeID:     showtimeID.String(),
		Seats:          seats,
		PaymentMethod:  "CARD",
		PaymentDetails: cardPayment(),
	}
}

func TestCreateBookingTotalsFromStoredPrices(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 100, time.Now().Add(2*time.Hour))
	svc := NewService(repo, nil, nil)

	booking, err := svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(showtimeID, "F1", "F2"))
	require.NoError(t, err)

	assert.Equal(t, 500.0, booking.TotalAmount)
	assert.Equal(t, StatusConfirmed, booking.Status)
	assert.NotEmpty(t, booking.Reference)
	assert.Len(t, booking.Seats, 2)

	assert.Equal(t, showtimes.SeatBooked, repo.seatStatus(showtimeID, "F1"))
	assert.Equal(t, showtimes.SeatBooked, repo.seatStatus(showtimeID, "F2"))
}

func TestCreateBookingAllOrNothing(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 100, time.Now().Add(2*time.Hour))
	svc := NewService(repo, nil, nil)

	// Book C3 so the second request partially overlaps a taken seat
	_, err := svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(showtimeID, "C3"))
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(showtimeID, "C2", "C3", "C4"))
	assert.ErrorIs(t, err, showtimes.ErrSeatUnavailable)

	// The free seats in the failed request stay untouched
	assert.Equal(t, showtimes.SeatAvailable, repo.seatStatus(showtimeID, "C2"))
	assert.Equal(t, showtimes.SeatAvailable, repo.seatStatus(showtimeID, "C4"))
}

func TestCreateBookingConcurrentOverlap(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 100, time.Now().Add(2*time.Hour))
	svc := NewService(repo, nil, nil)

	requests := []CreateBookingRequest{
		bookingRequest(showtimeID, "A1", "A2"),
		bookingRequest(showtimeID, "A2", "A3"),
	}

	errs := make([]error, len(requests))
	var wg sync.WaitGroup
	for i := range requests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), uuid.New(), requests[i])
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, showtimes.ErrSeatUnavailable)
		}
	}
	assert.Equal(t, 1, successes, "exactly one overlapping booking must win")

	// A2 belongs to the winner either way
	assert.Equal(t, showtimes.SeatBooked, repo.seatStatus(showtimeID, "A2"))
}

func TestCreateBookingRejectsStartedShowtime(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 20, time.Now().Add(-10*time.Minute))
	svc := NewService(repo, nil, nil)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(showtimeID, "A1"))
	assert.ErrorIs(t, err, ErrShowtimeStarted)
	assert.Equal(t, showtimes.SeatAvailable, repo.seatStatus(showtimeID, "A1"))
}

func TestCreateBookingRejectsInvalidPayment(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 20, time.Now().Add(2*time.Hour))
	svc := NewService(repo, nil, nil)

	req := bookingRequest(showtimeID, "A1")
	req.PaymentDetails = json.RawMessage(`{"card_number":"42"}`)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrInvalidPayment)
	assert.Equal(t, showtimes.SeatAvailable, repo.seatStatus(showtimeID, "A1"))
}

func TestCreateBookingUnknownShowtime(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil, nil)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(uuid.New(), "A1"))
	assert.ErrorIs(t, err, showtimes.ErrShowtimeNotFound)
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 100, time.Now().Add(2*time.Hour))
	svc := NewService(repo, nil, nil)

	userID := uuid.New()
	created, err := svc.CreateBooking(context.Background(), userID, bookingRequest(showtimeID, "B1", "B2"))
	require.NoError(t, err)

	bookingID := uuid.MustParse(created.ID)
	cancelled, err := svc.CancelBooking(context.Background(), bookingID, userID, string(users.RoleUser))
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, showtimes.SeatAvailable, repo.seatStatus(showtimeID, "B1"))
	assert.Equal(t, showtimes.SeatAvailable, repo.seatStatus(showtimeID, "B2"))
}

func TestCancelBookingAuthorization(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 100, time.Now().Add(2*time.Hour))
	svc := NewService(repo, nil, nil)

	owner := uuid.New()
	created, err := svc.CreateBooking(context.Background(), owner, bookingRequest(showtimeID, "D1"))
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	// A different regular user may not cancel
	_, err = svc.CancelBooking(context.Background(), bookingID, uuid.New(), string(users.RoleUser))
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, showtimes.SeatBooked, repo.seatStatus(showtimeID, "D1"))

	// An admin may
	_, err = svc.CancelBooking(context.Background(), bookingID, uuid.New(), string(users.RoleAdmin))
	assert.NoError(t, err)
	assert.Equal(t, showtimes.SeatAvailable, repo.seatStatus(showtimeID, "D1"))
}

func TestCancelBookingTwiceFails(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 100, time.Now().Add(2*time.Hour))
	svc := NewService(repo, nil, nil)

	userID := uuid.New()
	created, err := svc.CreateBooking(context.Background(), userID, bookingRequest(showtimeID, "E1"))
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	_, err = svc.CancelBooking(context.Background(), bookingID, userID, string(users.RoleUser))
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), bookingID, userID, string(users.RoleUser))
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBookingAfterShowtimeStarts(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 100, time.Now().Add(50*time.Millisecond))
	svc := NewService(repo, nil, nil)

	userID := uuid.New()
	created, err := svc.CreateBooking(context.Background(), userID, bookingRequest(showtimeID, "G1"))
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	time.Sleep(100 * time.Millisecond)

	_, err = svc.CancelBooking(context.Background(), bookingID, userID, string(users.RoleUser))
	assert.ErrorIs(t, err, ErrShowtimeStarted)
	assert.Equal(t, showtimes.SeatBooked, repo.seatStatus(showtimeID, "G1"))
}

func TestListUserBookingsMostRecentFirst(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 100, time.Now().Add(2*time.Hour))
	svc := NewService(repo, nil, nil)

	userID := uuid.New()
	first, err := svc.CreateBooking(context.Background(), userID, bookingRequest(showtimeID, "A1"))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := svc.CreateBooking(context.Background(), userID, bookingRequest(showtimeID, "A2"))
	require.NoError(t, err)

	// Another user's booking must not leak into the list
	_, err = svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(showtimeID, "A3"))
	require.NoError(t, err)

	result, err := svc.ListUserBookings(context.Background(), userID, BookingListQuery{})
	require.NoError(t, err)

	require.Len(t, result.Bookings, 2)
	assert.Equal(t, int64(2), result.TotalCount)
	assert.Equal(t, second.ID, result.Bookings[0].ID)
	assert.Equal(t, first.ID, result.Bookings[1].ID)
}

func TestGetBookingAuthorization(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 100, time.Now().Add(2*time.Hour))
	svc := NewService(repo, nil, nil)

	owner := uuid.New()
	created, err := svc.CreateBooking(context.Background(), owner, bookingRequest(showtimeID, "H1"))
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	_, err = svc.GetBooking(context.Background(), bookingID, owner, string(users.RoleUser))
	assert.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), bookingID, uuid.New(), string(users.RoleUser))
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.GetBooking(context.Background(), bookingID, uuid.New(), string(users.RoleAdmin))
	assert.NoError(t, err)
}

func TestGetTicketRejectsCancelledBooking(t *testing.T) {
	repo := newFakeRepository()
	showtimeID := repo.addShowtime(t, 100, time.Now().Add(2*time.Hour))
	svc := NewService(repo, nil, nil)

	userID := uuid.New()
	created, err := svc.CreateBooking(context.Background(), userID, bookingRequest(showtimeID, "J1"))
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	booking, err := svc.GetTicket(context.Background(), bookingID, userID, string(users.RoleUser))
	require.NoError(t, err)
	assert.Equal(t, created.Reference, booking.Reference)

	_, err = svc.CancelBooking(context.Background(), bookingID, userID, string(users.RoleUser))
	require.NoError(t, err)

	_, err = svc.GetTicket(context.Background(), bookingID, userID, string(users.RoleUser))
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}
