package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

// Notifier publishes booking lifecycle events. The notifications package
// provides the Kafka-backed implementation; a nil Notifier disables
// publishing.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *Booking) error
	BookingCancelled(ctx context.Context, booking *Booking) error
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID, userID uuid.UUID, role string) (*BookingResponse, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
	ListAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	CancelBooking(ctx context.Context, id uuid.UUID, userID uuid.UUID, role string) (*BookingResponse, error)
	GetTicket(ctx context.Context, id uuid.UUID, userID uuid.UUID, role string) (*Booking, error)
}

type service struct {
	repo         Repository
	holds        *showtimes.SeatHolds
	notifier     Notifier
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository, holds *showtimes.SeatHolds, notifier Notifier) Service {
	return &service{
		repo:     repo,
		holds:    holds,
		notifier: notifier,
		log:      logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	if len(req.Seats) == 0 {
		return nil, ErrEmptySeatSelection
	}

	payment, err := ParsePaymentDetails(req.PaymentMethod, req.PaymentDetails)
	if err != nil {
		return nil, err
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, showtimes.ErrShowtimeNotFound
	}

	showtime, err := s.repo.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if !showtime.StartTime.After(time.Now().UTC()) {
		return nil, ErrShowtimeStarted
	}

	now := time.Now().UTC()
	booking := &Booking{
		Reference:     newBookingReference(),
		UserID:        userID,
		ShowtimeID:    showtimeID,
		PaymentMethod: payment.Method(),
		TransactionID: newTransactionID(payment.Method()),
		PaidAt:        &now,
		Status:        StatusConfirmed,
	}

	// The conditional claim inside the transaction is the only
	// admission gate; concurrent overlapping requests lose here.
	if err := s.repo.CreateWithClaim(ctx, booking, req.Seats); err != nil {
		if errors.Is(err, showtimes.ErrSeatUnavailable) {
			s.log.LogSeatConflict(ctx, showtimeID.String(), req.Seats)
		}
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), showtimeID.String(), userID.String())

	// Any advisory holds on these seats have served their purpose
	if s.holds != nil {
		go func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, _ = s.holds.Release(releaseCtx, showtimeID.String(), "", req.Seats)
		}()
	}

	s.invalidateUserCache(ctx, userID)
	s.notify(booking, func(nctx context.Context) error {
		return s.notifier.BookingConfirmed(nctx, booking)
	})

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID, userID uuid.UUID, role string) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID && role != string(users.RoleAdmin) {
		return nil, ErrNotAuthorized
	}

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) ListUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	normalizeQuery(&query)

	if s.cacheService != nil {
		var cached PaginatedBookings
		key := constants.BuildUserBookingsKey(userID.String(), query.Page)
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	bookings, total, err := s.repo.ListByUser(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	result := paginate(bookings, total, query)

	if s.cacheService != nil {
		key := constants.BuildUserBookingsKey(userID.String(), query.Page)
		go s.cacheService.Set(context.Background(), key, result, constants.TTL_USER_BOOKINGS)
	}

	return result, nil
}

func (s *service) ListAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	normalizeQuery(&query)

	bookings, total, err := s.repo.ListAll(ctx, query)
	if err != nil {
		return nil, err
	}

	return paginate(bookings, total, query), nil
}

func (s *service) CancelBooking(ctx context.Context, id uuid.UUID, userID uuid.UUID, role string) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID && role != string(users.RoleAdmin) {
		return nil, ErrNotAuthorized
	}
	if booking.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	showtime, err := s.repo.GetShowtime(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, err
	}
	// Cancellation is only allowed while the showtime is still ahead
	if !showtime.StartTime.After(time.Now().UTC()) {
		return nil, ErrShowtimeStarted
	}

	if err := s.repo.CancelAndRelease(ctx, booking); err != nil {
		return nil, err
	}

	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.ShowtimeID.String(), userID.String())

	s.invalidateUserCache(ctx, booking.UserID)
	s.notify(booking, func(nctx context.Context) error {
		return s.notifier.BookingCancelled(nctx, booking)
	})

	resp := booking.ToResponse()
	return &resp, nil
}

// GetTicket returns the booking for ticket rendering. Cancelled
// bookings no longer have a ticket.
func (s *service) GetTicket(ctx context.Context, id uuid.UUID, userID uuid.UUID, role string) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID && role != string(users.RoleAdmin) {
		return nil, ErrNotAuthorized
	}
	if booking.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	return booking, nil
}

func (s *service) notify(booking *Booking, publish func(context.Context) error) {
	if s.notifier == nil {
		return
	}
	// Fire and forget; the booking itself is already committed
	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := publish(nctx); err != nil {
			s.log.ErrorWithContext(nctx, "failed to publish booking notification", err, map[string]interface{}{
				"booking_id": booking.ID.String(),
			})
		}
	}()
}

func (s *service) invalidateUserCache(ctx context.Context, userID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	// best effort; stale entries expire via TTL
	_ = s.cacheService.DeletePattern(ctx, constants.CACHE_KEY_USER_BOOKINGS+userID.String()+":*")
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ANALYTICS)
}

func normalizeQuery(query *BookingListQuery) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}
}

func paginate(bookings []Booking, total int64, query BookingListQuery) *PaginatedBookings {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}
	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
	}
}

// newBookingReference builds the short human-facing code printed on tickets
func newBookingReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "CB-" + id[:10]
}

// newTransactionID simulates the gateway reference for the paid charge
func newTransactionID(method string) string {
	return fmt.Sprintf("TXN-%s-%d", method, time.Now().UnixNano())
}
