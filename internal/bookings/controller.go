package bookings

import (
	"errors"
	"net/http"

	"cinebook/internal/shared/utils/response"
	"cinebook/internal/showtimes"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPayment):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid payment details", nil, err.Error())
		case errors.Is(err, ErrEmptySeatSelection):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "No seats selected", nil, nil)
		case errors.Is(err, showtimes.ErrShowtimeNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		case errors.Is(err, ErrShowtimeStarted):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Showtime has already started", nil, nil)
		case errors.Is(err, showtimes.ErrSeatUnavailable):
			response.RespondJSON(ctx, "error", http.StatusConflict, "One or more seats are no longer available", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed", booking, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), id, userID, currentUserRole(ctx))
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrNotAuthorized):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this booking", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) ListMyBookings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListUserBookings(ctx.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

func (c *Controller) ListAllBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListAllBookings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), id, userID, currentUserRole(ctx))
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrNotAuthorized):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this booking", nil, nil)
		case errors.Is(err, ErrAlreadyCancelled):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Booking is already cancelled", nil, nil)
		case errors.Is(err, ErrShowtimeStarted):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Showtime has already started", nil, nil)
		case errors.Is(err, showtimes.ErrShowtimeNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to cancel booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

func (c *Controller) GetTicket(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetTicket(ctx.Request.Context(), id, userID, currentUserRole(ctx))
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrNotAuthorized):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this booking", nil, nil)
		case errors.Is(err, ErrAlreadyCancelled):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Booking is cancelled and has no ticket", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch ticket", nil, nil)
		}
		return
	}

	ctx.Header("Content-Type", "image/jpeg")
	ctx.Header("Content-Disposition", `inline; filename="`+booking.Reference+`.jpeg"`)
	if err := WriteTicketQR(ctx.Writer, booking); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to render ticket", nil, nil)
		return
	}
	ctx.Status(http.StatusOK)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	value, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	raw, ok := value.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func currentUserRole(ctx *gin.Context) string {
	if value, exists := ctx.Get("user_role"); exists {
		if role, ok := value.(string); ok {
			return role
		}
	}
	return ""
}
