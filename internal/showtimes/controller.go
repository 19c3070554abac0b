package showtimes

import (
	"errors"
	"net/http"

	"cinebook/internal/shared/utils/response"
	"cinebook/internal/theaters"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateShowtime(ctx *gin.Context) {
	var req CreateShowtimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := c.service.CreateShowtime(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, theaters.ErrTheaterNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Theater not found", nil, nil)
		case errors.Is(err, theaters.ErrScreenNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Screen not found in theater", nil, nil)
		case errors.Is(err, ErrInvalidCapacity):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Screen capacity cannot produce a seat map", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create showtime", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Showtime created successfully", showtime, nil)
}

func (c *Controller) GetShowtime(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	showtime, err := c.service.GetShowtime(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrShowtimeNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch showtime", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtime retrieved successfully", showtime, nil)
}

func (c *Controller) GetShowtimesForMovie(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	items, err := c.service.GetShowtimesForMovie(ctx.Request.Context(), movieID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch showtimes", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtimes retrieved successfully", items, nil)
}

func (c *Controller) UpdateShowtime(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	var req UpdateShowtimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := c.service.UpdateShowtime(ctx.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrShowtimeNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update showtime", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtime updated successfully", showtime, nil)
}

func (c *Controller) DeleteShowtime(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	if err := c.service.DeleteShowtime(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrShowtimeNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		case errors.Is(err, ErrShowtimeHasBookings):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Showtime has confirmed bookings and cannot be deleted", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete showtime", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtime deleted successfully", nil, nil)
}

func (c *Controller) CheckSeatAvailability(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	label := ctx.Param("label")

	available, err := c.service.IsSeatAvailable(ctx.Request.Context(), id, label)
	if err != nil {
		switch {
		case errors.Is(err, ErrShowtimeNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		case errors.Is(err, ErrSeatNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Seat not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to check seat availability", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat availability retrieved", SeatAvailabilityResponse{
		ShowtimeID: id.String(),
		Label:      label,
		Available:  available,
	}, nil)
}

func (c *Controller) HoldSeats(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	var req HoldSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.HoldSeats(ctx.Request.Context(), id, userID.(string), req.Seats); err != nil {
		switch {
		case errors.Is(err, ErrSeatNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "One or more seats do not exist", nil, nil)
		case errors.Is(err, ErrSeatUnavailable):
			response.RespondJSON(ctx, "error", http.StatusConflict, "One or more seats are not available", nil, nil)
		case errors.Is(err, ErrSeatHeld):
			response.RespondJSON(ctx, "error", http.StatusConflict, "One or more seats are held by another user", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to hold seats", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats held successfully", gin.H{
		"showtime_id": id.String(),
		"seats":       req.Seats,
	}, nil)
}

func (c *Controller) ReleaseHolds(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	var req HoldSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.ReleaseHolds(ctx.Request.Context(), id, userID.(string), req.Seats); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to release holds", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Holds released successfully", nil, nil)
}

func (c *Controller) BlockSeats(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	var req BlockSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	changed, err := c.service.BlockSeats(ctx.Request.Context(), id, req.Seats)
	if err != nil {
		switch {
		case errors.Is(err, ErrShowtimeNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to block seats", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats blocked", gin.H{"blocked": changed}, nil)
}

func (c *Controller) UnblockSeats(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	var req BlockSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	changed, err := c.service.UnblockSeats(ctx.Request.Context(), id, req.Seats)
	if err != nil {
		switch {
		case errors.Is(err, ErrShowtimeNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to unblock seats", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats unblocked", gin.H{"unblocked": changed}, nil)
}
