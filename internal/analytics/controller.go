package analytics

import (
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetOverview(ctx *gin.Context) {
	overview, err := c.service.GetOverview(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch analytics overview", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Analytics overview retrieved successfully", overview, nil)
}

func (c *Controller) GetBookingTrends(ctx *gin.Context) {
	trends, err := c.service.GetBookingTrends(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch booking trends", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking trends retrieved successfully", trends, nil)
}

func (c *Controller) GetPopularMovies(ctx *gin.Context) {
	popular, err := c.service.GetPopularMovies(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch popular movies", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Popular movies retrieved successfully", popular, nil)
}
