package showtimes

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles showtime-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all showtime routes
func (showtimeRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	showtimes := rg.Group("/showtimes")
	{
		// Public availability queries
		showtimes.GET("/:id", showtimeRouter.controller.GetShowtime)
		showtimes.GET("/:id/seats/:label/availability", showtimeRouter.controller.CheckSeatAvailability)

		// Seat holds require an authenticated user
		authed := showtimes.Group("")
		authed.Use(middleware.JWTAuthWithConfig(showtimeRouter.config))
		{
			authed.POST("/:id/seats/hold", showtimeRouter.controller.HoldSeats)
			authed.DELETE("/:id/seats/hold", showtimeRouter.controller.ReleaseHolds)
		}

		// Admin management
		admin := showtimes.Group("")
		admin.Use(middleware.JWTAuthWithConfig(showtimeRouter.config), middleware.RequireAdmin())
		{
			admin.POST("", showtimeRouter.controller.CreateShowtime)
			admin.PUT("/:id", showtimeRouter.controller.UpdateShowtime)
			admin.DELETE("/:id", showtimeRouter.controller.DeleteShowtime)
			admin.POST("/:id/seats/block", showtimeRouter.controller.BlockSeats)
			admin.POST("/:id/seats/unblock", showtimeRouter.controller.UnblockSeats)
		}
	}

	// Showtime listings hang off the movie resource
	rg.GET("/movies/:id/showtimes", showtimeRouter.controller.GetShowtimesForMovie)
}
