package bookings

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles booking-related routes
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

// SetupRoutes registers all booking routes
func (bookingRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(bookingRouter.config))
	{
		bookings.POST("", bookingRouter.controller.CreateBooking)
		bookings.GET("", bookingRouter.controller.ListMyBookings)
		bookings.GET("/:id", bookingRouter.controller.GetBooking)
		bookings.POST("/:id/cancel", bookingRouter.controller.CancelBooking)
		bookings.GET("/:id/ticket", bookingRouter.controller.GetTicket)

		// Admin view across all users
		admin := bookings.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/all", bookingRouter.controller.ListAllBookings)
		}
	}
}
