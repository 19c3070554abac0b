package analytics

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles analytics routes
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

// SetupRoutes registers all analytics routes; everything is admin-only
func (analyticsRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	analytics.Use(middleware.JWTAuthWithConfig(analyticsRouter.config), middleware.RequireAdmin())
	{
		analytics.GET("/overview", analyticsRouter.controller.GetOverview)
		analytics.GET("/bookings/trends", analyticsRouter.controller.GetBookingTrends)
		analytics.GET("/movies/popular", analyticsRouter.controller.GetPopularMovies)
	}
}
