package movies

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles movie-related routes
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

// SetupRoutes registers all movie routes
func (movieRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	movies := rg.Group("/movies")
	{
		// Public browsing
		movies.GET("", movieRouter.controller.ListMovies)
		movies.GET("/:id", movieRouter.controller.GetMovie)

		// Admin management
		admin := movies.Group("")
		admin.Use(middleware.JWTAuthWithConfig(movieRouter.config), middleware.RequireAdmin())
		{
			admin.POST("", movieRouter.controller.CreateMovie)
			admin.PUT("/:id", movieRouter.controller.UpdateMovie)
			admin.DELETE("/:id", movieRouter.controller.DeleteMovie)
			admin.POST("/import", movieRouter.controller.ImportPopular)
		}
	}
}
