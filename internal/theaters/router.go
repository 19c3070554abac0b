package theaters

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles theater-related routes
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

// SetupRoutes registers all theater routes
func (theaterRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	theaters := rg.Group("/theaters")
	{
		// Public browsing
		theaters.GET("", theaterRouter.controller.ListTheaters)
		theaters.GET("/:id", theaterRouter.controller.GetTheater)

		// Admin management
		admin := theaters.Group("")
		admin.Use(middleware.JWTAuthWithConfig(theaterRouter.config), middleware.RequireAdmin())
		{
			admin.POST("", theaterRouter.controller.CreateTheater)
			admin.PUT("/:id", theaterRouter.controller.UpdateTheater)
			admin.DELETE("/:id", theaterRouter.controller.DeleteTheater)
		}
	}
}
