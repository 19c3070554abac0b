package routes

import (
	"net/http"
	"time"

	"cinebook/internal/analytics"
	"cinebook/internal/auth"
	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/internal/theaters"
	"cinebook/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	seatHolds    *showtimes.SeatHolds
	notifier     bookings.Notifier

	theaterService theaters.Service
}

func NewRouter(cfg *config.Config, db *database.DB, seatHolds *showtimes.SeatHolds, notifier bookings.Notifier) *Router {
	var cacheService cache.Service
	if db.Redis != nil {
		cacheService = cache.NewService(db.Redis)
	}

	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cacheService,
		seatHolds:    seatHolds,
		notifier:     notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupMovieRoutes(api)
		r.setupTheaterRoutes(api)
		r.setupShowtimeRoutes(api)
		r.setupBookingRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	importer := movies.NewImporter(r.config.Catalog)
	movieService := movies.NewService(movieRepo, importer)
	if r.cacheService != nil {
		movieService.SetCacheService(r.cacheService)
	}
	movieController := movies.NewController(movieService)
	movieRouter := movies.NewRouter(movieController, r.config)

	movieRouter.SetupRoutes(rg)
}

func (r *Router) setupTheaterRoutes(rg *gin.RouterGroup) {
	theaterRepo := theaters.NewRepository(r.db.GetPostgreSQL())
	theaterService := theaters.NewService(theaterRepo)
	if r.cacheService != nil {
		theaterService.SetCacheService(r.cacheService)
	}
	theaterController := theaters.NewController(theaterService)
	theaterRouter := theaters.NewRouter(theaterController, r.config)

	// Showtime scheduling resolves screens through this service
	r.theaterService = theaterService

	theaterRouter.SetupRoutes(rg)
}

func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	showtimeRepo := showtimes.NewRepository(r.db.GetPostgreSQL())
	showtimeService := showtimes.NewService(showtimeRepo, r.theaterService, r.seatHolds)
	if r.cacheService != nil {
		showtimeService.SetCacheService(r.cacheService)
	}
	showtimeController := showtimes.NewController(showtimeService)
	showtimeRouter := showtimes.NewRouter(showtimeController, r.config)

	showtimeRouter.SetupRoutes(rg)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.seatHolds, r.notifier)
	if r.cacheService != nil {
		bookingService.SetCacheService(r.cacheService)
	}
	bookingController := bookings.NewController(bookingService)
	bookingRouter := bookings.NewRouter(bookingController, r.config)

	bookingRouter.SetupRoutes(rg)
}

func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo)
	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService)
	}
	analyticsController := analytics.NewController(analyticsService)
	analyticsRouter := analytics.NewRouter(analyticsController, r.config)

	analyticsRouter.SetupRoutes(rg)
}
