package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/auth"
	"voyago/internal/bookings"
	"voyago/internal/destinations"
	"voyago/internal/events"
	"voyago/internal/shared/config"
	"voyago/internal/shared/database"
	"voyago/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	cache     cache.Service
	publisher bookings.EventPublisher
}

// NewRouter creates a new router instance. publisher may be nil when the
// event stream is disabled.
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, publisher bookings.EventPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		cache:     cacheService,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		destinationService := r.setupDestinationRoutes(api)
		eventService := r.setupEventRoutes(api)

		r.setupBookingRoutes(api, destinationService, eventService)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "voyago-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "voyago-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, &r.config.JWT)
	authController := auth.NewController(authService)

	auth.RegisterRoutes(rg, authController, r.config)
}

// setupDestinationRoutes configures the destination catalogue and returns
// the service so the booking pipeline can resolve targets through it.
func (r *Router) setupDestinationRoutes(rg *gin.RouterGroup) destinations.Service {
	repo := destinations.NewRepository(r.db.GetPostgreSQL())
	service := destinations.NewService(repo, r.cache, r.config.Redis.CacheTTL)
	controller := destinations.NewController(service)

	destinations.SetupDestinationRoutes(rg, controller)
	return service
}

// setupEventRoutes configures the event catalogue
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) events.Service {
	repo := events.NewRepository(r.db.GetPostgreSQL())
	service := events.NewService(repo)
	controller := events.NewController(service)

	events.SetupEventRoutes(rg, controller)
	return service
}

// setupBookingRoutes configures the booking pipeline
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup, destinationService destinations.Service, eventService events.Service) {
	repo := bookings.NewRepository(r.db.GetPostgreSQL())
	service := bookings.NewService(repo, destinationService, eventService, r.publisher, r.config.Booking.DefaultPackagePrice)
	controller := bookings.NewController(service)

	bookings.SetupBookingRoutes(rg, controller)
}
