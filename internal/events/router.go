package events

import (
	"voyago/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupEventRoutes configures the event catalogue routes
func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {
	events := rg.Group("/events")
	{
		events.GET("", controller.ListUpcoming) // GET /api/v1/events
		events.GET("/:id", controller.GetEvent) // GET /api/v1/events/:id
	}

	admin := rg.Group("/events")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateEvent)    // POST /api/v1/events
		admin.PUT("/:id", controller.UpdateEvent) // PUT  /api/v1/events/:id
	}
}
