package destinations

import (
	"voyago/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupDestinationRoutes configures the destination catalogue routes
func SetupDestinationRoutes(rg *gin.RouterGroup, controller *Controller) {
	destinations := rg.Group("/destinations")
	{
		destinations.GET("", controller.ListDestinations)    // GET /api/v1/destinations
		destinations.GET("/:id", controller.GetDestination)  // GET /api/v1/destinations/:id
	}

	admin := rg.Group("/destinations")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateDestination)      // POST /api/v1/destinations
		admin.PUT("/:id", controller.UpdateDestination)   // PUT  /api/v1/destinations/:id
	}
}
