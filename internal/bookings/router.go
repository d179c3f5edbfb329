package bookings

import (
	"voyago/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		bookings.POST("", controller.CreateBooking)                      // POST   /api/v1/bookings
		bookings.GET("", controller.ListBookings)                        // GET    /api/v1/bookings
		bookings.GET("/:id", controller.GetBooking)                      // GET    /api/v1/bookings/:id
		bookings.PUT("/:id", controller.UpdateBooking)                   // PUT    /api/v1/bookings/:id
		bookings.POST("/:id/confirm-payment", controller.ConfirmPayment) // POST   /api/v1/bookings/:id/confirm-payment
		bookings.DELETE("/:id", controller.CancelBooking)                // DELETE /api/v1/bookings/:id
	}

	// Payment rejection is a staff action.
	staff := rg.Group("/bookings")
	staff.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		staff.POST("/:id/reject-payment", controller.RejectPayment) // POST /api/v1/bookings/:id/reject-payment
	}
}
