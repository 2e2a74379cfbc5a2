package routes

import (
	"github.com/gin-gonic/gin"

	"lifeline/internal/handlers"
	"lifeline/internal/middleware"
)

func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	// provider callback, authenticated by signature not by JWT
	r.POST("/bookings/webhook", bookingHandler.Webhook)

	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("/checkout/:doctorId", middleware.RoleRequired("patient"), bookingHandler.Checkout)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PUT("/:id/cancel", middleware.RoleRequired("patient"), bookingHandler.Cancel)
		bookings.PUT("/:id/approve", middleware.RoleRequired("doctor"), bookingHandler.Approve)
		bookings.PUT("/:id/reject", middleware.RoleRequired("doctor"), bookingHandler.Reject)
	}
}
