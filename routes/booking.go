package routes

import (
	"github.com/gin-gonic/gin"

	"studioflow/handlers"
)

// RegisterBookingRoutes sets up the endpoints for the scheduling engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.BookingHandler) {
	booking := r.Group("/api/bookings")
	{
		booking.POST("", hb.CreateBooking)
		booking.POST("/series", hb.CreateSeries)
		booking.PATCH("/:id/status", hb.TransitionStatus)
		booking.POST("/:id/reminders", hb.ScheduleReminders)

		// Stateless pre-submit probes.
		booking.GET("/availability", hb.CheckAvailability)
		booking.GET("/travel-estimate", hb.EstimateTravel)
	}
}
