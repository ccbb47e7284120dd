package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wildtrail/booking-backend/internal/handler"
)

// RegisterBooking registers the public booking endpoints under /api/booking.
// The rate limiter only applies to booking creation; reads stay unthrottled.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, rateLimit echo.MiddlewareFunc) {
	g := e.Group("/api/booking")
	g.POST("/create", h.CreateBooking, rateLimit)
	g.GET("/:id", h.GetBooking)
	g.PUT("/:id/status", h.UpdateStatus)
}
