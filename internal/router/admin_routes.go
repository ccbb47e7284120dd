package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wildtrail/booking-backend/internal/handler"
)

// RegisterAdmin registers the admin surface under /api/admin: the booking
// overview, the merged catalog view and date-range CRUD.  The catalog view
// is the only cached route because it proxies a remote API call.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, adminAuth, cache echo.MiddlewareFunc) {
	g := e.Group("/api/admin", adminAuth)
	g.GET("/bookings", h.AllBookings)
	g.GET("/products", h.Catalog, cache)
	g.GET("/products/:productId/dates", h.ProductDates)
	g.POST("/products", h.UpsertProduct)
	g.POST("/products/:productId/dates", h.CreateDateRange)
	g.PUT("/products/:productId/dates/:dateId", h.UpdateDateRange)
	g.DELETE("/products/:productId/dates/:dateId", h.DeleteDateRange)
}
