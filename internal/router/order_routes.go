package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wildtrail/booking-backend/internal/handler"
)

// RegisterOrders registers the order-management endpoints under /api/orders.
// The whole group sits behind the admin auth middleware; when no admin
// secret is configured the middleware is a pass-through.
func RegisterOrders(e *echo.Echo, h *handler.OrderHandler, adminAuth echo.MiddlewareFunc) {
	g := e.Group("/api/orders", adminAuth)
	g.GET("", h.ListOrders)
	g.GET("/stats", h.OrderStats)
	g.GET("/export", h.ExportOrders)
	g.DELETE("/:id", h.DeleteOrder)
}
