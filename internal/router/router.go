// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/wildtrail/booking-backend/internal/handler"
)

// NewEcho builds the Echo instance with the global middleware every route
// shares: permissive CORS so browser admin frontends can call the API
// cross-origin, and panic recovery so one bad request cannot take the
// process down.
func NewEcho() *echo.Echo {
	e := echo.New()
	e.Use(echomw.CORS(), echomw.Recover())
	return e
}

// RegisterRoutes registers the unauthenticated status endpoints on the
// provided Echo instance: the root store-reachability check and the plain
// liveness probe used by load balancers.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
}
