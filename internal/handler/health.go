package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves liveness and store-reachability checks.
type HealthHandler struct {
	DB *sql.DB
}

// NewHealthHandler constructs a HealthHandler bound to the database pool.
func NewHealthHandler(db *sql.DB) *HealthHandler { return &HealthHandler{DB: db} }

// Root handles GET / and reports whether the relational store is reachable.
func (h *HealthHandler) Root(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	dbState := "unavailable"
	if h.DB != nil && h.DB.PingContext(ctx) == nil {
		dbState = "connected"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":   "OK",
		"message":  "Booking backend is running",
		"database": dbState,
	})
}

// Health handles GET /health, a plain liveness probe.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "OK", "message": "Booking API is running"})
}
