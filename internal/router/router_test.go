package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewEchoAllowsCrossOriginPreflight(t *testing.T) {
	e := NewEcho()
	e.POST("/api/booking/create", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/booking/create", nil)
	req.Header.Set(echo.HeaderOrigin, "https://admin.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got == "" {
		t.Error("Access-Control-Allow-Origin missing from preflight response")
	}
}

func TestNewEchoRecoversFromPanic(t *testing.T) {
	e := NewEcho()
	e.GET("/boom", func(c echo.Context) error {
		panic("handler bug")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 after recovery", rec.Code)
	}
}
