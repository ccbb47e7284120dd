package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func runAdminAuth(secret, authHeader string) (*httptest.ResponseRecorder, bool, any) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	var subject any
	next := func(c echo.Context) error {
		reached = true
		subject = c.Get("subject")
		return c.NoContent(http.StatusOK)
	}
	AdminAuth(secret)(next)(c)
	return rec, reached, subject
}

func TestAdminAuthEmptySecretDisablesGuard(t *testing.T) {
	rec, reached, _ := runAdminAuth("", "")
	if !reached {
		t.Fatal("next handler not reached with an empty secret")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAdminAuthMissingToken(t *testing.T) {
	rec, reached, _ := runAdminAuth("s3cret", "")
	if reached {
		t.Fatal("next handler reached without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAdminAuthRejectsNonBearerScheme(t *testing.T) {
	rec, reached, _ := runAdminAuth("s3cret", "Basic dXNlcjpwYXNz")
	if reached || rec.Code != http.StatusUnauthorized {
		t.Errorf("reached = %v status = %d, want 401 without next", reached, rec.Code)
	}
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	tok := signToken(t, "other-secret", "ops")
	rec, reached, _ := runAdminAuth("s3cret", "Bearer "+tok)
	if reached || rec.Code != http.StatusUnauthorized {
		t.Errorf("reached = %v status = %d, want 401 without next", reached, rec.Code)
	}
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("s3cret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	rec, reached, _ := runAdminAuth("s3cret", "Bearer "+signed)
	if reached || rec.Code != http.StatusUnauthorized {
		t.Errorf("reached = %v status = %d, want 401 without next", reached, rec.Code)
	}
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	tok := signToken(t, "s3cret", "ops")
	rec, reached, subject := runAdminAuth("s3cret", "Bearer "+tok)
	if !reached {
		t.Fatal("next handler not reached with a valid token")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if subject != "ops" {
		t.Errorf("subject = %v, want ops", subject)
	}
}
