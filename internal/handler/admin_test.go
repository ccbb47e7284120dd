package handler

import (
	"net/http"
	"testing"

	"github.com/wildtrail/booking-backend/internal/repository"
)

func newAdminTestHandler() *AdminHandler {
	// The repositories are never reached by the validation paths under test.
	return NewAdminHandler(
		repository.NewBookingRepo(nil),
		repository.NewProductRepo(nil),
		repository.NewDateRangeRepo(nil),
		nil,
	)
}

func TestCatalogRequiresConfiguredGateway(t *testing.T) {
	h := newAdminTestHandler()
	c, rec := postJSON("/api/admin/products", "")
	if err := h.Catalog(c); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 when Shopify is unconfigured", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("body = %v", body)
	}
}

func TestUpsertProductRequiresFields(t *testing.T) {
	h := newAdminTestHandler()
	c, rec := postJSON("/api/admin/products", `{"product_id": 42}`)
	if err := h.UpsertProduct(c); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Missing required fields: product_id, variant_id, product_name" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestCreateDateRangeValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			"missing dates",
			`{"available_seats": 10}`,
			"Start date and end date are required",
		},
		{
			"bad start format",
			`{"start_date": "01/06/2024", "end_date": "2024-06-10"}`,
			"invalid start_date format, expected YYYY-MM-DD",
		},
		{
			"bad end format",
			`{"start_date": "2024-06-01", "end_date": "June 10"}`,
			"invalid end_date format, expected YYYY-MM-DD",
		},
		{
			"end before start",
			`{"start_date": "2024-06-10", "end_date": "2024-06-01"}`,
			"End date must be greater than or equal to start date",
		},
	}
	h := newAdminTestHandler()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := postJSON("/api/admin/products/42/dates", tc.body)
			c.SetParamNames("productId")
			c.SetParamValues("42")
			if err := h.CreateDateRange(c); err != nil {
				t.Fatalf("handler returned %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if body := decodeBody(t, rec); body["error"] != tc.want {
				t.Errorf("error = %v, want %q", body["error"], tc.want)
			}
		})
	}
}

func TestUpdateDateRangeRejectsEmptyPatch(t *testing.T) {
	h := newAdminTestHandler()
	c, rec := postJSON("/api/admin/products/42/dates/5", `{}`)
	c.SetParamNames("productId", "dateId")
	c.SetParamValues("42", "5")
	if err := h.UpdateDateRange(c); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "No fields to update" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestUpdateDateRangeRechecksOrderingWhenBothDatesArrive(t *testing.T) {
	h := newAdminTestHandler()
	c, rec := postJSON("/api/admin/products/42/dates/5",
		`{"start_date": "2024-06-10", "end_date": "2024-06-01"}`)
	c.SetParamNames("productId", "dateId")
	c.SetParamValues("42", "5")
	if err := h.UpdateDateRange(c); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "End date must be greater than or equal to start date" {
		t.Errorf("error = %v", body["error"])
	}
}
