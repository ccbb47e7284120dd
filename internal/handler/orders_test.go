package handler

import (
	"reflect"
	"testing"
	"time"

	"github.com/wildtrail/booking-backend/internal/model"
)

func TestExportRecords(t *testing.T) {
	created := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	updated := created.Add(2 * time.Hour)
	checkoutID := "987654"
	orders := []model.BookingOrder{
		{
			ID:                1,
			BookingDates:      []string{"2024-06-10", "2024-06-11", "2024-06-12"},
			FirstName:         "Jane",
			LastName:          "Doe",
			PhoneNumber:       "555-0100",
			Email:             "jane@example.com",
			ProductID:         42,
			VariantID:         7,
			Quantity:          2,
			ShopifyCheckoutID: &checkoutID,
			Status:            model.StatusPending,
			CreatedAt:         created,
			UpdatedAt:         updated,
		},
		{
			ID:           2,
			BookingDates: []string{"2024-07-01"},
			FirstName:    "Sam",
			LastName:     "Lee",
			PhoneNumber:  "555-0101",
			Email:        "sam@example.com",
			ProductID:    43,
			VariantID:    8,
			Quantity:     1,
			Status:       model.StatusCancelled,
			CreatedAt:    created,
			UpdatedAt:    created,
		},
	}

	records := exportRecords(orders)
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want header + 2 rows", len(records))
	}
	if !reflect.DeepEqual(records[0], exportHeader) {
		t.Errorf("header row = %v", records[0])
	}

	want := []string{
		"1", "2024-06-10;2024-06-11;2024-06-12", "Jane", "Doe", "555-0100", "jane@example.com",
		"42", "7", "2", "987654", "pending", "2024-06-01T10:30:00Z", "2024-06-01T12:30:00Z",
	}
	if !reflect.DeepEqual(records[1], want) {
		t.Errorf("row 1 = %v, want %v", records[1], want)
	}

	// Absent checkout ID exports as an empty cell, not "nil".
	if got := records[2][9]; got != "" {
		t.Errorf("checkout cell = %q, want empty", got)
	}
	if got := records[2][1]; got != "2024-07-01" {
		t.Errorf("single-date cell = %q", got)
	}
}

func TestExportRecordsEmpty(t *testing.T) {
	records := exportRecords(nil)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want header only", len(records))
	}
	if len(records[0]) != 13 {
		t.Errorf("header has %d columns, want 13", len(records[0]))
	}
}

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"", 10, 10},
		{"25", 10, 25},
		{"-3", 10, -3},
		{"abc", 10, 10},
		{"2.5", 10, 10},
	}
	for _, tc := range cases {
		if got := atoiDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("atoiDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}
