package repository

import (
	"reflect"
	"testing"
)

func TestNormalizeClampsPagination(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 10, 1, 10},
		{"limit above cap", 1, 500, 1, 100},
		{"limit at cap", 1, 100, 1, 100},
		{"negative limit", 1, -1, 1, 10},
		{"in range", 4, 25, 4, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := OrderFilter{Page: tc.page, Limit: tc.limit}
			f.Normalize()
			if f.Page != tc.wantPage {
				t.Errorf("Page = %d, want %d", f.Page, tc.wantPage)
			}
			if f.Limit != tc.wantLimit {
				t.Errorf("Limit = %d, want %d", f.Limit, tc.wantLimit)
			}
		})
	}
}

func TestNormalizeSortAllowList(t *testing.T) {
	cases := []struct {
		sortBy    string
		sortOrder string
		wantBy    string
		wantOrder string
	}{
		{"", "", "created_at", "DESC"},
		{"email", "asc", "email", "ASC"},
		{"status", "ASC", "status", "ASC"},
		{"id", "desc", "id", "DESC"},
		{"droptable", "ASC", "created_at", "ASC"},
		{"created_at; DROP TABLE booking_orders", "DESC", "created_at", "DESC"},
		{"updated_at", "sideways", "updated_at", "DESC"},
	}
	for _, tc := range cases {
		f := OrderFilter{SortBy: tc.sortBy, SortOrder: tc.sortOrder}
		f.Normalize()
		if f.SortBy != tc.wantBy {
			t.Errorf("SortBy(%q) = %q, want %q", tc.sortBy, f.SortBy, tc.wantBy)
		}
		if f.SortOrder != tc.wantOrder {
			t.Errorf("SortOrder(%q) = %q, want %q", tc.sortOrder, f.SortOrder, tc.wantOrder)
		}
	}
}

func TestWhereClauseEmptyFilter(t *testing.T) {
	f := OrderFilter{}
	clause, args := f.whereClause()
	if clause != "WHERE 1=1" {
		t.Errorf("clause = %q, want %q", clause, "WHERE 1=1")
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestWhereClauseBindsEveryFilter(t *testing.T) {
	f := OrderFilter{
		Status:    "pending",
		Email:     "jane",
		ProductID: "42",
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
	}
	clause, args := f.whereClause()
	want := "WHERE 1=1 AND status = ? AND email LIKE ? AND product_id = ? AND created_at >= ? AND created_at <= ?"
	if clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	wantArgs := []any{"pending", "%jane%", "42", "2024-01-01", "2024-12-31"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestWhereClauseNeverInterpolatesValues(t *testing.T) {
	f := OrderFilter{Email: "'; DROP TABLE booking_orders; --"}
	clause, args := f.whereClause()
	if clause != "WHERE 1=1 AND email LIKE ?" {
		t.Errorf("clause = %q, raw input must stay out of SQL text", clause)
	}
	if len(args) != 1 || args[0] != "%'; DROP TABLE booking_orders; --%" {
		t.Errorf("args = %v, want the raw value bound as a parameter", args)
	}
}
