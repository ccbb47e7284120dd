package repository

import "testing"

func TestDateRangePatchEmpty(t *testing.T) {
	var p DateRangePatch
	if !p.Empty() {
		t.Error("zero patch should be empty")
	}

	seats := 15
	p.AvailableSeats = &seats
	if p.Empty() {
		t.Error("patch with a field set should not be empty")
	}

	active := false
	q := DateRangePatch{IsActive: &active}
	if q.Empty() {
		t.Error("patch carrying only is_active=false should not be empty")
	}
}
