// Package repository implements SQL data access for bookings, products and
// date ranges.  Sentinel errors defined here let handlers map failure
// scenarios to HTTP statuses without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when an UPDATE or DELETE affects zero rows, or a
// lookup by ID matches nothing.  Handlers should translate this into an
// HTTP 404 response.
var ErrNotFound = errors.New("not found")
