package model

import "time"

// Product identifies a sellable item.  The product and variant IDs come from
// the commerce platform, which remains the source of truth; rows here exist
// so bookings and date ranges have something local to reference.
type Product struct {
	ProductID   int64     `json:"product_id"`   // products.product_id
	VariantID   int64     `json:"variant_id"`   // products.variant_id
	ProductName string    `json:"product_name"` // products.product_name
	VariantName *string   `json:"variant_name"` // products.variant_name (nullable)
	CreatedAt   time.Time `json:"created_at"`   // products.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // products.updated_at
}

// DateRange is a bookable interval of inventory for a product.  Seat
// counters are informational: the booking flow records orders without
// decrementing them, and enforcement is left to operators via the admin
// endpoints.
type DateRange struct {
	ID             uint64    `json:"id"`              // product_dates.id
	ProductID      int64     `json:"product_id"`      // product_dates.product_id
	StartDate      string    `json:"start_date"`      // product_dates.start_date (YYYY-MM-DD)
	EndDate        string    `json:"end_date"`        // product_dates.end_date (YYYY-MM-DD)
	AvailableSeats int       `json:"available_seats"` // product_dates.available_seats
	BookedSeats    int       `json:"booked_seats"`    // product_dates.booked_seats
	IsActive       bool      `json:"is_active"`       // product_dates.is_active
	CreatedAt      time.Time `json:"created_at"`      // product_dates.created_at
	UpdatedAt      time.Time `json:"updated_at"`      // product_dates.updated_at
}

// DateRangeStats aggregates the date ranges of a single product for the
// merged catalog view: range counts, summed seat counters and the span of
// covered dates.
type DateRangeStats struct {
	TotalRanges         int     `json:"total_ranges"`
	ActiveRanges        int     `json:"active_ranges"`
	TotalAvailableSeats int     `json:"total_available_seats"`
	TotalBookedSeats    int     `json:"total_booked_seats"`
	EarliestDate        *string `json:"earliest_date"`
	LatestDate          *string `json:"latest_date"`
}
