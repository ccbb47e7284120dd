package model

import "time"

// Booking status values as stored in the booking_orders.status enum.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the three allowed booking states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// BookingOrder records a customer's reservation request for a product on a
// set of dates.  The booking is the durable record; the Shopify checkout
// fields are best-effort and stay null when the gateway is not configured or
// checkout creation failed.
//
// BookingDates preserves the insertion order of the requested days.  It is
// persisted as JSON-encoded text and decoded on every read path.
type BookingOrder struct {
	ID                 uint64    `json:"id"`                   // booking_orders.id
	BookingDates       []string  `json:"booking_dates"`        // booking_orders.booking_dates (JSON)
	FirstName          string    `json:"first_name"`           // booking_orders.first_name
	LastName           string    `json:"last_name"`            // booking_orders.last_name
	PhoneNumber        string    `json:"phone_number"`         // booking_orders.phone_number
	Email              string    `json:"email"`                // booking_orders.email
	ProductID          int64     `json:"product_id"`           // booking_orders.product_id
	VariantID          int64     `json:"variant_id"`           // booking_orders.variant_id
	Quantity           int       `json:"quantity"`             // booking_orders.quantity
	ShopifyCheckoutID  *string   `json:"shopify_checkout_id"`  // booking_orders.shopify_checkout_id (nullable)
	ShopifyCheckoutURL *string   `json:"shopify_checkout_url"` // booking_orders.shopify_checkout_url (nullable)
	Status             string    `json:"status"`               // booking_orders.status
	CreatedAt          time.Time `json:"created_at"`           // booking_orders.created_at
	UpdatedAt          time.Time `json:"updated_at"`           // booking_orders.updated_at
}
