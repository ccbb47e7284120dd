// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a booking order has been persisted.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID    uint64   `json:"booking_id"`
	BookingDates []string `json:"booking_dates"`
	Email        string   `json:"email"`
	ProductID    int64    `json:"product_id"`
	VariantID    int64    `json:"variant_id"`
	Quantity     int      `json:"quantity"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"created_at"`
}
