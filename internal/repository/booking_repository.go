package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/wildtrail/booking-backend/internal/model"
)

// BookingRepo provides CRUD operations for booking orders.  Booking dates
// are stored as a JSON-encoded array in the booking_dates column and decoded
// back into a slice on every read.  All timestamp fields are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, booking_dates, first_name, last_name, phone_number, email,
	product_id, variant_id, quantity, shopify_checkout_id, shopify_checkout_url,
	status, created_at, updated_at`

// Create inserts a new booking order and populates the generated ID, status
// and timestamps on the provided struct.  The insert is a single statement;
// there is nothing to roll back on failure.
func (r *BookingRepo) Create(ctx context.Context, b *model.BookingOrder) error {
	dates, err := json.Marshal(b.BookingDates)
	if err != nil {
		return fmt.Errorf("encode booking_dates: %w", err)
	}
	const q = `INSERT INTO booking_orders
		(booking_dates, first_name, last_name, phone_number, email, product_id, variant_id, quantity, shopify_checkout_id, shopify_checkout_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		string(dates), b.FirstName, b.LastName, b.PhoneNumber, b.Email,
		b.ProductID, b.VariantID, b.Quantity, b.ShopifyCheckoutID, b.ShopifyCheckoutURL,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the full row to populate status defaults and timestamps.
	fresh, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *fresh
	return nil
}

// GetByID returns a single booking order.  When no row matches,
// ErrNotFound is returned.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.BookingOrder, error) {
	q := `SELECT ` + bookingColumns + ` FROM booking_orders WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return b, err
}

// UpdateStatus sets the status of a booking order.  The status must already
// be validated by the caller; updated_at advances via the column default.
// ErrNotFound is returned when the id does not exist.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE booking_orders SET status = ?, updated_at = NOW() WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	return mustAffect(result)
}

// Delete removes a booking order.  ErrNotFound is returned when the id does
// not exist (zero rows affected).
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM booking_orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(result)
}

// ListAll returns every booking order, most recent first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.BookingOrder, error) {
	q := `SELECT ` + bookingColumns + ` FROM booking_orders ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.BookingOrder, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanBooking reads one booking_orders row, decoding the JSON dates column
// and normalizing nullable checkout fields.
func scanBooking(s scanner) (*model.BookingOrder, error) {
	var b model.BookingOrder
	var datesRaw []byte
	var checkoutID, checkoutURL sql.NullString
	err := s.Scan(
		&b.ID, &datesRaw, &b.FirstName, &b.LastName, &b.PhoneNumber, &b.Email,
		&b.ProductID, &b.VariantID, &b.Quantity, &checkoutID, &checkoutURL,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(datesRaw, &b.BookingDates); err != nil {
		return nil, fmt.Errorf("decode booking_dates for order %d: %w", b.ID, err)
	}
	if checkoutID.Valid {
		v := checkoutID.String
		b.ShopifyCheckoutID = &v
	}
	if checkoutURL.Valid {
		v := checkoutURL.String
		b.ShopifyCheckoutURL = &v
	}
	return &b, nil
}

// mustAffect converts a zero-rows-affected result into ErrNotFound.
func mustAffect(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
