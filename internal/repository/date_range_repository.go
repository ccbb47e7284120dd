package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/wildtrail/booking-backend/internal/model"
)

// DateRangeRepo provides CRUD operations on the product_dates table.  Date
// columns are DATE in MySQL; the repository formats them as YYYY-MM-DD
// strings for the API surface.
type DateRangeRepo struct {
	db *sql.DB
}

// NewDateRangeRepo returns a new DateRangeRepo bound to the given database.
func NewDateRangeRepo(db *sql.DB) *DateRangeRepo { return &DateRangeRepo{db: db} }

const dateLayout = "2006-01-02"

// Create inserts a new date range for a product and returns its generated ID.
// Date ordering must already be validated by the caller.
func (r *DateRangeRepo) Create(ctx context.Context, d *model.DateRange) error {
	const q = `INSERT INTO product_dates (product_id, start_date, end_date, available_seats, is_active)
		VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, d.ProductID, d.StartDate, d.EndDate, d.AvailableSeats, d.IsActive)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// DateRangePatch carries the mutable fields of a date range for partial
// updates.  Nil fields are left untouched.
type DateRangePatch struct {
	StartDate      *string
	EndDate        *string
	AvailableSeats *int
	BookedSeats    *int
	IsActive       *bool
}

// Empty reports whether the patch modifies nothing.
func (p DateRangePatch) Empty() bool {
	return p.StartDate == nil && p.EndDate == nil && p.AvailableSeats == nil &&
		p.BookedSeats == nil && p.IsActive == nil
}

// Update applies a partial update to a date range.  ErrNotFound is returned
// when the id does not exist.  Callers must reject empty patches and
// validate date ordering before calling.
func (r *DateRangeRepo) Update(ctx context.Context, id uint64, p DateRangePatch) error {
	sets := []string{}
	args := []any{}
	if p.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *p.StartDate)
	}
	if p.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, *p.EndDate)
	}
	if p.AvailableSeats != nil {
		sets = append(sets, "available_seats = ?")
		args = append(args, *p.AvailableSeats)
	}
	if p.BookedSeats != nil {
		sets = append(sets, "booked_seats = ?")
		args = append(args, *p.BookedSeats)
	}
	if p.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *p.IsActive)
	}
	args = append(args, id)
	q := `UPDATE product_dates SET ` + strings.Join(sets, ", ") + `, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	return mustAffect(result)
}

// Delete removes a date range.  ErrNotFound is returned when the id does not
// exist (zero rows affected), including a second delete of the same id.
func (r *DateRangeRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM product_dates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(result)
}

// ListByProduct returns every date range for a product ordered by start date.
func (r *DateRangeRepo) ListByProduct(ctx context.Context, productID int64) ([]model.DateRange, error) {
	const q = `SELECT id, product_id, start_date, end_date, available_seats, booked_seats, is_active, created_at, updated_at
		FROM product_dates
		WHERE product_id = ?
		ORDER BY start_date ASC`
	rows, err := r.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ranges := make([]model.DateRange, 0)
	for rows.Next() {
		var d model.DateRange
		var start, end time.Time
		if err := rows.Scan(&d.ID, &d.ProductID, &start, &end,
			&d.AvailableSeats, &d.BookedSeats, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.StartDate = start.Format(dateLayout)
		d.EndDate = end.Format(dateLayout)
		ranges = append(ranges, d)
	}
	return ranges, rows.Err()
}

// StatsByProducts groups the date ranges of the given products and returns
// per-product aggregates: range counts, summed seat counters and the span of
// covered dates.  Products without ranges are absent from the result map.
func (r *DateRangeRepo) StatsByProducts(ctx context.Context, productIDs []int64) (map[int64]model.DateRangeStats, error) {
	stats := make(map[int64]model.DateRangeStats)
	if len(productIDs) == 0 {
		return stats, nil
	}
	placeholders := make([]string, 0, len(productIDs))
	args := make([]any, 0, len(productIDs))
	for _, id := range productIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT product_id,
			COUNT(DISTINCT id),
			SUM(CASE WHEN is_active = TRUE THEN 1 ELSE 0 END),
			SUM(available_seats),
			SUM(booked_seats),
			MIN(start_date),
			MAX(end_date)
		FROM product_dates
		WHERE product_id IN (` + strings.Join(placeholders, ",") + `)
		GROUP BY product_id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var pid int64
		var s model.DateRangeStats
		var earliest, latest sql.NullTime
		if err := rows.Scan(&pid, &s.TotalRanges, &s.ActiveRanges,
			&s.TotalAvailableSeats, &s.TotalBookedSeats, &earliest, &latest); err != nil {
			return nil, err
		}
		if earliest.Valid {
			v := earliest.Time.Format(dateLayout)
			s.EarliestDate = &v
		}
		if latest.Valid {
			v := latest.Time.Format(dateLayout)
			s.LatestDate = &v
		}
		stats[pid] = s
	}
	return stats, rows.Err()
}
