package repository

import (
	"context"
	"strings"

	"github.com/wildtrail/booking-backend/internal/model"
)

// validSortFields is the allow-list of columns an order listing may sort by.
// Anything else silently falls back to created_at, so a raw sort_by value is
// never interpolated into SQL.
var validSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"status":     true,
	"email":      true,
	"first_name": true,
	"last_name":  true,
}

// OrderFilter captures the query parameters of the order listing and export
// endpoints.  Zero values mean "no filter".  Normalize must be called before
// the filter is used.
type OrderFilter struct {
	Page      int
	Limit     int
	Status    string // exact match
	Email     string // substring match
	ProductID string // exact match, kept as string and bound as a parameter
	StartDate string // lower bound on created_at
	EndDate   string // upper bound on created_at
	SortBy    string
	SortOrder string
}

// Normalize clamps pagination to sane bounds (page >= 1, limit within
// [1,100]) and restricts the sort field and direction to safe values.
func (f *OrderFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if !validSortFields[f.SortBy] {
		f.SortBy = "created_at"
	}
	if strings.ToUpper(f.SortOrder) == "ASC" {
		f.SortOrder = "ASC"
	} else {
		f.SortOrder = "DESC"
	}
}

// whereClause builds the WHERE fragment and its bound arguments from the
// populated filter fields.
func (f *OrderFilter) whereClause() (string, []any) {
	clause := "WHERE 1=1"
	args := []any{}
	if f.Status != "" {
		clause += " AND status = ?"
		args = append(args, f.Status)
	}
	if f.Email != "" {
		clause += " AND email LIKE ?"
		args = append(args, "%"+f.Email+"%")
	}
	if f.ProductID != "" {
		clause += " AND product_id = ?"
		args = append(args, f.ProductID)
	}
	if f.StartDate != "" {
		clause += " AND created_at >= ?"
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		clause += " AND created_at <= ?"
		args = append(args, f.EndDate)
	}
	return clause, args
}

// Pagination describes the page of results returned by List.
type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalRecords int  `json:"total_records"`
	PerPage      int  `json:"per_page"`
	HasNextPage  bool `json:"has_next_page"`
	HasPrevPage  bool `json:"has_prev_page"`
}

// List returns one page of booking orders matching the filter along with
// pagination info.  The filter must be normalized first.
func (r *BookingRepo) List(ctx context.Context, f OrderFilter) ([]model.BookingOrder, Pagination, error) {
	where, args := f.whereClause()

	var total int
	countQ := `SELECT COUNT(*) FROM booking_orders ` + where
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}

	offset := (f.Page - 1) * f.Limit
	// SortBy and SortOrder are restricted by Normalize, never raw input.
	dataQ := `SELECT ` + bookingColumns + ` FROM booking_orders ` + where +
		` ORDER BY ` + f.SortBy + ` ` + f.SortOrder + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, dataQ, append(args, f.Limit, offset)...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	orders := make([]model.BookingOrder, 0, f.Limit)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		orders = append(orders, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}

	totalPages := (total + f.Limit - 1) / f.Limit
	p := Pagination{
		CurrentPage:  f.Page,
		TotalPages:   totalPages,
		TotalRecords: total,
		PerPage:      f.Limit,
		HasNextPage:  f.Page < totalPages,
		HasPrevPage:  f.Page > 1,
	}
	return orders, p, nil
}

// ListFiltered returns all booking orders matching the status and creation
// date bounds, newest first, without pagination.  It backs the CSV export.
func (r *BookingRepo) ListFiltered(ctx context.Context, status, startDate, endDate string) ([]model.BookingOrder, error) {
	f := OrderFilter{Status: status, StartDate: startDate, EndDate: endDate}
	where, args := f.whereClause()
	q := `SELECT ` + bookingColumns + ` FROM booking_orders ` + where + ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := make([]model.BookingOrder, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *b)
	}
	return orders, rows.Err()
}

// StatsOverview aggregates order counts by status and recency bucket.
type StatsOverview struct {
	TotalOrders     int `json:"total_orders"`
	PendingOrders   int `json:"pending_orders"`
	CompletedOrders int `json:"completed_orders"`
	CancelledOrders int `json:"cancelled_orders"`
	TodayOrders     int `json:"today_orders"`
	WeekOrders      int `json:"week_orders"`
	MonthOrders     int `json:"month_orders"`
}

// TopProduct is one entry of the top-products-by-order-count ranking.
type TopProduct struct {
	ProductID  int64 `json:"product_id"`
	OrderCount int   `json:"order_count"`
}

// Stats computes the order statistics overview plus the top ten products by
// order count.
func (r *BookingRepo) Stats(ctx context.Context) (StatsOverview, []TopProduct, error) {
	const overviewQ = `SELECT
		COUNT(*),
		COUNT(CASE WHEN status = 'pending' THEN 1 END),
		COUNT(CASE WHEN status = 'completed' THEN 1 END),
		COUNT(CASE WHEN status = 'cancelled' THEN 1 END),
		COUNT(CASE WHEN DATE(created_at) = CURDATE() THEN 1 END),
		COUNT(CASE WHEN created_at >= DATE_SUB(NOW(), INTERVAL 7 DAY) THEN 1 END),
		COUNT(CASE WHEN created_at >= DATE_SUB(NOW(), INTERVAL 30 DAY) THEN 1 END)
		FROM booking_orders`
	var ov StatsOverview
	err := r.db.QueryRowContext(ctx, overviewQ).Scan(
		&ov.TotalOrders, &ov.PendingOrders, &ov.CompletedOrders, &ov.CancelledOrders,
		&ov.TodayOrders, &ov.WeekOrders, &ov.MonthOrders,
	)
	if err != nil {
		return StatsOverview{}, nil, err
	}

	const topQ = `SELECT product_id, COUNT(*) AS order_count
		FROM booking_orders
		GROUP BY product_id
		ORDER BY order_count DESC
		LIMIT 10`
	rows, err := r.db.QueryContext(ctx, topQ)
	if err != nil {
		return StatsOverview{}, nil, err
	}
	defer rows.Close()
	top := make([]TopProduct, 0, 10)
	for rows.Next() {
		var t TopProduct
		if err := rows.Scan(&t.ProductID, &t.OrderCount); err != nil {
			return StatsOverview{}, nil, err
		}
		top = append(top, t)
	}
	return ov, top, rows.Err()
}
