package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wildtrail/booking-backend/internal/model"
	"github.com/wildtrail/booking-backend/internal/repository"
)

// OrderHandler serves the order administration endpoints: filtered listing,
// statistics, CSV export and deletion.
type OrderHandler struct {
	Bookings *repository.BookingRepo
}

// NewOrderHandler constructs an OrderHandler and panics if the repository is nil.
func NewOrderHandler(bookings *repository.BookingRepo) *OrderHandler {
	if bookings == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Bookings: bookings}
}

// ListOrders handles GET /api/orders with pagination, filtering and a
// sort-field allow-list.  Out-of-range page and limit values are clamped
// rather than rejected.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	filter := repository.OrderFilter{
		Page:      atoiDefault(c.QueryParam("page"), 1),
		Limit:     atoiDefault(c.QueryParam("limit"), 10),
		Status:    c.QueryParam("status"),
		Email:     c.QueryParam("email"),
		ProductID: c.QueryParam("product_id"),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}
	filter.Normalize()

	orders, pagination, err := h.Bookings.List(c.Request().Context(), filter)
	if err != nil {
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"orders":     orders,
			"pagination": pagination,
		},
	})
}

// OrderStats handles GET /api/orders/stats.
func (h *OrderHandler) OrderStats(c echo.Context) error {
	overview, top, err := h.Bookings.Stats(c.Request().Context())
	if err != nil {
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"overview":     overview,
			"top_products": top,
		},
	})
}

// exportHeader is the CSV column set of the order export.
var exportHeader = []string{
	"ID", "Booking Dates", "First Name", "Last Name", "Phone", "Email",
	"Product ID", "Variant ID", "Quantity", "Checkout ID", "Status", "Created At", "Updated At",
}

// exportRecords flattens booking orders into CSV rows.  Booking dates are
// joined with ";" so the sequence survives inside a single cell.
func exportRecords(orders []model.BookingOrder) [][]string {
	records := make([][]string, 0, len(orders)+1)
	records = append(records, exportHeader)
	for _, o := range orders {
		checkoutID := ""
		if o.ShopifyCheckoutID != nil {
			checkoutID = *o.ShopifyCheckoutID
		}
		records = append(records, []string{
			strconv.FormatUint(o.ID, 10),
			strings.Join(o.BookingDates, ";"),
			o.FirstName,
			o.LastName,
			o.PhoneNumber,
			o.Email,
			strconv.FormatInt(o.ProductID, 10),
			strconv.FormatInt(o.VariantID, 10),
			strconv.Itoa(o.Quantity),
			checkoutID,
			o.Status,
			o.CreatedAt.UTC().Format(time.RFC3339),
			o.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return records
}

// ExportOrders handles GET /api/orders/export.  It accepts the status and
// creation-date filters of the listing endpoint but no pagination, and
// streams the result as a CSV attachment.
func (h *OrderHandler) ExportOrders(c echo.Context) error {
	orders, err := h.Bookings.ListFiltered(c.Request().Context(),
		c.QueryParam("status"), c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="booking_orders_%d.csv"`, time.Now().UnixMilli()))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.WriteAll(exportRecords(orders)); err != nil {
		return err
	}
	return nil
}

// DeleteOrder handles DELETE /api/orders/:id.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Bookings.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Order not found")
		}
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Order deleted successfully"})
}

// atoiDefault parses s, falling back to def on empty or malformed input.
func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
