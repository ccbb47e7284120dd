package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wildtrail/booking-backend/internal/model"
	"github.com/wildtrail/booking-backend/internal/repository"
	"github.com/wildtrail/booking-backend/internal/shopify"
)

// AdminHandler serves the admin surface: booking overview, the merged
// catalog+inventory view and date-range CRUD.
type AdminHandler struct {
	Bookings   *repository.BookingRepo
	Products   *repository.ProductRepo
	DateRanges *repository.DateRangeRepo
	Gateway    shopify.Gateway // nil when not configured
}

// NewAdminHandler constructs an AdminHandler and panics if a repository is nil.
func NewAdminHandler(bookings *repository.BookingRepo, products *repository.ProductRepo, dateRanges *repository.DateRangeRepo, gw shopify.Gateway) *AdminHandler {
	if bookings == nil || products == nil || dateRanges == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Bookings: bookings, Products: products, DateRanges: dateRanges, Gateway: gw}
}

// AllBookings handles GET /api/admin/bookings and returns every booking,
// most recent first, with booking_dates decoded.
func (h *AdminHandler) AllBookings(c echo.Context) error {
	bookings, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": bookings, "count": len(bookings)})
}

// catalogEntry is one row of the merged catalog view: a Shopify variant
// joined with the locally stored date-range aggregates of its product.
type catalogEntry struct {
	ProductID           int64   `json:"product_id"`
	VariantID           int64   `json:"variant_id"`
	ProductName         string  `json:"product_name"`
	VariantName         string  `json:"variant_name"`
	Price               string  `json:"price"`
	SKU                 string  `json:"sku"`
	InventoryQuantity   int     `json:"inventory_quantity"`
	TotalRanges         int     `json:"total_ranges"`
	ActiveRanges        int     `json:"active_ranges"`
	TotalAvailableSeats int     `json:"total_available_seats"`
	TotalBookedSeats    int     `json:"total_booked_seats"`
	EarliestDate        *string `json:"earliest_date"`
	LatestDate          *string `json:"latest_date"`

	ShopifyProduct echo.Map `json:"shopify_product"`
}

// Catalog handles GET /api/admin/products.  The live catalog comes from
// Shopify; local date-range aggregates are merged in per product.  An
// unconfigured gateway is the caller's error (400), a failing gateway is
// ours (500), and an empty catalog is success with an explanatory message.
func (h *AdminHandler) Catalog(c echo.Context) error {
	if h.Gateway == nil {
		return fail(c, http.StatusBadRequest,
			"Shopify is not configured. Set SHOPIFY_STORE_URL and an access token in the environment")
	}
	ctx := c.Request().Context()
	all, err := h.Gateway.ListProducts(ctx)
	if err != nil {
		return failDetail(c, http.StatusInternalServerError, "Failed to fetch products from Shopify", err.Error())
	}

	active := make([]shopify.Product, 0, len(all))
	for _, p := range all {
		if p.Status == "active" {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true, "data": []catalogEntry{}, "count": 0,
			"message": "No active products found in Shopify store",
		})
	}

	ids := make([]int64, 0, len(active))
	for _, p := range active {
		ids = append(ids, p.ID)
	}
	stats, err := h.DateRanges.StatsByProducts(ctx, ids)
	if err != nil {
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}

	entries := make([]catalogEntry, 0, len(active))
	for _, p := range active {
		ps := stats[p.ID] // zero value when the product has no ranges
		meta := echo.Map{
			"id": p.ID, "handle": p.Handle, "status": p.Status,
			"vendor": p.Vendor, "product_type": p.ProductType,
			"created_at": p.CreatedAt, "updated_at": p.UpdatedAt,
		}
		if len(p.Variants) == 0 {
			// No variants: synthesize one using the product's own id.
			entries = append(entries, catalogEntry{
				ProductID: p.ID, VariantID: p.ID, ProductName: p.Title,
				VariantName: "Default", Price: "0.00",
				TotalRanges: ps.TotalRanges, ActiveRanges: ps.ActiveRanges,
				TotalAvailableSeats: ps.TotalAvailableSeats, TotalBookedSeats: ps.TotalBookedSeats,
				EarliestDate: ps.EarliestDate, LatestDate: ps.LatestDate,
				ShopifyProduct: meta,
			})
			continue
		}
		for _, v := range p.Variants {
			name := v.Title
			if name == "" {
				name = "Default"
			}
			entries = append(entries, catalogEntry{
				ProductID: p.ID, VariantID: v.ID, ProductName: p.Title,
				VariantName: name, Price: v.Price, SKU: v.SKU,
				InventoryQuantity: v.InventoryQuantity,
				TotalRanges:       ps.TotalRanges, ActiveRanges: ps.ActiveRanges,
				TotalAvailableSeats: ps.TotalAvailableSeats, TotalBookedSeats: ps.TotalBookedSeats,
				EarliestDate: ps.EarliestDate, LatestDate: ps.LatestDate,
				ShopifyProduct: meta,
			})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true, "data": entries, "count": len(entries), "source": "shopify",
	})
}

// ProductDates handles GET /api/admin/products/:productId/dates.
func (h *AdminHandler) ProductDates(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}
	ranges, err := h.DateRanges.ListByProduct(c.Request().Context(), productID)
	if err != nil {
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": ranges, "count": len(ranges)})
}

// UpsertProduct handles POST /api/admin/products: insert-or-update keyed by
// product_id.  Products are never hard-deleted.
func (h *AdminHandler) UpsertProduct(c echo.Context) error {
	var body struct {
		ProductID   int64   `json:"product_id"`
		VariantID   int64   `json:"variant_id"`
		ProductName string  `json:"product_name"`
		VariantName *string `json:"variant_name"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if body.ProductID == 0 || body.VariantID == 0 || body.ProductName == "" {
		return fail(c, http.StatusBadRequest, "Missing required fields: product_id, variant_id, product_name")
	}
	if err := h.Products.Upsert(c.Request().Context(), model.Product{
		ProductID:   body.ProductID,
		VariantID:   body.VariantID,
		ProductName: body.ProductName,
		VariantName: body.VariantName,
	}); err != nil {
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Product created/updated successfully"})
}

const dateLayout = "2006-01-02"

// parseDate validates a YYYY-MM-DD value.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// CreateDateRange handles POST /api/admin/products/:productId/dates.  The
// range must satisfy end_date >= start_date; equal dates are a single-day
// range and accepted.
func (h *AdminHandler) CreateDateRange(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}
	var body struct {
		StartDate      string `json:"start_date"`
		EndDate        string `json:"end_date"`
		AvailableSeats int    `json:"available_seats"`
		IsActive       *bool  `json:"is_active"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if body.StartDate == "" || body.EndDate == "" {
		return fail(c, http.StatusBadRequest, "Start date and end date are required")
	}
	start, err := parseDate(body.StartDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid start_date format, expected YYYY-MM-DD")
	}
	end, err := parseDate(body.EndDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid end_date format, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return fail(c, http.StatusBadRequest, "End date must be greater than or equal to start date")
	}
	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}
	d := &model.DateRange{
		ProductID:      productID,
		StartDate:      body.StartDate,
		EndDate:        body.EndDate,
		AvailableSeats: body.AvailableSeats,
		IsActive:       active,
	}
	if err := h.DateRanges.Create(c.Request().Context(), d); err != nil {
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true, "message": "Product date range added successfully", "id": d.ID,
	})
}

// UpdateDateRange handles PUT /api/admin/products/:productId/dates/:dateId.
// Any non-empty subset of the mutable fields may be supplied; date ordering
// is re-validated only when both dates arrive together.
func (h *AdminHandler) UpdateDateRange(c echo.Context) error {
	dateID, err := strconv.ParseUint(c.Param("dateId"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid date range id")
	}
	var body struct {
		StartDate      *string `json:"start_date"`
		EndDate        *string `json:"end_date"`
		AvailableSeats *int    `json:"available_seats"`
		BookedSeats    *int    `json:"booked_seats"`
		IsActive       *bool   `json:"is_active"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	patch := repository.DateRangePatch{
		StartDate:      body.StartDate,
		EndDate:        body.EndDate,
		AvailableSeats: body.AvailableSeats,
		BookedSeats:    body.BookedSeats,
		IsActive:       body.IsActive,
	}
	if patch.Empty() {
		return fail(c, http.StatusBadRequest, "No fields to update")
	}
	if body.StartDate != nil {
		if _, err := parseDate(*body.StartDate); err != nil {
			return fail(c, http.StatusBadRequest, "invalid start_date format, expected YYYY-MM-DD")
		}
	}
	if body.EndDate != nil {
		if _, err := parseDate(*body.EndDate); err != nil {
			return fail(c, http.StatusBadRequest, "invalid end_date format, expected YYYY-MM-DD")
		}
	}
	if body.StartDate != nil && body.EndDate != nil {
		start, _ := parseDate(*body.StartDate)
		end, _ := parseDate(*body.EndDate)
		if end.Before(start) {
			return fail(c, http.StatusBadRequest, "End date must be greater than or equal to start date")
		}
	}
	if err := h.DateRanges.Update(c.Request().Context(), dateID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Product date range not found")
		}
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product date range updated successfully"})
}

// DeleteDateRange handles DELETE /api/admin/products/:productId/dates/:dateId.
// Deleting an id twice yields 404 the second time (zero rows affected).
func (h *AdminHandler) DeleteDateRange(c echo.Context) error {
	dateID, err := strconv.ParseUint(c.Param("dateId"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid date range id")
	}
	if err := h.DateRanges.Delete(c.Request().Context(), dateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Product date range not found")
		}
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product date range deleted successfully"})
}
