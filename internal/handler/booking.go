package handler // handler contains the HTTP handlers for the booking API

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wildtrail/booking-backend/internal/model"
	"github.com/wildtrail/booking-backend/internal/queue"
	"github.com/wildtrail/booking-backend/internal/repository"
	queue_publisher "github.com/wildtrail/booking-backend/internal/service"
	"github.com/wildtrail/booking-backend/internal/shopify"
)

// emailPattern is a basic address-shape check: something, an @, something,
// a dot, something.  Deliverability is the commerce platform's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// BookingHandler serves the public booking endpoints.  Gateway is nil when
// Shopify is not configured; in that state bookings are created without a
// checkout and unknown products are auto-registered locally.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Products *repository.ProductRepo
	Gateway  shopify.Gateway // nil when not configured
}

// NewBookingHandler constructs a BookingHandler and panics if a repository is nil.
func NewBookingHandler(bookings *repository.BookingRepo, products *repository.ProductRepo, gw shopify.Gateway) *BookingHandler {
	if bookings == nil || products == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Products: products, Gateway: gw}
}

// createBookingRequest is the JSON body of POST /api/booking/create.
type createBookingRequest struct {
	BookingDates []string `json:"booking_dates"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	PhoneNumber  string   `json:"phone_number"`
	Email        string   `json:"email"`
	ProductID    int64    `json:"product_id"`
	VariantID    int64    `json:"variant_id"`
	Quantity     int      `json:"quantity"`
}

var requiredBookingFields = []string{
	"booking_dates", "first_name", "last_name", "phone_number", "email", "product_id", "variant_id",
}

// validate checks the request before any side effect takes place.  It
// returns an empty string when the request is acceptable.
func (r *createBookingRequest) validate() (string, echo.Map) {
	if len(r.BookingDates) == 0 || r.FirstName == "" || r.LastName == "" ||
		r.PhoneNumber == "" || r.Email == "" || r.ProductID == 0 || r.VariantID == 0 {
		if r.FirstName == "" || r.LastName == "" || r.PhoneNumber == "" ||
			r.Email == "" || r.ProductID == 0 || r.VariantID == 0 {
			return "Missing required fields", echo.Map{"required_fields": requiredBookingFields}
		}
		return "booking_dates must be a non-empty array", nil
	}
	if !emailPattern.MatchString(r.Email) {
		return "Invalid email format", nil
	}
	return "", nil
}

// CreateBooking handles POST /api/booking/create.  The booking row is the
// durable record; checkout creation against Shopify is best-effort and a
// failure there leaves the checkout fields null rather than aborting the
// booking.  Product and variant verification, by contrast, is strict: a
// booking for an ID the store does not know is rejected outright.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg, extra := req.validate(); msg != "" {
		resp := echo.Map{"success": false, "error": msg}
		for k, v := range extra {
			resp[k] = v
		}
		return c.JSON(http.StatusBadRequest, resp)
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	ctx := c.Request().Context()
	var checkout *shopify.Checkout
	productTitle := "Unregistered product"
	variantTitle := "Default"
	variantPrice := "0.00"

	if h.Gateway != nil {
		product, err := h.Gateway.GetProduct(ctx, req.ProductID)
		if err != nil {
			return failDetail(c, http.StatusBadRequest, "Invalid product ID", err.Error())
		}
		variant, err := h.Gateway.GetVariant(ctx, req.VariantID)
		if err != nil {
			return failDetail(c, http.StatusBadRequest, "Invalid variant ID", err.Error())
		}
		productTitle = product.Title
		if variant.Title != "" {
			variantTitle = variant.Title
		}
		variantPrice = variant.Price

		checkout, err = h.Gateway.CreateCheckout(ctx, shopify.BookingIntent{
			BookingDates: req.BookingDates,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PhoneNumber:  req.PhoneNumber,
			Email:        req.Email,
			ProductID:    req.ProductID,
			VariantID:    req.VariantID,
			Quantity:     req.Quantity,
		})
		if err != nil {
			// Lenient policy: keep the booking, drop the checkout.
			log.Printf("checkout creation failed, continuing without checkout: %v", err)
			checkout = nil
		}
	} else {
		log.Printf("shopify not configured - creating booking without checkout")
	}

	// Auto-register the product locally so the catalog tracks what was sold.
	vt := variantTitle
	if err := h.Products.Upsert(ctx, model.Product{
		ProductID:   req.ProductID,
		VariantID:   req.VariantID,
		ProductName: productTitle,
		VariantName: &vt,
	}); err != nil {
		log.Printf("product auto-registration failed for %d: %v", req.ProductID, err)
	}

	booking := &model.BookingOrder{
		BookingDates: req.BookingDates,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		ProductID:    req.ProductID,
		VariantID:    req.VariantID,
		Quantity:     req.Quantity,
	}
	if checkout != nil {
		id, url := checkout.ID, checkout.URL
		booking.ShopifyCheckoutID = &id
		booking.ShopifyCheckoutURL = &url
	}
	if err := h.Bookings.Create(ctx, booking); err != nil {
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}

	// Best-effort event for downstream consumers; never blocks the response.
	if err := queue_publisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID:    booking.ID,
		BookingDates: booking.BookingDates,
		Email:        booking.Email,
		ProductID:    booking.ProductID,
		VariantID:    booking.VariantID,
		Quantity:     booking.Quantity,
		Status:       booking.Status,
		CreatedAt:    booking.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("booking.created publish failed for %d: %v", booking.ID, err)
	}

	data := echo.Map{
		"booking_id": booking.ID,
		"product_info": echo.Map{
			"product_title": productTitle,
			"variant_title": variantTitle,
			"price":         variantPrice,
		},
	}
	if checkout != nil {
		data["checkout_id"] = checkout.ID
		data["checkout_url"] = checkout.URL
	} else {
		data["checkout_id"] = nil
		data["checkout_url"] = nil
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Booking created successfully",
		"data":    data,
	})
}

// GetBooking handles GET /api/booking/:id and returns the stored row with
// booking_dates decoded back into a list.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	booking, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Booking not found")
		}
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": booking})
}

// UpdateStatus handles PUT /api/booking/:id/status.  The target status must
// be one of pending, completed or cancelled.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if !model.ValidStatus(body.Status) {
		return fail(c, http.StatusBadRequest, "Invalid status. Must be: pending, completed, or cancelled")
	}
	if err := h.Bookings.UpdateStatus(c.Request().Context(), id, body.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Booking not found")
		}
		return failDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Booking status updated successfully"})
}

// fail writes the standard failure envelope.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}

// failDetail writes the failure envelope with a diagnostic details field.
func failDetail(c echo.Context, status int, msg, details string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg, "details": details})
}
