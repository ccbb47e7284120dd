package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/wildtrail/booking-backend/internal/config"
)

// AdminClient talks to the Shopify admin REST API using a private-app access
// token.  It implements Gateway with the "checkout" call style.
type AdminClient struct {
	cfg  config.ShopifyConfig
	http *http.Client
	base string // overrides "https://<store>" in tests
}

// NewAdminClient returns an AdminClient for the given configuration.
func NewAdminClient(cfg config.ShopifyConfig) *AdminClient {
	return &AdminClient{cfg: cfg, http: newHTTPClient()}
}

func (c *AdminClient) baseURL() string {
	if c.base != "" {
		return c.base
	}
	return "https://" + c.cfg.StoreURL
}

// endpoint builds the full admin API URL for a path like "products/123".
// The ".json" suffix Shopify requires is appended when missing.
func (c *AdminClient) endpoint(path string) string {
	base, query := path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		base, query = path[:i], path[i:]
	}
	if !strings.HasSuffix(base, ".json") {
		base += ".json"
	}
	return fmt.Sprintf("%s/admin/api/%s/%s%s", c.baseURL(), c.cfg.APIVersion, base, query)
}

// do issues one request and decodes the 2xx response body into out.  A 3xx
// response is followed exactly once, replaying the method, body and access
// token; a second redirect is a gateway error.  All failures come back as
// *Error.
func (c *AdminClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return decodeError(err)
		}
	}

	resp, raw, err := c.roundTrip(ctx, method, c.endpoint(path), body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		loc := resp.Header.Get("Location")
		if loc == "" {
			return &Error{Kind: KindAPI, Status: resp.StatusCode, Message: "redirect without Location header"}
		}
		target, perr := url.Parse(loc)
		if perr != nil {
			return &Error{Kind: KindAPI, Status: resp.StatusCode, Message: "unusable redirect location"}
		}
		if !target.IsAbs() {
			base, _ := url.Parse(c.baseURL())
			target = base.ResolveReference(target)
		}
		resp, raw, err = c.roundTrip(ctx, method, target.String(), body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			return &Error{Kind: KindAPI, Status: resp.StatusCode, Message: "redirect not resolved after one hop"}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return decodeError(err)
	}
	return nil
}

// roundTrip performs a single HTTP exchange and reads the full body.
func (c *AdminClient) roundTrip(ctx context.Context, method, fullURL string, body []byte) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, nil, networkError(err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, networkError(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, networkError(err)
	}
	return resp, raw, nil
}

// restCheckout mirrors the checkout object of the admin REST API.
type restCheckout struct {
	ID     json.Number `json:"id"`
	WebURL string      `json:"web_url"`
	Token  string      `json:"token"`
}

// CreateCheckout creates a checkout with one line item for the booked
// variant and the booking metadata attached as custom attributes.
func (c *AdminClient) CreateCheckout(ctx context.Context, intent BookingIntent) (*Checkout, error) {
	dates, err := json.Marshal(intent.BookingDates)
	if err != nil {
		return nil, decodeError(err)
	}
	qty := intent.Quantity
	if qty < 1 {
		qty = 1
	}
	payload := map[string]any{
		"checkout": map[string]any{
			"line_items": []map[string]any{
				{"variant_id": intent.VariantID, "quantity": qty},
			},
			"custom_attributes": []map[string]string{
				{"key": "booking_dates", "value": string(dates)},
				{"key": "first_name", "value": intent.FirstName},
				{"key": "last_name", "value": intent.LastName},
				{"key": "phone_number", "value": intent.PhoneNumber},
				{"key": "email", "value": intent.Email},
			},
			"email": intent.Email,
		},
	}
	var resp struct {
		Checkout restCheckout `json:"checkout"`
	}
	if err := c.do(ctx, http.MethodPost, "checkouts", payload, &resp); err != nil {
		return nil, err
	}
	return &Checkout{
		ID:    resp.Checkout.ID.String(),
		URL:   resp.Checkout.WebURL,
		Token: resp.Checkout.Token,
	}, nil
}

// GetProduct fetches one product.  A 404 is reworded into a domain message.
func (c *AdminClient) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	var resp struct {
		Product Product `json:"product"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("products/%d", productID), nil, &resp)
	if err != nil {
		if ge, ok := err.(*Error); ok && ge.NotFound() {
			return nil, notFoundError("product", productID)
		}
		return nil, err
	}
	return &resp.Product, nil
}

// GetVariant fetches one variant.  A 404 is reworded into a domain message.
func (c *AdminClient) GetVariant(ctx context.Context, variantID int64) (*Variant, error) {
	var resp struct {
		Variant Variant `json:"variant"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("variants/%d", variantID), nil, &resp)
	if err != nil {
		if ge, ok := err.(*Error); ok && ge.NotFound() {
			return nil, notFoundError("variant", variantID)
		}
		return nil, err
	}
	return &resp.Variant, nil
}

// ListProducts fetches the first page of active products (up to 250).
func (c *AdminClient) ListProducts(ctx context.Context) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "products?status=active", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}
