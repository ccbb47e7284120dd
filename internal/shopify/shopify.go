// Package shopify wraps the remote commerce platform behind a single Gateway
// interface.  Two mutually exclusive client styles exist: the admin REST API
// (checkout objects) and the GraphQL Storefront API (cart objects).  Which
// one is used depends on the credentials present in the environment.
//
// Every failure crossing the package boundary is a *Error carrying a
// normalized message; raw transport errors never escape.
package shopify

import (
	"context"
	"net/http"
	"time"

	"github.com/wildtrail/booking-backend/internal/config"
)

// BookingIntent is the booking data attached to a remote checkout.  The
// platform does not natively model bookings, so dates and contact info ride
// along as opaque key/value attributes on the checkout or cart.
type BookingIntent struct {
	BookingDates []string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Email        string
	ProductID    int64
	VariantID    int64
	Quantity     int
}

// Checkout is the normalized result of a successful checkout or cart
// creation.  The ID is kept as a string because the two API styles disagree
// on its shape (numeric vs. global ID).
type Checkout struct {
	ID    string `json:"checkout_id"`
	URL   string `json:"checkout_url"`
	Token string `json:"checkout_token,omitempty"`
}

// Variant is a purchasable variation of a product.
type Variant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

// Product is a listing in the remote store together with its variants.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Status      string    `json:"status"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Variants    []Variant `json:"variants"`
}

// Gateway is the capability the rest of the application programs against.
// Implementations normalize all remote error shapes into *Error values.
type Gateway interface {
	// CreateCheckout turns a booking intent into a remote checkout or cart.
	CreateCheckout(ctx context.Context, intent BookingIntent) (*Checkout, error)
	// GetProduct fetches a single product by its numeric ID.
	GetProduct(ctx context.Context, productID int64) (*Product, error)
	// GetVariant fetches a single variant by its numeric ID.
	GetVariant(ctx context.Context, variantID int64) (*Variant, error)
	// ListProducts fetches the product catalog (first page, up to 250).
	ListProducts(ctx context.Context) ([]Product, error)
}

// FromEnv builds the Gateway selected by the environment.  It returns
// (nil, false) when no store URL plus token pair is configured; callers are
// expected to short-circuit instead of attempting network calls.  When both
// credential modes are present the admin REST style wins.
func FromEnv() (Gateway, bool) {
	cfg, ok := config.LoadShopify()
	if !ok {
		return nil, false
	}
	if cfg.AccessToken != "" {
		return NewAdminClient(cfg), true
	}
	return NewStorefrontClient(cfg), true
}

// newHTTPClient builds the client shared by both gateway styles.  The remote
// dependency is unbounded otherwise, so every call carries a hard timeout.
// Redirects are not followed automatically: the admin client replays a
// single hop itself so the method, body and auth header survive.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 5 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
