package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/wildtrail/booking-backend/internal/config"
)

// StorefrontClient talks to the GraphQL Storefront API using a public
// storefront token.  It implements Gateway with the "cart" call style:
// checkout creation maps onto the cartCreate mutation and product reads onto
// GraphQL queries over global IDs.
type StorefrontClient struct {
	cfg  config.ShopifyConfig
	http *http.Client
	base string // overrides "https://<store>" in tests
}

// NewStorefrontClient returns a StorefrontClient for the given configuration.
func NewStorefrontClient(cfg config.ShopifyConfig) *StorefrontClient {
	return &StorefrontClient{cfg: cfg, http: newHTTPClient()}
}

// graphqlResponse is the generic envelope of every GraphQL reply.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// query posts one GraphQL document and decodes data into out.  Top-level
// GraphQL errors, transport failures and malformed bodies all come back as
// *Error; userErrors are handled per call site because their location in the
// data tree varies by mutation.
func (c *StorefrontClient) query(ctx context.Context, document string, variables map[string]any, out any) error {
	payload, err := json.Marshal(map[string]any{"query": document, "variables": variables})
	if err != nil {
		return decodeError(err)
	}
	base := c.base
	if base == "" {
		base = "https://" + c.cfg.StoreURL
	}
	endpoint := fmt.Sprintf("%s/api/%s/graphql.json", base, c.cfg.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return networkError(err)
	}
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.cfg.StorefrontToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, raw)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return decodeError(err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return graphqlError(msgs)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return decodeError(err)
		}
	}
	return nil
}

// gid builds a Shopify global ID for the given resource type.
func gid(resource string, id int64) string {
	return fmt.Sprintf("gid://shopify/%s/%d", resource, id)
}

// legacyID extracts the trailing numeric ID from a global ID string.
func legacyID(gidStr string) int64 {
	idx := strings.LastIndexByte(gidStr, '/')
	if idx < 0 {
		return 0
	}
	n, _ := strconv.ParseInt(gidStr[idx+1:], 10, 64)
	return n
}

// userError mirrors the userErrors entries of Storefront mutations.
type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func userErrorMessages(errs []userError) []string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

const cartCreateMutation = `
mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart { id checkoutUrl }
    userErrors { field message }
  }
}`

// CreateCheckout creates a cart carrying the booking metadata as cart
// attributes and returns the normalized checkout value.  The cart's global
// ID doubles as the checkout ID.
func (c *StorefrontClient) CreateCheckout(ctx context.Context, intent BookingIntent) (*Checkout, error) {
	dates, err := json.Marshal(intent.BookingDates)
	if err != nil {
		return nil, decodeError(err)
	}
	qty := intent.Quantity
	if qty < 1 {
		qty = 1
	}
	input := map[string]any{
		"lines": []map[string]any{
			{"merchandiseId": gid("ProductVariant", intent.VariantID), "quantity": qty},
		},
		"attributes": []map[string]string{
			{"key": "booking_dates", "value": string(dates)},
			{"key": "first_name", "value": intent.FirstName},
			{"key": "last_name", "value": intent.LastName},
			{"key": "phone_number", "value": intent.PhoneNumber},
			{"key": "email", "value": intent.Email},
		},
		"buyerIdentity": map[string]any{"email": intent.Email},
	}
	var resp struct {
		CartCreate struct {
			Cart *struct {
				ID          string `json:"id"`
				CheckoutURL string `json:"checkoutUrl"`
			} `json:"cart"`
			UserErrors []userError `json:"userErrors"`
		} `json:"cartCreate"`
	}
	if err := c.query(ctx, cartCreateMutation, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	if len(resp.CartCreate.UserErrors) > 0 {
		return nil, graphqlError(userErrorMessages(resp.CartCreate.UserErrors))
	}
	if resp.CartCreate.Cart == nil {
		return nil, graphqlError([]string{"cartCreate returned no cart"})
	}
	return &Checkout{ID: resp.CartCreate.Cart.ID, URL: resp.CartCreate.Cart.CheckoutURL}, nil
}

const productQuery = `
query product($id: ID!) {
  product(id: $id) {
    id title handle vendor productType createdAt updatedAt
    variants(first: 100) {
      nodes { id title sku price { amount } quantityAvailable }
    }
  }
}`

// gqlProduct mirrors the Storefront product node.
type gqlProduct struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Vendor      string `json:"vendor"`
	ProductType string `json:"productType"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	Variants    struct {
		Nodes []gqlVariant `json:"nodes"`
	} `json:"variants"`
}

type gqlVariant struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	SKU   string `json:"sku"`
	Price struct {
		Amount string `json:"amount"`
	} `json:"price"`
	QuantityAvailable int `json:"quantityAvailable"`
}

// toProduct converts a Storefront node into the normalized Product shape.
// The Storefront API only returns published listings, so status is reported
// as active.
func (p gqlProduct) toProduct() Product {
	out := Product{
		ID:          legacyID(p.ID),
		Title:       p.Title,
		Handle:      p.Handle,
		Status:      "active",
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, v := range p.Variants.Nodes {
		out.Variants = append(out.Variants, v.toVariant())
	}
	return out
}

func (v gqlVariant) toVariant() Variant {
	return Variant{
		ID:                legacyID(v.ID),
		Title:             v.Title,
		Price:             v.Price.Amount,
		SKU:               v.SKU,
		InventoryQuantity: v.QuantityAvailable,
	}
}

// GetProduct fetches one product by numeric ID.  A null node is reworded
// into the same domain message the REST client produces for a 404.
func (c *StorefrontClient) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	var resp struct {
		Product *gqlProduct `json:"product"`
	}
	vars := map[string]any{"id": gid("Product", productID)}
	if err := c.query(ctx, productQuery, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Product == nil {
		return nil, notFoundError("product", productID)
	}
	p := resp.Product.toProduct()
	return &p, nil
}

const variantQuery = `
query variant($id: ID!) {
  node(id: $id) {
    ... on ProductVariant {
      id title sku price { amount } quantityAvailable
    }
  }
}`

// GetVariant fetches one variant by numeric ID via the node lookup.
func (c *StorefrontClient) GetVariant(ctx context.Context, variantID int64) (*Variant, error) {
	var resp struct {
		Node *gqlVariant `json:"node"`
	}
	vars := map[string]any{"id": gid("ProductVariant", variantID)}
	if err := c.query(ctx, variantQuery, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Node == nil || resp.Node.ID == "" {
		return nil, notFoundError("variant", variantID)
	}
	v := resp.Node.toVariant()
	return &v, nil
}

const productsQuery = `
query products {
  products(first: 250) {
    nodes {
      id title handle vendor productType createdAt updatedAt
      variants(first: 100) {
        nodes { id title sku price { amount } quantityAvailable }
      }
    }
  }
}`

// ListProducts fetches the catalog (first 250 published products).
func (c *StorefrontClient) ListProducts(ctx context.Context) ([]Product, error) {
	var resp struct {
		Products struct {
			Nodes []gqlProduct `json:"nodes"`
		} `json:"products"`
	}
	if err := c.query(ctx, productsQuery, nil, &resp); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(resp.Products.Nodes))
	for _, n := range resp.Products.Nodes {
		products = append(products, n.toProduct())
	}
	return products, nil
}
