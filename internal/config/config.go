package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strings"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings are required; the Shopify and
// admin-auth settings are optional and their absence disables the feature
// rather than failing startup.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	AdminJWTSecret string // secret guarding /api/admin and /api/orders; empty leaves them open
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("PORT", "3000"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASSWORD"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         getenv("DB_NAME", "booking_orders"),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
	}
}

// ShopifyConfig carries the credentials for the remote commerce platform.
// Exactly one of AccessToken (admin REST API) or StorefrontToken (GraphQL
// Storefront API) is used; when both are set the admin token wins because
// it is the richer surface.
type ShopifyConfig struct {
	StoreURL        string // store hostname, scheme and trailing slash stripped
	AccessToken     string // admin API access token (REST checkout style)
	StorefrontToken string // storefront API token (GraphQL cart style)
	APIVersion      string // admin API version, e.g. "2024-01"
}

// LoadShopify reads the Shopify settings from the environment.  The second
// return value reports whether the gateway is configured at all: a store URL
// plus at least one token.  Callers must short-circuit when it is false
// instead of attempting network calls with missing secrets.
func LoadShopify() (ShopifyConfig, bool) {
	c := ShopifyConfig{
		StoreURL:        NormalizeStoreURL(os.Getenv("SHOPIFY_STORE_URL")),
		AccessToken:     os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		StorefrontToken: os.Getenv("SHOPIFY_STOREFRONT_TOKEN"),
		APIVersion:      getenv("SHOPIFY_API_VERSION", "2024-01"),
	}
	configured := c.StoreURL != "" && (c.AccessToken != "" || c.StorefrontToken != "")
	return c, configured
}

// NormalizeStoreURL strips an optional scheme prefix and trailing slashes so
// the value can be embedded in request URLs as a bare hostname.
func NormalizeStoreURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimRight(s, "/")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
