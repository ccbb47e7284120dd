package config

import "testing"

func TestNormalizeStoreURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"example.myshopify.com", "example.myshopify.com"},
		{"https://example.myshopify.com", "example.myshopify.com"},
		{"http://example.myshopify.com/", "example.myshopify.com"},
		{"  https://example.myshopify.com// ", "example.myshopify.com"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeStoreURL(tc.in); got != tc.want {
			t.Errorf("NormalizeStoreURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoadShopifyConfigured(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_URL", "")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "")
	t.Setenv("SHOPIFY_STOREFRONT_TOKEN", "")
	t.Setenv("SHOPIFY_API_VERSION", "")

	if _, ok := LoadShopify(); ok {
		t.Error("empty environment reported as configured")
	}

	t.Setenv("SHOPIFY_STORE_URL", "https://example.myshopify.com/")
	if _, ok := LoadShopify(); ok {
		t.Error("store URL without any token reported as configured")
	}

	t.Setenv("SHOPIFY_ACCESS_TOKEN", "tok")
	cfg, ok := LoadShopify()
	if !ok {
		t.Fatal("store URL plus access token reported as not configured")
	}
	if cfg.StoreURL != "example.myshopify.com" {
		t.Errorf("StoreURL = %q, want normalized hostname", cfg.StoreURL)
	}
	if cfg.APIVersion != "2024-01" {
		t.Errorf("APIVersion = %q, want default 2024-01", cfg.APIVersion)
	}

	t.Setenv("SHOPIFY_API_VERSION", "2025-04")
	cfg, _ = LoadShopify()
	if cfg.APIVersion != "2025-04" {
		t.Errorf("APIVersion = %q, want override 2025-04", cfg.APIVersion)
	}
}
