package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cart"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"BIND_ADDR", "LOG_LEVEL", "LOG_FORMAT", "DEBUG_MODE", "DATABASE_URL",
		"CATALOG_SOURCE", "CATALOG_FILE", "FREE_SHIPPING_THRESHOLD", "SHIPPING_FEE", "CART_TTL", "CART_DEMO",
		"CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CAROUSEL_INTERVAL", "SITE_URL"} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.BindAddr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, SourceStatic, cfg.CatalogSource)
	assert.Equal(t, cart.DefaultPricing, cfg.Pricing)
	assert.Equal(t, 24*time.Hour, cfg.CartTTL)
	assert.Equal(t, 5*time.Second, cfg.CarouselInterval)
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.False(t, cfg.CartDemo)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("CATALOG_SOURCE", "file")
	t.Setenv("CATALOG_FILE", "catalog.yaml")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "35")
	t.Setenv("SHIPPING_FEE", "4.5")
	t.Setenv("CART_DEMO", "yes")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, SourceFile, cfg.CatalogSource)
	assert.Equal(t, cart.Pricing{FreeShippingThreshold: 35, ShippingFee: 4.5}, cfg.Pricing)
	assert.True(t, cfg.CartDemo)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOrigins)
}

func TestFromEnv_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("SHIPPING_FEE", "free")
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("CART_TTL", "forever")

	_, err := FromEnv()
	require.Error(t, err)
	assert.ErrorContains(t, err, "LOG_LEVEL")
	assert.ErrorContains(t, err, "SHIPPING_FEE")
	assert.ErrorContains(t, err, "DATABASE_URL is required")
	assert.ErrorContains(t, err, "CART_TTL")
}

func TestFromEnv_NonPositive(t *testing.T) {
	clearEnv(t)
	t.Setenv("CAROUSEL_INTERVAL", "0s")
	t.Setenv("RATE_LIMIT_BURST", "0")

	_, err := FromEnv()
	require.Error(t, err)
	assert.ErrorContains(t, err, "CAROUSEL_INTERVAL must be positive")
	assert.ErrorContains(t, err, "RATE_LIMIT_BURST must be positive")
}
