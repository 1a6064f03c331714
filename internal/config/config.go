// Package config reads service settings from the environment (a .env file is autoloaded by the binaries).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/internal/cart"
)

type CatalogSource string

const (
	SourceStatic   CatalogSource = "static"
	SourceFile     CatalogSource = "file"
	SourcePostgres CatalogSource = "postgres"
)

type Config struct {
	BindAddr  string
	LogLevel  slog.Level
	LogFormat string
	DebugMode bool

	DatabaseUrl   string
	CatalogSource CatalogSource
	CatalogFile   string

	Pricing  cart.Pricing
	CartTTL  time.Duration
	CartDemo bool

	CorsOrigins      []string
	RateLimitRPS     float64
	RateLimitBurst   int
	CarouselInterval time.Duration
	// SiteUrl is the public storefront address used for links in feeds
	SiteUrl string
}

func getEnvOrDefault(key, default_ string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}

	return default_
}

func getBoolEnv(key string) bool {
	if val := strings.ToLower(os.Getenv(key)); val == "yes" || val == "on" || val == "true" {
		return true
	}

	return false
}

// FromEnv collects every setting, reporting all malformed variables at once
func FromEnv() (*Config, error) {
	var errs []error

	float := func(key, default_ string) float64 {
		v, err := strconv.ParseFloat(getEnvOrDefault(key, default_), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be a number: %w", key, err))
		}
		return v
	}

	duration := func(key, default_ string) time.Duration {
		v, err := time.ParseDuration(getEnvOrDefault(key, default_))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be a duration: %w", key, err))
		}
		return v
	}

	cfg := &Config{
		BindAddr:      getEnvOrDefault("BIND_ADDR", ":8080"),
		LogFormat:     strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
		DebugMode:     getBoolEnv("DEBUG_MODE"),
		DatabaseUrl:   os.Getenv("DATABASE_URL"),
		CatalogSource: CatalogSource(strings.ToLower(getEnvOrDefault("CATALOG_SOURCE", string(SourceStatic)))),
		CatalogFile:   os.Getenv("CATALOG_FILE"),
		Pricing: cart.Pricing{
			FreeShippingThreshold: float("FREE_SHIPPING_THRESHOLD", "25"),
			ShippingFee:           float("SHIPPING_FEE", "5.99"),
		},
		CartTTL:          duration("CART_TTL", "24h"),
		CartDemo:         getBoolEnv("CART_DEMO"),
		RateLimitRPS:     float("RATE_LIMIT_RPS", "2"),
		CarouselInterval: duration("CAROUSEL_INTERVAL", "5s"),
		SiteUrl:          getEnvOrDefault("SITE_URL", "http://localhost:5173"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnvOrDefault("LOG_LEVEL", "debug"))); err != nil {
		errs = append(errs, errors.New("LOG_LEVEL must be one of debug, info, warn or error"))
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, errors.New("LOG_FORMAT must be json or text"))
	}

	burst, err := strconv.Atoi(getEnvOrDefault("RATE_LIMIT_BURST", "5"))
	if err != nil {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be an integer: %w", err))
	}
	cfg.RateLimitBurst = burst

	for _, origin := range strings.Split(getEnvOrDefault("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CorsOrigins = append(cfg.CorsOrigins, origin)
		}
	}

	switch cfg.CatalogSource {
	case SourceStatic:
	case SourceFile:
		if cfg.CatalogFile == "" {
			errs = append(errs, errors.New("CATALOG_FILE is required when CATALOG_SOURCE is file"))
		}
	case SourcePostgres:
		if cfg.DatabaseUrl == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when CATALOG_SOURCE is postgres"))
		}
	default:
		errs = append(errs, errors.New("CATALOG_SOURCE must be static, file or postgres"))
	}

	if cfg.CartTTL <= 0 || cfg.CarouselInterval <= 0 {
		errs = append(errs, errors.New("CART_TTL and CAROUSEL_INTERVAL must be positive"))
	}

	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	if cfg.Pricing.FreeShippingThreshold < 0 || cfg.Pricing.ShippingFee < 0 {
		errs = append(errs, errors.New("FREE_SHIPPING_THRESHOLD and SHIPPING_FEE must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return cfg, nil
}
