package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Coupon  CouponConfig
	Catalog CatalogConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
}

// CouponConfig holds the loyalty-coupon policy parameters.
type CouponConfig struct {
	// Interval is N in the nth-order rule: one coupon per N checkouts.
	Interval int64 `envconfig:"COUPON_INTERVAL" default:"3"`
	// DiscountRate is the fraction taken off the subtotal when a
	// coupon is consumed. Must lie strictly between 0 and 1.
	DiscountRate float64 `envconfig:"DISCOUNT_RATE" default:"0.10"`
}

// CatalogConfig holds catalog seeding configuration.
type CatalogConfig struct {
	// Path points to a JSON product list. Empty means the built-in
	// seed catalog.
	Path string `envconfig:"CATALOG_PATH" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load parses environment variables into the Config struct and
// validates the coupon policy. Invalid policy values are a startup
// error, never a runtime one.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Coupon.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the coupon policy parameters.
func (c CouponConfig) Validate() error {
	if c.Interval < 1 {
		return fmt.Errorf("COUPON_INTERVAL must be a positive integer, got %d", c.Interval)
	}
	if c.DiscountRate <= 0 || c.DiscountRate >= 1 {
		return fmt.Errorf("DISCOUNT_RATE must be strictly between 0 and 1, got %g", c.DiscountRate)
	}
	return nil
}
