package storefront

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/reservat/storefront-go/storage"
)

// Option configures a Client during construction in New.
//
// Options are applied before the bearer transport wrapper is installed, so
// transport-related options (like debug logging) end up underneath it.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this is a coarse
// safety net bounding the total time of one HTTP request. Must be > 0.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// dumped to the log when enabled is true. Not for production use; dumps
// include headers and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithLogger replaces the no-op default logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

// WithStorage selects the durable backend for the token and cart. Defaults
// to in-memory, which does not survive restarts; embedders wanting
// localStorage-like durability pass storage.NewFile or storage.NewRedis.
func WithStorage(p storage.Port) Option {
	return func(c *Client) error {
		if p == nil {
			return fmt.Errorf("storage port must not be nil")
		}
		c.port = p
		return nil
	}
}

// WithCheckoutWorkers caps the number of concurrent reservation requests a
// checkout fan-out issues.
func WithCheckoutWorkers(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return fmt.Errorf("checkout workers must be > 0")
		}
		c.poolCfg.Workers = n
		return nil
	}
}

// WithCheckoutRetry tunes per-line retry behaviour during checkout.
func WithCheckoutRetry(maxAttempts int, baseBackoff time.Duration) Option {
	return func(c *Client) error {
		if maxAttempts <= 0 {
			return fmt.Errorf("max attempts must be > 0")
		}
		c.poolCfg.MaxAttempts = maxAttempts
		c.poolCfg.BaseBackoff = baseBackoff
		return nil
	}
}

// envSettings are the RESERVAT_* environment overrides read by FromEnv.
type envSettings struct {
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT"`
	Debug       bool          `envconfig:"DEBUG"`
	CartFile    string        `envconfig:"CART_FILE"`
}

// FromEnv applies RESERVAT_HTTP_TIMEOUT, RESERVAT_DEBUG and
// RESERVAT_CART_FILE (a path enabling file-backed storage) when set.
func FromEnv() Option {
	return func(c *Client) error {
		var s envSettings
		if err := envconfig.Process("reservat", &s); err != nil {
			return err
		}
		if s.HTTPTimeout > 0 {
			c.http.Timeout = s.HTTPTimeout
		}
		if s.Debug {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		if s.CartFile != "" {
			c.port = storage.NewFile(s.CartFile)
		}
		return nil
	}
}
