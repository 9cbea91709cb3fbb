package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the HTTP service settings. LoadConfig reads them from
// OPENACCOUNT_* environment variables; binaries may override individual
// fields with flags afterwards.
type Config struct {
	// Addr is the listen address.
	Addr string `env:"OPENACCOUNT_ADDR" envDefault:":8080"`

	// PublicURL, when set, is advertised as the server URL in the OpenAPI
	// document.
	PublicURL string `env:"OPENACCOUNT_PUBLIC_URL"`

	// Theme and ThemeVariant pick the default theme for rendered pages.
	// Empty means unthemed.
	Theme        string `env:"OPENACCOUNT_THEME"`
	ThemeVariant string `env:"OPENACCOUNT_THEME_VARIANT"`

	// CSRF toggles double-submit token protection on the HTML form.
	CSRF bool `env:"OPENACCOUNT_CSRF" envDefault:"true"`

	// MaxBodyBytes caps request bodies on the submission routes.
	MaxBodyBytes int64 `env:"OPENACCOUNT_MAX_BODY_BYTES" envDefault:"1048576"`

	// ShutdownGrace bounds how long Run waits for in-flight requests after
	// the context is cancelled.
	ShutdownGrace time.Duration `env:"OPENACCOUNT_SHUTDOWN_GRACE" envDefault:"5s"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		CSRF:          true,
		MaxBodyBytes:  1 << 20,
		ShutdownGrace: 5 * time.Second,
	}
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("server: parse env: %w", err)
	}
	return cfg.normalized(), nil
}

// normalized fills zero values so hand-built configs behave like loaded
// ones. CSRF is left alone: false is a valid choice.
func (c Config) normalized() Config {
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = ":8080"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	if c.ShutdownGrace <= 0 {
		c.ShutdownGrace = 5 * time.Second
	}
	return c
}
