// Package config loads the connection settings for the GraphQL endpoint.
//
// Values are layered: placeholder defaults, then an optional YAML file, then
// TELOGICAL_* environment variables. Command line flags are applied last by
// the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"

	"github.com/telogical/gqlx/pkg/dispatch"
)

const (
	EnvEndpoint  = "TELOGICAL_GRAPHQL_ENDPOINT"
	EnvAuthToken = "TELOGICAL_AUTH_TOKEN"
	EnvLocale    = "TELOGICAL_LOCALE"
	EnvTimeout   = "TELOGICAL_TIMEOUT"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config mirrors the YAML file layout. The env tags must match the Env*
// constants.
type Config struct {
	Endpoint  string `yaml:"endpoint" env:"TELOGICAL_GRAPHQL_ENDPOINT"`
	AuthToken string `yaml:"auth_token" env:"TELOGICAL_AUTH_TOKEN"`
	Locale    string `yaml:"locale" env:"TELOGICAL_LOCALE"`

	// TimeoutStr is the per-query timeout, e.g. "30s".
	TimeoutStr string `yaml:"timeout" env:"TELOGICAL_TIMEOUT"`

	timeout time.Duration
}

// Default returns the placeholder configuration. Dispatching with it fails
// with dispatch.ErrNotConfigured.
func Default() Config {
	return Config{
		Endpoint:   dispatch.PlaceholderEndpoint,
		AuthToken:  dispatch.PlaceholderAuthToken,
		Locale:     dispatch.PlaceholderLocale,
		TimeoutStr: dispatch.DefaultTimeout.String(),
		timeout:    dispatch.DefaultTimeout,
	}
}

// Load applies the file at path (if any) and the environment on top of the
// defaults. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := cfg.merge(data); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}
	// Unset or empty variables leave the file value in place.
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge overlays the non-empty values of a YAML document.
func (c *Config) merge(data []byte) error {
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	if file.Endpoint != "" {
		c.Endpoint = file.Endpoint
	}
	if file.AuthToken != "" {
		c.AuthToken = file.AuthToken
	}
	if file.Locale != "" {
		c.Locale = file.Locale
	}
	if file.TimeoutStr != "" {
		c.TimeoutStr = file.TimeoutStr
	}
	return nil
}

// Validate parses the timeout. A bare number is read as seconds.
func (c *Config) Validate() error {
	s := strings.TrimSpace(c.TimeoutStr)
	if s == "" {
		c.timeout = dispatch.DefaultTimeout
		c.TimeoutStr = c.timeout.String()
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		secs, serr := strconv.Atoi(s)
		if serr != nil {
			return fmt.Errorf("%w: timeout %q: %v", ErrInvalidConfig, c.TimeoutStr, err)
		}
		d = time.Duration(secs) * time.Second
	}
	if d <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.TimeoutStr)
	}
	c.timeout = d
	return nil
}

// SetTimeout overrides the timeout, e.g. from a flag.
func (c *Config) SetTimeout(d time.Duration) {
	c.timeout = d
	c.TimeoutStr = d.String()
}

func (c Config) Timeout() time.Duration {
	if c.timeout == 0 {
		return dispatch.DefaultTimeout
	}
	return c.timeout
}

// Dispatch converts the settings for dispatch.New.
func (c Config) Dispatch() dispatch.Config {
	return dispatch.Config{
		Endpoint:  c.Endpoint,
		AuthToken: c.AuthToken,
		Locale:    c.Locale,
		Timeout:   c.Timeout(),
	}
}

// String masks the auth token.
func (c Config) String() string {
	token := "<unset>"
	if c.AuthToken != "" && c.AuthToken != dispatch.PlaceholderAuthToken {
		token = "<redacted>"
	}
	return fmt.Sprintf("endpoint=%s locale=%s timeout=%s token=%s", c.Endpoint, c.Locale, c.Timeout(), token)
}
