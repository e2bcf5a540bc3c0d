// Package config loads the service configuration.
//
// Values are layered, later sources winning: built-in defaults, an optional
// YAML file, an optional .env file, HOSTWEAVER_ prefixed environment variables
// and finally command line flags that were explicitly set. Nested keys use a
// double underscore in the environment, so HOSTWEAVER_SERVER__ADDR sets
// server.addr.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/drblury/hostweaver/info"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Docs    DocsConfig    `koanf:"docs"`
	Log     LogConfig     `koanf:"log"`
	CORS    CORSConfig    `koanf:"cors"`
	Metrics MetricsConfig `koanf:"metrics"`
	Probe   ProbeConfig   `koanf:"probe"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gte=0"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type DocsConfig struct {
	Title        string `koanf:"title" validate:"required"`
	Version      string `koanf:"version" validate:"required"`
	Description  string `koanf:"description"`
	UIPath       string `koanf:"ui_path" validate:"required,startswith=/,ne=/"`
	DocumentPath string `koanf:"document_path" validate:"required,startswith=/,endswith=.json"`
	UIType       string `koanf:"ui_type"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

type CORSConfig struct {
	Origins []string `koanf:"origins"`
	Methods []string `koanf:"methods"`
	Headers []string `koanf:"headers"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path" validate:"omitempty,startswith=/"`
}

type ProbeConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// Default returns the configuration used when no other source sets a key.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Docs: DocsConfig{
			Title:        "hostweaver",
			Version:      "0.1.0",
			Description:  "Reports which host is serving the request.",
			UIPath:       "/swagger_ui/",
			DocumentPath: "/openapi.json",
			UIType:       string(info.UISwaggerUI),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			Methods: []string{"GET", "OPTIONS"},
			Headers: []string{"Content-Type"},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Probe: ProbeConfig{
			Timeout: 2 * time.Second,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and the rules tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("%w: server.addr %q: %w", ErrInvalid, c.Server.Addr, err)
	}
	if _, err := info.ParseUIType(c.Docs.UIType); err != nil {
		return fmt.Errorf("%w: docs.ui_type: %w", ErrInvalid, err)
	}

	reserved := map[string]string{
		"/":                 "index route",
		"/hostinfo":         "hostinfo route",
		c.Docs.DocumentPath: "docs.document_path",
		"/healthz":          "liveness probe",
		"/readyz":           "readiness probe",
		"/status":           "status endpoint",
		"/version":          "version endpoint",
	}
	if owner, taken := reserved["/"+strings.Trim(c.Docs.UIPath, "/")]; taken {
		return fmt.Errorf("%w: docs.ui_path %q collides with the %s", ErrInvalid, c.Docs.UIPath, owner)
	}
	if c.Metrics.Enabled {
		if c.Metrics.Path == "" {
			return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalid)
		}
		if owner, taken := reserved[c.Metrics.Path]; taken {
			return fmt.Errorf("%w: metrics.path %q collides with the %s", ErrInvalid, c.Metrics.Path, owner)
		}
	}
	return nil
}

// UI returns the parsed documentation viewer type. Validate guarantees it
// parses.
func (c *Config) UI() info.UIType {
	ui, err := info.ParseUIType(c.Docs.UIType)
	if err != nil {
		return info.UISwaggerUI
	}
	return ui
}
