// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Convert  ConvertConfig
	Registry RegistryConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing a response (default: 0,
	// disabled because a generate request can outlive any fixed limit)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// TrustedProxies is a comma-separated list of proxy IPs or CIDRs whose
	// X-Real-IP / X-Forwarded-For headers are honored (default: none)
	TrustedProxies string `env:"SERVER_TRUSTED_PROXIES" default:""`
}

// UploadConfig holds form upload and batch run settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed upload size in bytes (default: 50MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"52428800"`

	// MaxConcurrentRuns is the maximum number of parallel batch runs (default: 2)
	MaxConcurrentRuns int `env:"UPLOAD_MAX_CONCURRENT_RUNS" default:"2"`

	// MaxWaitTime is how long to wait for a run slot (default: 30s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"30s"`

	// RunTimeout is the maximum duration for a single batch run (default: 30m).
	// PDF conversion dominates; large batches are slow.
	RunTimeout time.Duration `env:"UPLOAD_RUN_TIMEOUT" default:"30m"`
}

// ConvertConfig holds PDF conversion settings.
type ConvertConfig struct {
	// SofficePath is the LibreOffice binary used for DOCX to PDF conversion
	// (default: soffice, resolved via PATH)
	SofficePath string `env:"CONVERT_SOFFICE_PATH" default:"soffice"`

	// Timeout is the maximum duration for converting one document (default: 2m)
	Timeout time.Duration `env:"CONVERT_TIMEOUT" default:"2m"`
}

// RegistryConfig holds download registry retention settings.
type RegistryConfig struct {
	// TTL is how long a generated archive stays downloadable (default: 1h)
	TTL time.Duration `env:"REGISTRY_TTL" default:"1h"`

	// SweepInterval is how often expired archives are evicted (default: 5m)
	SweepInterval time.Duration `env:"REGISTRY_SWEEP_INTERVAL" default:"5m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ProxyCIDRs splits TrustedProxies into individual entries, dropping blanks.
func (c *ServerConfig) ProxyCIDRs() []string {
	var cidrs []string
	for _, part := range strings.Split(c.TrustedProxies, ",") {
		if part = strings.TrimSpace(part); part != "" {
			cidrs = append(cidrs, part)
		}
	}
	return cidrs
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return fmt.Sprintf(":%d", c.Port)
	}
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
