package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageProviderUnknown = errors.New("catalog config: storage provider is invalid")
var ErrStorageDriverUnknown = errors.New("catalog config: storage driver is invalid")
var ErrPageSizeInvalid = errors.New("catalog config: default page size must be positive")
var ErrPageSizeLimitInvalid = errors.New("catalog config: max page size must be at least the default page size")
var ErrAPIBasePathInvalid = errors.New("catalog config: api base path must start with '/'")
var ErrLoggingProviderRequired = errors.New("catalog config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("catalog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("catalog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("catalog config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the catalog
// module. Fields intentionally use simple types so host applications can map
// them from their own configuration layers.
type Config struct {
	Enabled    bool
	Storage    StorageConfig
	Cache      CacheConfig
	Pagination PaginationConfig
	Markdown   MarkdownConfig
	API        APIConfig
	Logging    LoggingConfig
	Features   Features
}

// StorageConfig selects the persistence backend. Driver and DSN only apply
// to the "bun" provider; sqlite is assumed when Driver is empty.
type StorageConfig struct {
	Provider string
	Driver   string
	DSN      string
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// PaginationConfig bounds listing windows.
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// MarkdownConfig tunes article body rendering.
type MarkdownConfig struct {
	Enabled   bool
	HardWraps bool
	Unsafe    bool
}

// APIConfig captures the HTTP surface bindings.
type APIConfig struct {
	BasePath    string
	BearerToken string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Logger   bool
	Markdown bool
	HTTP     bool
}

// DefaultConfig returns opinionated defaults.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Pagination: PaginationConfig{
			DefaultPageSize: 25,
			MaxPageSize:     100,
		},
		Markdown: MarkdownConfig{
			Enabled: true,
		},
		API: APIConfig{
			BasePath: "/api",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Markdown: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if provider := normalizeProvider(cfg.Storage.Provider); provider != "" && !isSupportedStorage(provider) {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if driver := normalizeProvider(cfg.Storage.Driver); driver != "" && !isSupportedDriver(driver) {
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Pagination.DefaultPageSize < 1 {
		return ErrPageSizeInvalid
	}
	if cfg.Pagination.MaxPageSize > 0 && cfg.Pagination.MaxPageSize < cfg.Pagination.DefaultPageSize {
		return ErrPageSizeLimitInvalid
	}
	if base := strings.TrimSpace(cfg.API.BasePath); base != "" && !strings.HasPrefix(base, "/") {
		return fmt.Errorf("%w: %s", ErrAPIBasePathInvalid, base)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLoggingProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedStorage(provider string) bool {
	switch provider {
	case "memory", "bun":
		return true
	default:
		return false
	}
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "sqlite", "sqlite3", "postgres", "pg":
		return true
	default:
		return false
	}
}

func isSupportedLoggingProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
