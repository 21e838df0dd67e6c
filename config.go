package catalog

import "github.com/goliatone/go-catalog/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrPageSizeInvalid         = runtimeconfig.ErrPageSizeInvalid
	ErrPageSizeLimitInvalid    = runtimeconfig.ErrPageSizeLimitInvalid
	ErrAPIBasePathInvalid      = runtimeconfig.ErrAPIBasePathInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	PaginationConfig = runtimeconfig.PaginationConfig
	MarkdownConfig   = runtimeconfig.MarkdownConfig
	APIConfig        = runtimeconfig.APIConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
	Features         = runtimeconfig.Features
)

// DefaultConfig returns opinionated defaults for embedding hosts.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
