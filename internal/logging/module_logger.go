package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-catalog/pkg/interfaces"
)

const (
	rootModule     = "catalog"
	pagesModule    = "catalog.pages"
	articlesModule = "catalog.articles"
	productsModule = "catalog.products"
	taxonomyModule = "catalog.taxonomy"
	mediaModule    = "catalog.media"
	httpModule     = "catalog.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// WithFields attaches structured fields when the logger supports the
// optional FieldsLogger extension; otherwise the logger passes through
// unchanged. The fields map is copied before handoff.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// PagesLogger returns the logger namespace reserved for page services.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// ArticlesLogger returns the logger namespace reserved for article services.
func ArticlesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, articlesModule)
}

// ProductsLogger returns the logger namespace reserved for product services.
func ProductsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, productsModule)
}

// TaxonomyLogger returns the logger namespace for author/category services.
func TaxonomyLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, taxonomyModule)
}

// MediaLogger returns the logger namespace reserved for media services.
func MediaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mediaModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
