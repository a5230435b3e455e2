package platform

import (
	"log/slog"

	"github.com/karsow/sessionreel/pkg/core"
)

// options holds the internal wiring configuration.
type options struct {
	store  core.ObjectStore
	logger *slog.Logger
	watch  bool
}

// Option defines a functional option for wiring the engine.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger: slog.Default(),
	}
}

// WithStore injects a custom object-store adapter (e.g. the in-memory
// fake). When set, no S3 client is constructed.
func WithStore(store core.ObjectStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger sets the logger for every wired component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWatch keeps a filesystem watcher on the local search directories so
// repeated fallback searches serve from a warm snapshot.
func WithWatch(enabled bool) Option {
	return func(o *options) {
		o.watch = enabled
	}
}
