package sessionreel

import (
	"context"
	"log/slog"

	"github.com/karsow/sessionreel/internal/platform"
	"github.com/karsow/sessionreel/pkg/core"
	"github.com/karsow/sessionreel/pkg/engine"
)

// --- Types ---

// Session is the assembled read-only session view.
type Session = core.Session

// SessionMetadata is the per-session metadata document.
type SessionMetadata = core.SessionMetadata

// AnnotationEntry is one note taken during a recording.
type AnnotationEntry = core.AnnotationEntry

// ObjectStore is the narrow storage port the engine consumes.
type ObjectStore = core.ObjectStore

// Service is the reconciliation engine.
type Service = engine.Service

// Config is the environment-level configuration.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for wiring the engine.
type Option = platform.Option

// WithStore injects a custom storage adapter (fake store in tests).
func WithStore(store core.ObjectStore) Option {
	return platform.WithStore(store)
}

// WithLogger sets the logger for every wired component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithWatch keeps a filesystem watcher on the local search directories.
func WithWatch(enabled bool) Option {
	return platform.WithWatch(enabled)
}

// LoadConfig reads the optional YAML config file and applies environment
// overrides.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return platform.DefaultConfigPath()
}

// --- Factory ---

// New wires a ready engine service from config and options.
func New(ctx context.Context, cfg Config, opts ...Option) (*Service, error) {
	return platform.New(ctx, cfg, opts...)
}

// --- Utils ---

// FormatSessionID renders an instant as a session identifier.
var FormatSessionID = core.FormatSessionID

// ParseSessionID converts a session identifier into a local-time instant.
var ParseSessionID = core.ParseSessionID

// IsNotFound reports whether err denotes a missing object.
var IsNotFound = engine.IsNotFound
