// Package engine assembles coherent sessions out of independently-uploaded
// artifacts and performs the read-modify-write protocol on the per-session
// annotation and metadata documents.
//
// Artifacts (video, metadata document, annotation log) share a
// timestamp-derived identifier but have no transactional relationship:
// any of them may be missing, late, or stale. The engine reconciles them
// at read time and falls back to the local disk when a video never made
// it to the store.
package engine

import (
	"log/slog"
	"time"

	"github.com/karsow/sessionreel/pkg/core"
	"github.com/karsow/sessionreel/pkg/locator"
)

// Defaults for the engine's tunables.
const (
	// DefaultFallbackWindow bounds how far a local video file's instant may
	// sit from the session's target instant and still count as its video.
	DefaultFallbackWindow = 5 * time.Minute

	// DefaultDivergenceThreshold decides when a stored videoStartTimestamp
	// is considered stale relative to the identifier-derived instant during
	// local fallback. Kept configurable; the value matches the observed
	// behavior of the deployed recorder.
	DefaultDivergenceThreshold = 5 * time.Minute

	// DefaultPresignTTL is how long generated links stay valid.
	DefaultPresignTTL = time.Hour
)

// Service is the session reconciliation engine. The object store handle is
// injected, never ambient, so tests substitute a fake store.
type Service struct {
	store   core.ObjectStore
	locator *locator.Locator
	logger  *slog.Logger

	fallbackWindow      time.Duration
	divergenceThreshold time.Duration
	presignTTL          time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLocator attaches a local video locator for the fallback search.
// Without one, sessions whose video never reached the store are skipped.
func WithLocator(l *locator.Locator) Option {
	return func(s *Service) { s.locator = l }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFallbackWindow overrides the local fallback tolerance window.
func WithFallbackWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fallbackWindow = d
		}
	}
}

// WithDivergenceThreshold overrides the staleness threshold for stored
// video start timestamps.
func WithDivergenceThreshold(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.divergenceThreshold = d
		}
	}
}

// WithPresignTTL overrides the validity window of generated links.
func WithPresignTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.presignTTL = d
		}
	}
}

// NewService creates an engine over the given object store.
func NewService(store core.ObjectStore, opts ...Option) *Service {
	s := &Service{
		store:               store,
		logger:              slog.Default(),
		fallbackWindow:      DefaultFallbackWindow,
		divergenceThreshold: DefaultDivergenceThreshold,
		presignTTL:          DefaultPresignTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
