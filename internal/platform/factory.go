package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/karsow/sessionreel/pkg/adapters/s3"
	"github.com/karsow/sessionreel/pkg/engine"
	"github.com/karsow/sessionreel/pkg/locator"
)

// New wires config and options into a ready engine service: store adapter,
// local video locator (optionally watched), and tunables.
func New(ctx context.Context, cfg Config, opts ...Option) (*engine.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		var err error
		store, err = s3.NewStore(ctx, s3.Config{
			Bucket:      cfg.Bucket,
			Region:      cfg.Region,
			RoleARN:     cfg.RoleARN,
			MaxAttempts: cfg.MaxAttempts,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create object store: %w", err)
		}
	}

	dirs := cfg.SearchDirs
	if len(dirs) == 0 {
		dirs = locator.DefaultSearchDirs()
	}

	locOpts := []locator.Option{locator.WithLogger(o.logger)}
	if o.watch {
		watcher := locator.NewWatcher(dirs, o.logger)
		if err := watcher.Start(ctx); err != nil {
			// A dead watcher only costs warm-cache reads; fall back to
			// direct directory scans.
			o.logger.Warn("search directory watcher unavailable", "error", err)
		} else {
			locOpts = append(locOpts, locator.WithWatcher(watcher))
		}
	}
	loc := locator.New(dirs, locOpts...)

	engOpts := []engine.Option{
		engine.WithLocator(loc),
		engine.WithLogger(o.logger),
		engine.WithFallbackWindow(time.Duration(cfg.FallbackWindow)),
		engine.WithDivergenceThreshold(time.Duration(cfg.DivergenceThreshold)),
		engine.WithPresignTTL(time.Duration(cfg.PresignTTL)),
	}

	return engine.NewService(store, engOpts...), nil
}
