package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/karsow/sessionreel/pkg/core"
)

// EnsureUserLayout creates the three empty category prefix markers for a
// newly registered username. Existing markers are simply overwritten with
// the same empty body, so the call is idempotent.
func (s *Service) EnsureUserLayout(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range []string{core.CategoryMetadata, core.CategoryAnnotations, core.CategoryVideos} {
		prefix := core.CategoryPrefix(username, category)
		g.Go(func() error {
			if err := s.store.Put(gctx, prefix, nil); err != nil {
				return fmt.Errorf("failed to create %s: %w", prefix, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("user layout ready", "user", username)
	return nil
}

// UploadVideo pushes a local recording into the session's video slot,
// keeping the file's own extension. The file must carry a recognized
// video extension.
func (s *Service) UploadVideo(ctx context.Context, username, sessionID, path string) error {
	if err := validateSessionRef(username, sessionID); err != nil {
		return err
	}

	name := filepath.Base(path)
	if !core.IsVideoFile(name) {
		return fmt.Errorf("not a recognized video file: %s", name)
	}
	ext := strings.ToLower(filepath.Ext(name))

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read video file: %w", err)
	}

	key := core.VideoKey(username, sessionID, ext)
	if err := s.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to upload video: %w", err)
	}
	s.logger.Info("video uploaded", "key", key, "bytes", len(data))
	return nil
}
