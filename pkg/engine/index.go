package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/karsow/sessionreel/pkg/core"
)

// BuildIndex lists a user's artifacts, reconciles them into sessions, and
// returns the result sorted descending by effective video start timestamp.
//
// Metadata presence is the source of truth for "a session exists": an
// artifact set without a metadata document is not a session, even if a
// video object exists for it.
//
// Failure policy: any single session's failure is isolated and logged, it
// never aborts the listing. BuildIndex errors only when the store itself
// cannot be listed. If ctx expires mid-build, the sessions assembled so
// far are returned rather than an error.
func (s *Service) BuildIndex(ctx context.Context, username string) ([]core.Session, error) {
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}

	// The three category listings are independent round trips.
	var metaRefs, annRefs, videoRefs map[string]core.ObjectInfo

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metaRefs, err = s.listCategory(gctx, username, core.CategoryMetadata)
		return err
	})
	g.Go(func() error {
		var err error
		annRefs, err = s.listCategory(gctx, username, core.CategoryAnnotations)
		return err
	})
	g.Go(func() error {
		var err error
		videoRefs, err = s.listCategory(gctx, username, core.CategoryVideos)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list session artifacts: %w", err)
	}

	ids := sortedIDsDesc(metaRefs)

	sessions := make([]core.Session, 0, len(ids))
	for _, id := range ids {
		if ctx.Err() != nil {
			s.logger.Warn("index build interrupted, returning partial result",
				"user", username, "assembled", len(sessions), "error", ctx.Err())
			break
		}
		sess, ok := s.assembleSession(ctx, username, id, videoRefs, annRefs)
		if ok {
			sessions = append(sessions, sess)
		}
	}

	// Local fallback can recompute start timestamps, so identifier order
	// and start-timestamp order may disagree. The latter wins.
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].VideoStart != sessions[j].VideoStart {
			return sessions[i].VideoStart > sessions[j].VideoStart
		}
		return sessions[i].ID > sessions[j].ID
	})

	return sessions, nil
}

// listCategory lists one category prefix and maps canonical session
// identifiers to their object references. Malformed basenames are
// excluded, never fatal.
func (s *Service) listCategory(ctx context.Context, username, category string) (map[string]core.ObjectInfo, error) {
	infos, err := s.store.List(ctx, core.CategoryPrefix(username, category))
	if err != nil {
		return nil, err
	}

	refs := make(map[string]core.ObjectInfo, len(infos))
	for _, info := range infos {
		id, err := core.SessionIDFromKey(info.Key)
		if err != nil {
			s.logger.Debug("ignoring non-session object", "key", info.Key, "error", err)
			continue
		}
		refs[id] = info
	}
	return refs, nil
}

// assembleSession runs the per-session resolution steps. The returned bool
// is false when the session cannot be surfaced (missing/corrupt metadata,
// no resolvable video, or mandatory presign failure).
func (s *Service) assembleSession(ctx context.Context, username, id string, videoRefs, annRefs map[string]core.ObjectInfo) (core.Session, bool) {
	meta, err := s.fetchMetadata(ctx, username, id)
	if err != nil {
		s.logger.Warn("skipping session with unreadable metadata", "session", id, "error", err)
		return core.Session{}, false
	}

	// Valid by construction: id came out of SessionIDFromKey.
	idTime, _ := core.ParseSessionID(id)

	video, effectiveStart, ok := s.resolveVideo(ctx, id, idTime, meta, videoRefs)
	if !ok {
		s.logger.Debug("skipping session without a viewable video", "session", id)
		return core.Session{}, false
	}

	metadataURL, err := s.store.Presign(ctx, core.MetadataKey(username, id), s.presignTTL)
	if err != nil {
		s.logger.Warn("skipping session, metadata presign failed", "session", id, "error", err)
		return core.Session{}, false
	}

	// Annotations are optional: a failed presign degrades the session to
	// "no annotations" instead of dropping it.
	var annotationsURL string
	if ref, exists := annRefs[id]; exists {
		annotationsURL, err = s.store.Presign(ctx, ref.Key, s.presignTTL)
		if err != nil {
			s.logger.Warn("annotation presign failed, surfacing session without annotations",
				"session", id, "error", err)
			annotationsURL = ""
		}
	}

	return core.Session{
		ID:             id,
		Title:          meta.Title,
		VideoStart:     effectiveStart,
		Video:          video,
		MetadataURL:    metadataURL,
		AnnotationsURL: annotationsURL,
	}, true
}

func (s *Service) fetchMetadata(ctx context.Context, username, id string) (core.SessionMetadata, error) {
	data, err := s.store.Get(ctx, core.MetadataKey(username, id))
	if err != nil {
		return core.SessionMetadata{}, err
	}
	return core.DecodeSessionMetadata(data)
}

// resolveVideo prefers the remote object; when presigning fails or no
// remote object exists, it falls back to the local disk. The second return
// is the effective video start timestamp in epoch milliseconds.
//
// On local fallback the identifier-derived instant overrides the stored
// timestamp whenever the two diverge beyond the threshold: filename
// identity is trusted over a potentially stale stored field.
func (s *Service) resolveVideo(ctx context.Context, id string, idTime time.Time, meta core.SessionMetadata, videoRefs map[string]core.ObjectInfo) (core.VideoRef, int64, bool) {
	if ref, exists := videoRefs[id]; exists {
		url, err := s.store.Presign(ctx, ref.Key, s.presignTTL)
		if err == nil {
			return core.VideoRef{Source: core.VideoRemote, URL: url}, meta.VideoStartTimestamp, true
		}
		s.logger.Warn("video presign failed, trying local fallback", "session", id, "error", err)
	}

	if s.locator == nil {
		return core.VideoRef{}, 0, false
	}

	target := idTime
	if meta.VideoStartTimestamp != 0 {
		target = time.UnixMilli(meta.VideoStartTimestamp)
	}

	cand, found := s.locator.FindClosest(target, s.fallbackWindow)
	if !found {
		return core.VideoRef{}, 0, false
	}

	effective := meta.VideoStartTimestamp
	if effective == 0 || absDuration(idTime.Sub(time.UnixMilli(effective))) > s.divergenceThreshold {
		effective = idTime.UnixMilli()
	}

	s.logger.Info("resolved session video from local disk",
		"session", id, "path", cand.Path, "fromFilename", cand.FromFilename)

	return core.VideoRef{Source: core.VideoLocal, Path: cand.Path}, effective, true
}

// sortedIDsDesc orders the session universe newest-first by parsed
// identifier instant.
func sortedIDsDesc(refs map[string]core.ObjectInfo) []string {
	ids := make([]string, 0, len(refs))
	for id := range refs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, _ := core.ParseSessionID(ids[i])
		tj, _ := core.ParseSessionID(ids[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ids[i] > ids[j]
	})
	return ids
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// IsNotFound reports whether err denotes a missing object, letting callers
// distinguish "not yet created" from a corrupted or unreachable store.
func IsNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}
