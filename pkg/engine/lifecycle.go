package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/karsow/sessionreel/pkg/core"
)

// DeleteOutcome records the result for one artifact key during session
// deletion. Err is nil on success; a missing object counts as success.
type DeleteOutcome struct {
	Key string
	Err error
}

// DeleteReport aggregates the per-key outcomes of one session deletion,
// rather than swallowing individual failures silently.
type DeleteReport struct {
	Outcomes []DeleteOutcome
}

// OK reports whether every artifact deletion succeeded (or was already
// satisfied).
func (r DeleteReport) OK() bool {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return false
		}
	}
	return true
}

// Err joins the per-key failures into one error, or nil when OK.
func (r DeleteReport) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Key, o.Err))
		}
	}
	return errors.Join(errs...)
}

// DeleteSession removes all artifacts belonging to one session. The three
// category deletions are independent round trips issued concurrently; one
// key's failure never aborts the others. Missing objects are treated as
// already-satisfied, so deletion is idempotent.
//
// The video key carries an unknown extension, so it is resolved from a
// prefix listing before deletion; metadata and annotations derive
// deterministically from username+sessionID.
func (s *Service) DeleteSession(ctx context.Context, username, sessionID string) (DeleteReport, error) {
	if err := validateSessionRef(username, sessionID); err != nil {
		return DeleteReport{}, err
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		report DeleteReport
	)
	record := func(key string, err error) {
		mu.Lock()
		defer mu.Unlock()
		report.Outcomes = append(report.Outcomes, DeleteOutcome{Key: key, Err: err})
		if err != nil {
			s.logger.Warn("failed to delete session artifact", "key", key, "error", err)
		}
	}

	for _, key := range []string{
		core.MetadataKey(username, sessionID),
		core.AnnotationsKey(username, sessionID),
	} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			record(key, ignoreNotFound(s.store.Delete(ctx, key)))
		}(key)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.deleteVideo(ctx, username, sessionID, record)
	}()

	wg.Wait()
	return report, nil
}

// deleteVideo finds the session's video object under the videos prefix and
// deletes it. No matching object means there is nothing to do.
func (s *Service) deleteVideo(ctx context.Context, username, sessionID string, record func(string, error)) {
	prefix := core.CategoryPrefix(username, core.CategoryVideos)
	syntheticKey := prefix + sessionID

	infos, err := s.store.List(ctx, prefix)
	if err != nil {
		record(syntheticKey, fmt.Errorf("failed to list videos: %w", err))
		return
	}

	found := false
	for _, info := range infos {
		id, err := core.SessionIDFromKey(info.Key)
		if err != nil || id != sessionID {
			continue
		}
		found = true
		record(info.Key, ignoreNotFound(s.store.Delete(ctx, info.Key)))
	}
	if !found {
		// Already absent: satisfied.
		record(syntheticKey, nil)
	}
}

func ignoreNotFound(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	return err
}
