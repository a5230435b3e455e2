package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/karsow/sessionreel/pkg/core"
)

// AppendAnnotation adds an entry to the end of a session's annotation log.
// A missing log starts empty; any other fetch failure propagates.
//
// The log is a single JSON array document rewritten wholesale on every
// append, with no conditional write. Two concurrent appends race: both
// read the same prior state and the last put wins, silently discarding the
// other entry. The document stays well-formed; the loss is an accepted
// limitation of the store's primitives.
func (s *Service) AppendAnnotation(ctx context.Context, username, sessionID string, entry core.AnnotationEntry) error {
	if err := validateSessionRef(username, sessionID); err != nil {
		return err
	}
	key := core.AnnotationsKey(username, sessionID)

	entries, err := s.readAnnotations(ctx, key)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("failed to read annotation log: %w", err)
		}
		s.logger.Debug("annotation log not found, starting fresh", "key", key)
		entries = nil
	}

	entries = append(entries, entry)
	return s.writeAnnotations(ctx, key, entries)
}

// DeleteAnnotation removes the first entry whose timestamp exactly equals
// target (epoch milliseconds). Unlike append, a missing log is a hard
// error here: deleting from a log that does not exist is a caller bug,
// not a no-op. No matching entry fails with ErrAnnotationNotFound and
// leaves the stored document untouched.
func (s *Service) DeleteAnnotation(ctx context.Context, username, sessionID string, target int64) error {
	if err := validateSessionRef(username, sessionID); err != nil {
		return err
	}
	key := core.AnnotationsKey(username, sessionID)

	entries, err := s.readAnnotations(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read annotation log: %w", err)
	}

	filtered := make([]core.AnnotationEntry, 0, len(entries))
	removed := false
	for _, e := range entries {
		if !removed && e.Timestamp == target {
			removed = true
			continue
		}
		filtered = append(filtered, e)
	}
	if !removed {
		return fmt.Errorf("%w: no entry at timestamp %d", core.ErrAnnotationNotFound, target)
	}

	return s.writeAnnotations(ctx, key, filtered)
}

func (s *Service) readAnnotations(ctx context.Context, key string) ([]core.AnnotationEntry, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return core.DecodeAnnotations(data)
}

func (s *Service) writeAnnotations(ctx context.Context, key string, entries []core.AnnotationEntry) error {
	if entries == nil {
		entries = []core.AnnotationEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize annotation log: %w", err)
	}
	if err := s.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write annotation log: %w", err)
	}
	s.logger.Debug("annotation log written", "key", key, "entries", len(entries))
	return nil
}

func validateSessionRef(username, sessionID string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if _, err := core.ParseSessionID(sessionID); err != nil {
		return err
	}
	return nil
}
