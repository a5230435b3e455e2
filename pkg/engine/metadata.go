package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/karsow/sessionreel/pkg/core"
)

// SaveMetadata serializes and overwrites the session's metadata document
// unconditionally. Last writer wins; the document is small and re-saves
// replace it wholesale.
func (s *Service) SaveMetadata(ctx context.Context, meta core.SessionMetadata) error {
	if err := meta.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}

	key := core.MetadataKey(meta.Username, meta.SessionID)
	if err := s.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	s.logger.Debug("metadata written", "key", key)
	return nil
}

// LoadMetadata fetches and parses one session's metadata document.
// A missing document surfaces as core.ErrNotFound (check with IsNotFound)
// so callers can tell "not yet created" apart from corruption.
func (s *Service) LoadMetadata(ctx context.Context, username, sessionID string) (core.SessionMetadata, error) {
	if err := validateSessionRef(username, sessionID); err != nil {
		return core.SessionMetadata{}, err
	}

	data, err := s.store.Get(ctx, core.MetadataKey(username, sessionID))
	if err != nil {
		return core.SessionMetadata{}, fmt.Errorf("failed to read metadata: %w", err)
	}
	return core.DecodeSessionMetadata(data)
}
