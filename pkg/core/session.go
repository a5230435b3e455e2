package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// VideoSource tags where a session's video reference points.
type VideoSource string

const (
	// VideoRemote means the reference is a presigned object-store URL.
	VideoRemote VideoSource = "remote"
	// VideoLocal means the reference is a path on the local filesystem,
	// found by the fallback search.
	VideoLocal VideoSource = "local"
)

// VideoRef is a tagged reference to a session's video: a presigned URL for
// remote objects, a filesystem path for local fallback matches.
type VideoRef struct {
	Source VideoSource `json:"source"`
	URL    string      `json:"url,omitempty"`
	Path   string      `json:"path,omitempty"`
}

// SessionMetadata is the per-session metadata document, stored as a single
// JSON object at <username>/metadata/<SessionId>.json.
//
// VideoStartTimestamp is epoch milliseconds; zero means recording had not
// started when the document was written.
type SessionMetadata struct {
	Username            string `json:"username"`
	Title               string `json:"title"`
	SessionID           string `json:"sessionId"`
	VideoStartTimestamp int64  `json:"videoStartTimestamp"`
}

// NewSessionMetadata creates a metadata document for a session starting
// now, stamping the current local instant as the session identifier.
func NewSessionMetadata(username, title string) SessionMetadata {
	return SessionMetadata{
		Username:  username,
		Title:     title,
		SessionID: FormatSessionID(time.Now()),
	}
}

// Validate checks the invariants every stored metadata document must hold.
func (m SessionMetadata) Validate() error {
	if m.Username == "" {
		return fmt.Errorf("metadata missing username")
	}
	if _, err := ParseSessionID(m.SessionID); err != nil {
		return fmt.Errorf("metadata has invalid sessionId: %w", err)
	}
	return nil
}

// DecodeSessionMetadata parses and validates a stored metadata document.
// Documents that don't match the schema are rejected rather than patched.
func DecodeSessionMetadata(data []byte) (SessionMetadata, error) {
	var m SessionMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return SessionMetadata{}, fmt.Errorf("invalid metadata document: %w", err)
	}
	if err := m.Validate(); err != nil {
		return SessionMetadata{}, err
	}
	return m, nil
}

// AnnotationEntry is one note taken during a recording. Timestamp is epoch
// milliseconds and doubles as the entry's identity for deletion.
type AnnotationEntry struct {
	Note      string `json:"note"`
	Timestamp int64  `json:"timestamp"`
}

// DecodeAnnotations parses a stored annotation log (a JSON array).
func DecodeAnnotations(data []byte) ([]AnnotationEntry, error) {
	var entries []AnnotationEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid annotation log: %w", err)
	}
	return entries, nil
}

// Session is the assembled read-only view the index builder produces.
// A Session always carries a resolvable video and metadata reference;
// AnnotationsURL is empty when the session has no annotation log (or its
// presigning failed, which degrades rather than skips).
//
// VideoStart is the effective video start timestamp in epoch milliseconds:
// the stored metadata value, or the identifier-derived instant when local
// fallback found the stored value stale. Sessions sort descending by it.
type Session struct {
	ID             string   `json:"sessionId"`
	Title          string   `json:"title"`
	VideoStart     int64    `json:"videoStartTimestamp"`
	Video          VideoRef `json:"video"`
	MetadataURL    string   `json:"metadataUrl"`
	AnnotationsURL string   `json:"annotationsUrl,omitempty"`
}
