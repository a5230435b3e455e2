package core

import (
	"fmt"
	"path"
	"strings"
)

// Artifact categories. One session owns at most one object per category,
// all sharing the SessionId basename under the user's namespace.
const (
	CategoryMetadata    = "metadata"
	CategoryAnnotations = "annotations"
	CategoryVideos      = "videos"
)

// VideoExtensions lists the recognized video container extensions
// (lowercase, dot included). OBS produces mkv/mp4/mov/flv depending on
// output settings; webm and avi show up from other recorders.
var VideoExtensions = []string{".mkv", ".mp4", ".mov", ".avi", ".webm", ".flv"}

// CategoryPrefix returns the listing prefix for one artifact category,
// e.g. "alice/videos/".
func CategoryPrefix(username, category string) string {
	return username + "/" + category + "/"
}

// MetadataKey returns the object key of a session's metadata document.
func MetadataKey(username, sessionID string) string {
	return fmt.Sprintf("%s/%s/%s.json", username, CategoryMetadata, sessionID)
}

// AnnotationsKey returns the object key of a session's annotation log.
func AnnotationsKey(username, sessionID string) string {
	return fmt.Sprintf("%s/%s/%s.json", username, CategoryAnnotations, sessionID)
}

// VideoKey returns the object key of a session's video. ext must include
// the leading dot (".mkv").
func VideoKey(username, sessionID, ext string) string {
	return fmt.Sprintf("%s/%s/%s%s", username, CategoryVideos, sessionID, ext)
}

// SessionIDFromKey extracts and validates the canonical session identifier
// from an object key. Prefix-marker objects (keys ending in "/") and
// basenames that do not parse as session timestamps are rejected with
// ErrMalformedTimestamp.
func SessionIDFromKey(key string) (string, error) {
	if strings.HasSuffix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrMalformedTimestamp, key)
	}
	id := StripArtifactExt(path.Base(key))
	if _, err := ParseSessionID(id); err != nil {
		return "", err
	}
	return id, nil
}

// IsVideoFile reports whether the filename carries a recognized video
// extension.
func IsVideoFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range VideoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
