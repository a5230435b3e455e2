package engine_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karsow/sessionreel/pkg/adapters/memory"
	"github.com/karsow/sessionreel/pkg/core"
	"github.com/karsow/sessionreel/pkg/engine"
)

const testUser = "u"

// newEngine builds a service over a fresh in-memory store.
func newEngine(t *testing.T, opts ...engine.Option) (*engine.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return engine.NewService(store, opts...), store
}

// seedMetadata stores a metadata document for the given session.
func seedMetadata(t *testing.T, store *memory.Store, id, title string, start int64) {
	t.Helper()
	data, err := json.Marshal(core.SessionMetadata{
		Username:            testUser,
		Title:               title,
		SessionID:           id,
		VideoStartTimestamp: start,
	})
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), core.MetadataKey(testUser, id), data))
}

// seedVideo stores a dummy video object for the given session.
func seedVideo(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	key := core.VideoKey(testUser, id, ".mkv")
	require.NoError(t, store.Put(context.Background(), key, []byte("video-bytes")))
}

// seedAnnotations stores an annotation log for the given session.
func seedAnnotations(t *testing.T, store *memory.Store, id string, entries []core.AnnotationEntry) {
	t.Helper()
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), core.AnnotationsKey(testUser, id), data))
}

// storedAnnotations reads the annotation log back out of the store.
func storedAnnotations(t *testing.T, store *memory.Store, id string) []core.AnnotationEntry {
	t.Helper()
	data, err := store.Get(context.Background(), core.AnnotationsKey(testUser, id))
	require.NoError(t, err)
	entries, err := core.DecodeAnnotations(data)
	require.NoError(t, err)
	return entries
}
