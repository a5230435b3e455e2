package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karsow/sessionreel/pkg/core"
)

const annSession = "2025-08-19 22-13-32"

func TestAppendAnnotation(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Log Starts Empty", func(t *testing.T) {
		svc, store := newEngine(t)

		err := svc.AppendAnnotation(ctx, testUser, annSession, core.AnnotationEntry{Note: "first", Timestamp: 1000})
		require.NoError(t, err)

		entries := storedAnnotations(t, store, annSession)
		require.Len(t, entries, 1)
		assert.Equal(t, "first", entries[0].Note)
	})

	t.Run("Appends Preserve Insertion Order", func(t *testing.T) {
		svc, store := newEngine(t)

		require.NoError(t, svc.AppendAnnotation(ctx, testUser, annSession, core.AnnotationEntry{Note: "first", Timestamp: 1000}))
		require.NoError(t, svc.AppendAnnotation(ctx, testUser, annSession, core.AnnotationEntry{Note: "second", Timestamp: 2000}))

		entries := storedAnnotations(t, store, annSession)
		require.Len(t, entries, 2)
		assert.Equal(t, "first", entries[0].Note)
		assert.Equal(t, "second", entries[1].Note)
	})

	t.Run("Non-Missing Fetch Errors Propagate", func(t *testing.T) {
		svc, store := newEngine(t)
		store.FailGet = func(key string) error {
			return fmt.Errorf("store timeout")
		}

		err := svc.AppendAnnotation(ctx, testUser, annSession, core.AnnotationEntry{Note: "n", Timestamp: 1})
		require.Error(t, err)
	})

	t.Run("Invalid Session Identifier Rejected", func(t *testing.T) {
		svc, _ := newEngine(t)
		err := svc.AppendAnnotation(ctx, testUser, "garbage", core.AnnotationEntry{Note: "n", Timestamp: 1})
		require.ErrorIs(t, err, core.ErrMalformedTimestamp)
	})
}

func TestDeleteAnnotation(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes First Exact Match", func(t *testing.T) {
		svc, store := newEngine(t)
		seedAnnotations(t, store, annSession, []core.AnnotationEntry{
			{Note: "keep", Timestamp: 1000},
			{Note: "drop", Timestamp: 2000},
		})

		require.NoError(t, svc.DeleteAnnotation(ctx, testUser, annSession, 2000))

		entries := storedAnnotations(t, store, annSession)
		require.Len(t, entries, 1)
		assert.Equal(t, "keep", entries[0].Note)
	})

	t.Run("Duplicate Timestamps Only First Removed", func(t *testing.T) {
		svc, store := newEngine(t)
		seedAnnotations(t, store, annSession, []core.AnnotationEntry{
			{Note: "a", Timestamp: 1000},
			{Note: "b", Timestamp: 1000},
		})

		require.NoError(t, svc.DeleteAnnotation(ctx, testUser, annSession, 1000))

		entries := storedAnnotations(t, store, annSession)
		require.Len(t, entries, 1)
		assert.Equal(t, "b", entries[0].Note)
	})

	t.Run("No Match Fails And Leaves Document Unchanged", func(t *testing.T) {
		svc, store := newEngine(t)
		seedAnnotations(t, store, annSession, []core.AnnotationEntry{
			{Note: "only", Timestamp: 1000},
		})

		err := svc.DeleteAnnotation(ctx, testUser, annSession, 9999)
		require.ErrorIs(t, err, core.ErrAnnotationNotFound)

		entries := storedAnnotations(t, store, annSession)
		require.Len(t, entries, 1)
		assert.Equal(t, "only", entries[0].Note)
	})

	t.Run("Missing Log Is A Hard Error", func(t *testing.T) {
		svc, _ := newEngine(t)
		err := svc.DeleteAnnotation(ctx, testUser, annSession, 1000)
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}

// TestAppendAnnotation_LastWriterWins pins the documented race: two
// appenders reading the same prior state both write the whole document,
// and the second put silently discards the first appender's entry. The
// document stays well-formed; the loss is accepted behavior, not a bug.
func TestAppendAnnotation_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	svc, store := newEngine(t)
	key := core.AnnotationsKey(testUser, annSession)

	require.NoError(t, svc.AppendAnnotation(ctx, testUser, annSession, core.AnnotationEntry{Note: "base", Timestamp: 1000}))

	// Rival reads the log before our next append lands.
	rivalView, err := store.Get(ctx, key)
	require.NoError(t, err)

	require.NoError(t, svc.AppendAnnotation(ctx, testUser, annSession, core.AnnotationEntry{Note: "lost", Timestamp: 2000}))

	// Rival appends to its stale view and its put lands last.
	rivalEntries, err := core.DecodeAnnotations(rivalView)
	require.NoError(t, err)
	rivalEntries = append(rivalEntries, core.AnnotationEntry{Note: "rival", Timestamp: 3000})
	seedAnnotations(t, store, annSession, rivalEntries)

	entries := storedAnnotations(t, store, annSession)
	require.Len(t, entries, 2, "the concurrent entry is discarded, not merged")
	assert.Equal(t, "base", entries[0].Note)
	assert.Equal(t, "rival", entries[1].Note)
}
