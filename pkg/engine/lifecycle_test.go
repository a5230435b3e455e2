package engine_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karsow/sessionreel/pkg/core"
)

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	const id = "2025-08-19 22-13-32"

	t.Run("Removes All Three Artifacts", func(t *testing.T) {
		svc, store := newEngine(t)
		seedMetadata(t, store, id, "", 1000)
		seedVideo(t, store, id)
		seedAnnotations(t, store, id, []core.AnnotationEntry{{Note: "n", Timestamp: 1}})

		report, err := svc.DeleteSession(ctx, testUser, id)
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.NoError(t, report.Err())
		assert.Len(t, report.Outcomes, 3)
		assert.Zero(t, store.Len(), "no artifacts should remain")
	})

	t.Run("Missing Artifacts Are Already Satisfied", func(t *testing.T) {
		svc, _ := newEngine(t)

		report, err := svc.DeleteSession(ctx, testUser, id)
		require.NoError(t, err)
		assert.True(t, report.OK(), "deleting a nonexistent session is idempotent success")
	})

	t.Run("One Failure Does Not Abort The Rest", func(t *testing.T) {
		svc, store := newEngine(t)
		seedMetadata(t, store, id, "", 1000)
		seedVideo(t, store, id)
		seedAnnotations(t, store, id, []core.AnnotationEntry{{Note: "n", Timestamp: 1}})

		store.FailDelete = func(key string) error {
			if strings.Contains(key, "/metadata/") {
				return fmt.Errorf("access denied")
			}
			return nil
		}

		report, err := svc.DeleteSession(ctx, testUser, id)
		require.NoError(t, err)
		assert.False(t, report.OK())
		require.Error(t, report.Err())

		// The other two artifacts are gone regardless.
		_, err = store.Get(ctx, core.AnnotationsKey(testUser, id))
		assert.ErrorIs(t, err, core.ErrNotFound)
		_, err = store.Get(ctx, core.VideoKey(testUser, id, ".mkv"))
		assert.ErrorIs(t, err, core.ErrNotFound)

		var failed int
		for _, o := range report.Outcomes {
			if o.Err != nil {
				failed++
			}
		}
		assert.Equal(t, 1, failed)
	})

	t.Run("Video Extension Resolved From Listing", func(t *testing.T) {
		svc, store := newEngine(t)
		seedMetadata(t, store, id, "", 1000)
		require.NoError(t, store.Put(ctx, core.VideoKey(testUser, id, ".mp4"), []byte("v")))

		report, err := svc.DeleteSession(ctx, testUser, id)
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Zero(t, store.Len())
	})

	t.Run("Other Sessions Untouched", func(t *testing.T) {
		svc, store := newEngine(t)
		const other = "2025-08-20 09-00-00"
		seedMetadata(t, store, id, "", 1000)
		seedVideo(t, store, id)
		seedMetadata(t, store, other, "", 2000)
		seedVideo(t, store, other)

		report, err := svc.DeleteSession(ctx, testUser, id)
		require.NoError(t, err)
		assert.True(t, report.OK())

		_, err = store.Get(ctx, core.MetadataKey(testUser, other))
		assert.NoError(t, err)
		_, err = store.Get(ctx, core.VideoKey(testUser, other, ".mkv"))
		assert.NoError(t, err)
	})

	t.Run("Invalid Identifier Rejected", func(t *testing.T) {
		svc, _ := newEngine(t)
		_, err := svc.DeleteSession(ctx, testUser, "garbage")
		require.ErrorIs(t, err, core.ErrMalformedTimestamp)
	})
}
