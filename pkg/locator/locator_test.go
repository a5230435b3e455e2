package locator_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karsow/sessionreel/pkg/core"
	"github.com/karsow/sessionreel/pkg/locator"
)

// touch creates an empty file and pins its mtime so derived timestamps are
// deterministic regardless of test machine speed.
func touch(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestFindClosest(t *testing.T) {
	target := time.Date(2025, 8, 19, 22, 13, 32, 0, time.Local)

	t.Run("Picks Minimum Delta Within Window", func(t *testing.T) {
		dir := t.TempDir()
		// Candidates at -10m, +2m, +4m from target, named so the instant
		// comes from filename parsing.
		touch(t, dir, core.FormatSessionID(target.Add(-10*time.Minute))+".mkv", target)
		wantPath := touch(t, dir, core.FormatSessionID(target.Add(2*time.Minute))+".mkv", target)
		touch(t, dir, core.FormatSessionID(target.Add(4*time.Minute))+".mkv", target)

		loc := locator.New([]string{dir})

		cand, found := loc.FindClosest(target, 5*time.Minute)
		require.True(t, found)
		assert.Equal(t, wantPath, cand.Path)
		assert.True(t, cand.FromFilename)

		// A one-minute window excludes everything.
		_, found = loc.FindClosest(target, time.Minute)
		assert.False(t, found)
	})

	t.Run("Falls Back To Modification Time", func(t *testing.T) {
		dir := t.TempDir()
		path := touch(t, dir, "obs-recording.mp4", target.Add(30*time.Second))

		loc := locator.New([]string{dir})

		cand, found := loc.FindClosest(target, 5*time.Minute)
		require.True(t, found)
		assert.Equal(t, path, cand.Path)
		assert.False(t, cand.FromFilename)
	})

	t.Run("Tie Breaks On Earliest Filename", func(t *testing.T) {
		dir := t.TempDir()
		// Equidistant candidates: -2m and +2m.
		early := touch(t, dir, core.FormatSessionID(target.Add(-2*time.Minute))+".mkv", target)
		touch(t, dir, core.FormatSessionID(target.Add(2*time.Minute))+".mkv", target)

		loc := locator.New([]string{dir})

		cand, found := loc.FindClosest(target, 5*time.Minute)
		require.True(t, found)
		assert.Equal(t, early, cand.Path, "lexicographically smallest filename should win ties")
	})

	t.Run("Ignores Non-Video Files", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, core.FormatSessionID(target)+".txt", target)
		touch(t, dir, core.FormatSessionID(target)+".json", target)

		loc := locator.New([]string{dir})

		_, found := loc.FindClosest(target, 5*time.Minute)
		assert.False(t, found)
	})

	t.Run("Skips Unreadable Directories", func(t *testing.T) {
		dir := t.TempDir()
		path := touch(t, dir, core.FormatSessionID(target)+".mkv", target)

		loc := locator.New([]string{filepath.Join(dir, "does-not-exist"), dir})

		cand, found := loc.FindClosest(target, 5*time.Minute)
		require.True(t, found, "missing directory must not abort the search")
		assert.Equal(t, path, cand.Path)
	})

	t.Run("Custom Patterns", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, core.FormatSessionID(target)+".mkv", target)

		loc := locator.New([]string{dir}, locator.WithPatterns([]string{"*.mp4"}))

		_, found := loc.FindClosest(target, 5*time.Minute)
		assert.False(t, found, "mkv should not match an mp4-only pattern")
	})
}

func TestDefaultSearchDirs(t *testing.T) {
	dirs := locator.DefaultSearchDirs()
	require.NotEmpty(t, dirs)
	assert.Equal(t, "videos", filepath.Base(dirs[len(dirs)-1]))
}
