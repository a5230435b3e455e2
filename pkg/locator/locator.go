// Package locator finds local video files matching a session instant.
//
// Remote upload may fail or lag behind recording, so the local disk is the
// last-resort source of truth for "does this video exist". Matching is
// bounded by a tolerance window to avoid claiming unrelated recordings.
package locator

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/karsow/sessionreel/pkg/core"
)

// Candidate is one video file considered during a fallback search.
// Derived transiently, never persisted.
type Candidate struct {
	Path string
	// Timestamp is the instant derived for the file: parsed from the
	// filename when it follows the session identifier shape, otherwise
	// the file's modification time.
	Timestamp time.Time
	ModTime   time.Time
	// FromFilename reports whether Timestamp came from filename parsing.
	FromFilename bool
}

// fileEntry is the minimal view of a directory entry the search needs.
type fileEntry struct {
	Name    string
	ModTime time.Time
}

// dirLister enumerates one directory non-recursively. The default lister
// hits the filesystem; a Watcher substitutes its warm snapshot.
type dirLister interface {
	ListDir(dir string) ([]fileEntry, error)
}

type fsLister struct{}

func (fsLister) ListDir(dir string) ([]fileEntry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]fileEntry, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		entries = append(entries, fileEntry{Name: d.Name(), ModTime: info.ModTime()})
	}
	return entries, nil
}

// Locator scans configured directories for video files.
type Locator struct {
	dirs     []string
	patterns []string
	logger   *slog.Logger
	lister   dirLister
}

// New creates a Locator over the given search directories. With no
// directories, DefaultSearchDirs() is used.
func New(dirs []string, opts ...Option) *Locator {
	if len(dirs) == 0 {
		dirs = DefaultSearchDirs()
	}
	l := &Locator{
		dirs:     dirs,
		patterns: DefaultPatterns(),
		logger:   slog.Default(),
		lister:   fsLister{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Option configures a Locator.
type Option func(*Locator)

// WithPatterns overrides the filename glob patterns that identify video
// files (default: one "*<ext>" pattern per recognized video extension).
func WithPatterns(patterns []string) Option {
	return func(l *Locator) {
		if len(patterns) > 0 {
			l.patterns = patterns
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locator) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithWatcher makes the Locator consult a running Watcher's snapshot
// instead of re-reading the directories on every search.
func WithWatcher(w *Watcher) Option {
	return func(l *Locator) {
		if w != nil {
			l.lister = w
		}
	}
}

// Dirs returns the configured search directories.
func (l *Locator) Dirs() []string {
	return l.dirs
}

// FindClosest returns the video file whose derived instant lies closest to
// target within the window. Ties break on the lexicographically smallest
// filename so results are deterministic. The boolean is false when no
// directory yields a candidate inside the window.
//
// Directories that don't exist or can't be read are skipped and logged,
// never fatal: a missing Videos folder must not break session listing.
func (l *Locator) FindClosest(target time.Time, window time.Duration) (Candidate, bool) {
	var (
		best      Candidate
		bestDelta time.Duration
		found     bool
	)

	for _, dir := range l.dirs {
		entries, err := l.lister.ListDir(dir)
		if err != nil {
			l.logger.Warn("skipping unreadable search directory", "dir", dir, "error", err)
			continue
		}

		for _, entry := range entries {
			if !l.matchesVideo(entry.Name) {
				continue
			}

			ts, fromName := deriveTimestamp(entry.Name, entry.ModTime)
			delta := absDuration(target.Sub(ts))
			if delta > window {
				continue
			}

			cand := Candidate{
				Path:         filepath.Join(dir, entry.Name),
				Timestamp:    ts,
				ModTime:      entry.ModTime,
				FromFilename: fromName,
			}
			if !found || delta < bestDelta || (delta == bestDelta && betterTie(cand, best)) {
				best = cand
				bestDelta = delta
				found = true
			}
		}
	}

	return best, found
}

func (l *Locator) matchesVideo(name string) bool {
	for _, pattern := range l.patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// deriveTimestamp prefers parsing the filename as a session identifier;
// the file's mtime is the fallback for recordings named by other tools.
func deriveTimestamp(name string, modTime time.Time) (time.Time, bool) {
	if ts, err := core.ParseSessionID(name); err == nil {
		return ts, true
	}
	return modTime, false
}

// betterTie prefers the earliest filename lexicographically, then path.
func betterTie(a, b Candidate) bool {
	an, bn := filepath.Base(a.Path), filepath.Base(b.Path)
	if an != bn {
		return an < bn
	}
	return a.Path < b.Path
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// DefaultPatterns derives one glob per recognized video extension.
func DefaultPatterns() []string {
	patterns := make([]string, 0, len(core.VideoExtensions))
	for _, ext := range core.VideoExtensions {
		patterns = append(patterns, "*"+ext)
	}
	return patterns
}

// DefaultSearchDirs returns the platform's recordings folder plus a
// "videos" subfolder of the working directory. OBS defaults to the home
// Videos (Movies on macOS) folder.
func DefaultSearchDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		sub := "Videos"
		if runtime.GOOS == "darwin" {
			sub = "Movies"
		}
		dirs = append(dirs, filepath.Join(home, sub))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(wd, "videos"))
	}
	return dirs
}
