package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SessionIDLayout documents the identifier shape for reference.
// Identifiers are local time, zero-padded, second resolution.
const SessionIDLayout = "YYYY-MM-DD HH-MM-SS"

// ParseSessionID converts a session identifier (optionally carrying a known
// artifact extension) into a local-time instant.
//
// The shape is strict: one space between date and time, each side split by
// "-" into exactly three numeric components, and the resulting date must be
// a real calendar date. Anything else fails with ErrMalformedTimestamp so
// unrelated objects never leak into artifact matching.
func ParseSessionID(name string) (time.Time, error) {
	id := StripArtifactExt(name)

	datePart, timePart, found := strings.Cut(id, " ")
	if !found || strings.Contains(timePart, " ") {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, name)
	}

	dateFields := strings.Split(datePart, "-")
	timeFields := strings.Split(timePart, "-")
	if len(dateFields) != 3 || len(timeFields) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, name)
	}

	nums := make([]int, 0, 6)
	for _, f := range append(dateFields, timeFields...) {
		n, err := strconv.Atoi(f)
		if err != nil || f == "" || strings.HasPrefix(f, "+") || strings.HasPrefix(f, "-") {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, name)
		}
		nums = append(nums, n)
	}

	t := time.Date(nums[0], time.Month(nums[1]), nums[2], nums[3], nums[4], nums[5], 0, time.Local)

	// time.Date normalizes out-of-range components (month 13 rolls over),
	// so a round-trip comparison is the reliable validity check.
	if FormatSessionID(t) != id {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, name)
	}

	return t, nil
}

// FormatSessionID renders an instant as a session identifier.
// Round-trip law: ParseSessionID(FormatSessionID(t)) == t for any local
// instant at one-second resolution.
func FormatSessionID(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d %02d-%02d-%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// StripArtifactExt removes a recognized artifact extension (.json or any
// known video extension) from a name. Unknown extensions are left alone so
// they fail identifier parsing instead of silently matching.
func StripArtifactExt(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".json") {
		return name[:len(name)-len(".json")]
	}
	for _, ext := range VideoExtensions {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
