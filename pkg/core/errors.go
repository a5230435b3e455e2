package core

import "errors"

// Common errors.
//
// Adapters must translate their backend's "object absent" condition into
// ErrNotFound (wrapping is fine) so callers can branch with errors.Is
// instead of sniffing provider error codes.
var (
	// ErrNotFound indicates the requested object does not exist in the store.
	ErrNotFound = errors.New("object not found")

	// ErrAnnotationNotFound indicates no annotation entry matched the
	// requested timestamp.
	ErrAnnotationNotFound = errors.New("annotation not found")

	// ErrMalformedTimestamp indicates a name does not follow the
	// "YYYY-MM-DD HH-MM-SS" session identifier shape.
	ErrMalformedTimestamp = errors.New("malformed session timestamp")
)
