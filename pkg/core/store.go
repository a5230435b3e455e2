package core

import (
	"context"
	"time"
)

// ObjectInfo describes one listed object. References are ephemeral: the
// engine never persists them, it only matches keys and fetches bodies.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
	Size         int64
}

// ObjectStore is the narrow port the engine consumes. Adhering to this
// interface keeps the engine independent of the backing store (S3, a
// compatible object service, or an in-memory fake in tests).
//
// Implementations own transport-level retry policy; transient failures
// that exhaust retries surface from the individual call. Get must report
// a missing object as ErrNotFound.
type ObjectStore interface {
	// List returns all objects under the given key prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Get fetches an object's full body.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes an object wholesale, replacing any previous body.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Presign returns a time-bounded credential-free URL for the object.
	Presign(ctx context.Context, key string, ttl time.Duration) (string, error)
}
