// Package memory provides an in-memory core.ObjectStore.
//
// It backs the engine's tests and self-contained examples. Failure hooks
// let tests force individual operations to fail, which is how the engine's
// degradation paths (presign failure, unreachable store) are exercised.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/karsow/sessionreel/pkg/core"
)

type object struct {
	data         []byte
	lastModified time.Time
}

// Store is an in-memory object store. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object

	// Failure hooks. When set and returning a non-nil error for a key,
	// the corresponding operation fails with that error.
	FailGet     func(key string) error
	FailPut     func(key string) error
	FailDelete  func(key string) error
	FailList    func(prefix string) error
	FailPresign func(key string) error
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{objects: make(map[string]object)}
}

// List returns objects under prefix in lexicographic key order, which
// keeps listings deterministic for tests.
func (s *Store) List(ctx context.Context, prefix string) ([]core.ObjectInfo, error) {
	if s.FailList != nil {
		if err := s.FailList(prefix); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var infos []core.ObjectInfo
	for key, obj := range s.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			infos = append(infos, core.ObjectInfo{
				Key:          key,
				LastModified: obj.lastModified,
				Size:         int64(len(obj.data)),
			})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// Get fetches an object body, or core.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.FailGet != nil {
		if err := s.FailGet(key); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	out := make([]byte, len(obj.data))
	copy(out, obj.data)
	return out, nil
}

// Put writes an object wholesale.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if s.FailPut != nil {
		if err := s.FailPut(key); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[key] = object{data: stored, lastModified: time.Now()}
	return nil
}

// Delete removes an object. Missing keys are a no-op, matching S3.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.FailDelete != nil {
		if err := s.FailDelete(key); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Presign returns a synthetic but stable URL for an existing object, or
// core.ErrNotFound for a missing one.
func (s *Store) Presign(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.FailPresign != nil {
		if err := s.FailPresign(key); err != nil {
			return "", err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	return fmt.Sprintf("memory://%s?ttl=%d", key, int64(ttl.Seconds())), nil
}

// Len reports the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Keys returns all stored keys in lexicographic order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
