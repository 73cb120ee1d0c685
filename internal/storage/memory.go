package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Object is a stored blob held by MemoryStore.
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStore is an in-process ObjectStore for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]Object)}
}

func (s *MemoryStore) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("object key is required")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read upload body: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+key] = Object{Data: data, ContentType: contentType}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, bucket+"/"+key)
	return nil
}

// Get returns the object stored at bucket/key.
func (s *MemoryStore) Get(bucket, key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[bucket+"/"+key]
	return obj, ok
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
