package storage

import (
	"context"
	"io"
	"sync"
)

// StubStorage keeps objects in memory. Used when object storage is
// disabled and in tests.
type StubStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubStorage creates an empty in-memory storage
func NewStubStorage() *StubStorage {
	return &StubStorage{objects: make(map[string][]byte)}
}

// Upload stores the object bytes in memory
func (s *StubStorage) Upload(_ context.Context, key string, body io.Reader, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// Delete removes the object
func (s *StubStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// URL returns a local pseudo-URL for the object
func (s *StubStorage) URL(key string) string {
	return "/media/" + key
}

// Get returns the stored bytes, for tests
func (s *StubStorage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}
