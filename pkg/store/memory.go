package store

import (
	"context"
	"sort"
	"sync"

	"github.com/kinetree/kinetree/pkg/model"
)

// MemoryStore keeps documents in process memory. It is safe for
// concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*model.Document
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*model.Document)}
}

// Put stores doc under doc.Name, replacing any existing document.
func (s *MemoryStore) Put(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Name] = doc
	return nil
}

// Get returns the document stored under name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[name]
	if !ok {
		return nil, ErrModelNotFound
	}
	return doc, nil
}

// List returns the names of all stored documents, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the document stored under name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[name]; !ok {
		return ErrModelNotFound
	}
	delete(s.docs, name)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
