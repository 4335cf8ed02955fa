package keys

import (
	"context"
	"errors"
	"sync"
)

// ErrKeyExists is returned by SecureStore.Put when the tag already holds a key.
var ErrKeyExists = errors.New("key already exists")

// SecureStore persists key material apart from the record data.
type SecureStore interface {
	// Get returns the key stored under tag. ok is false when no key exists.
	Get(ctx context.Context, tag string) (key []byte, ok bool, err error)

	// Put stores key under tag only if the tag is empty; otherwise it
	// returns ErrKeyExists and leaves the stored key untouched.
	Put(ctx context.Context, tag string, key []byte) error
}

// MemoryStore is an in-process SecureStore.
type MemoryStore struct {
	mu   sync.Mutex
	keys map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, tag string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.keys[tag]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(k))
	copy(out, k)
	return out, true, nil
}

func (s *MemoryStore) Put(_ context.Context, tag string, key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[tag]; ok {
		return ErrKeyExists
	}
	stored := make([]byte, len(key))
	copy(stored, key)
	s.keys[tag] = stored
	return nil
}
