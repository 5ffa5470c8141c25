package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is a Store kept in process memory. Entries expire lazily on read.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	namespace string
	entries   map[string]memoryEntry
	locks     map[string]time.Time
	now       func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore. Zero ttl and empty namespace take defaults.
func NewMemoryStore(ttl time.Duration, namespace string) *MemoryStore {
	ttl, namespace = defaults(ttl, namespace)
	return &MemoryStore{
		ttl:       ttl,
		namespace: namespace,
		entries:   make(map[string]memoryEntry),
		locks:     make(map[string]time.Time),
		now:       time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, key string, dest any) (bool, error) {
	k := dataKey(s.namespace, key)

	s.mu.Lock()
	e, ok := s.entries[k]
	if ok && !s.now().Before(e.expiresAt) {
		delete(s.entries, k)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal view state: %w", err)
	}
	return true, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal view state: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[dataKey(s.namespace, key)] = memoryEntry{data: b, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, dataKey(s.namespace, key))
	return nil
}

func (s *MemoryStore) TryLock(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	k := lockKey(s.namespace, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if until, held := s.locks[k]; held && s.now().Before(until) {
		return nil, false, nil
	}
	until := s.now().Add(ttl)
	s.locks[k] = until

	unlock := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.locks[k].Equal(until) {
			delete(s.locks, k)
		}
	}
	return unlock, true, nil
}
