package approval

import (
	"sync"
	"time"
)

// MemStore is an in-memory TTL store. Expiry is checked lazily on Get, so no
// background sweeper is needed for the handful of tokens this system holds.
// The clock is a field so expiry is testable without sleeping.
type MemStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	value   []byte
	expires time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		entries: map[string]memEntry{},
		now:     time.Now,
	}
}

func (s *MemStore) Put(key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memEntry{value: value, expires: s.now().Add(ttl)}
}

func (s *MemStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expires) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

func (s *MemStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
