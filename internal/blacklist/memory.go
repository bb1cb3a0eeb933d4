package blacklist

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded in-process revocation list.  It backs the
// unit tests and serves as a degraded single-process fallback when Redis
// is unreachable at startup, mirroring how the rate limiter and response
// cache disable themselves without a Redis client.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time // token hash -> expiry
}

// NewMemoryStore returns an empty in-memory blacklist.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time)}
}

// Add records the hash until expiresAt.  Entries already past expiry are
// dropped on the spot.
func (s *MemoryStore) Add(_ context.Context, tokenHash string, expiresAt time.Time) error {
	if !expiresAt.After(time.Now().UTC()) {
		return nil
	}
	s.mu.Lock()
	s.entries[tokenHash] = expiresAt
	s.mu.Unlock()
	return nil
}

// Contains reports whether the hash is present and unexpired.  Expired
// entries are treated as absent even before a purge runs.
func (s *MemoryStore) Contains(_ context.Context, tokenHash string) (bool, error) {
	s.mu.RLock()
	exp, ok := s.entries[tokenHash]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return exp.After(time.Now().UTC()), nil
}

// PurgeExpired removes entries past their expiry and returns the count.
func (s *MemoryStore) PurgeExpired(_ context.Context) (int, error) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for hash, exp := range s.entries {
		if !exp.After(now) {
			delete(s.entries, hash)
			removed++
		}
	}
	return removed, nil
}
