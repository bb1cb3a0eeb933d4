package blacklist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAddContains(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	ok, err := s.Contains(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Add(ctx, "revoked", time.Now().UTC().Add(time.Hour)))
	ok, err = s.Contains(ctx, "revoked")
	require.NoError(t, err)
	assert.True(t, ok)

	// A different hash for the same user is unaffected.
	ok, err = s.Contains(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreExpiredEntryIsAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Past expiry: dropped on insert.
	require.NoError(t, s.Add(ctx, "stale", time.Now().UTC().Add(-time.Minute)))
	ok, err := s.Contains(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStorePurgeExpired(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Add(ctx, "live", time.Now().UTC().Add(time.Hour)))
	s.mu.Lock()
	s.entries["dead1"] = time.Now().UTC().Add(-time.Second)
	s.entries["dead2"] = time.Now().UTC().Add(-time.Minute)
	s.mu.Unlock()

	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Idempotent: nothing new expired, second run removes zero.
	n, err = s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	ok, err := s.Contains(ctx, "live")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	exp := time.Now().UTC().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			hash := string(rune('a' + n))
			_ = s.Add(ctx, hash, exp)
			_, _ = s.Contains(ctx, hash)
			_, _ = s.PurgeExpired(ctx)
		}(i)
	}
	wg.Wait()

	ok, err := s.Contains(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
}
