// Package blacklist tracks access tokens revoked before their natural
// expiry.  Entries are keyed by the token's SHA-256 hash and carry the
// token's remaining lifetime, so the list never grows beyond the set of
// tokens that could otherwise still validate.  The store is injected into
// the access gate rather than reached through a global, so tests run
// against the in-memory implementation and production runs against Redis.
package blacklist

import (
	"context"
	"time"
)

// Store is the revocation list.  Implementations must tolerate concurrent
// readers and writers; purging an already-purged entry is a no-op.
type Store interface {
	// Add records a revoked token hash until expiresAt.  Entries with an
	// expiry in the past may be dropped immediately.
	Add(ctx context.Context, tokenHash string, expiresAt time.Time) error
	// Contains reports whether the hash is currently revoked.
	Contains(ctx context.Context, tokenHash string) (bool, error)
	// PurgeExpired removes entries past their expiry and returns how many
	// were removed.  Safe to run concurrently with reads and with itself.
	PurgeExpired(ctx context.Context) (int, error)
}
