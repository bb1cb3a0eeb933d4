package blacklist

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one key per revoked token hash with a per-key TTL, so
// Redis itself drops entries at their natural expiry.  PurgeExpired only
// has stragglers to clean up (keys left without a TTL by an interrupted
// write); it scans the prefix and deletes them.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing Redis client.  The prefix namespaces
// blacklist keys away from the rate limiter and response cache.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "blacklist"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(hash string) string { return s.prefix + ":" + hash }

// Add stores the hash with a TTL equal to the token's remaining lifetime.
// Tokens already past expiry need no entry: an expired token fails
// validation on its own.
func (s *RedisStore) Add(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.key(tokenHash), "1", ttl).Err()
}

// Contains reports whether the hash is present.  Errors are returned to
// the caller untouched: store unavailability must surface as an
// infrastructure failure, never as a verdict on the token.
func (s *RedisStore) Contains(ctx context.Context, tokenHash string) (bool, error) {
	_, err := s.client.Get(ctx, s.key(tokenHash)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PurgeExpired walks the blacklist keyspace and deletes keys that lost
// their TTL.  Keys with a live TTL expire server-side, so the usual result
// is zero.  Running twice in a row removes nothing the second time.
func (s *RedisStore) PurgeExpired(ctx context.Context) (int, error) {
	var removed int
	iter := s.client.Scan(ctx, 0, s.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ttl, err := s.client.TTL(ctx, key).Result()
		if err != nil {
			return removed, err
		}
		// TTL == -1 means no expiry was set; treat as a straggler.
		if ttl == -1 {
			if err := s.client.Del(ctx, key).Err(); err != nil {
				return removed, err
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	return removed, nil
}
