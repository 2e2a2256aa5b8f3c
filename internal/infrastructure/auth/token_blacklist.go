package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "token:blacklist:"

// RedisTokenBlacklist stores revoked token IDs in Redis with a TTL
// matching the token's remaining lifetime.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist creates a Redis-backed blacklist
func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// Revoke marks the token ID as revoked until the given time
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// already expired, nothing to store
		return nil
	}
	if err := b.client.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token ID has been revoked
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return n > 0, nil
}

// InMemoryTokenBlacklist keeps revoked token IDs in process memory.
// Suitable for single-instance deployments and tests.
type InMemoryTokenBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewInMemoryTokenBlacklist creates an in-memory blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{entries: make(map[string]time.Time)}
}

// Revoke marks the token ID as revoked until the given time
func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[tokenID] = until
	b.prune()
	return nil
}

// IsRevoked reports whether the token ID has been revoked
func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	until, ok := b.entries[tokenID]
	if !ok {
		return false, nil
	}
	return time.Now().Before(until), nil
}

// prune drops expired entries; callers must hold the write lock
func (b *InMemoryTokenBlacklist) prune() {
	now := time.Now()
	for id, until := range b.entries {
		if now.After(until) {
			delete(b.entries, id)
		}
	}
}
