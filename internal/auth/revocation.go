package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "jwt:revoked:"

// RevocationStore remembers logged-out tokens until they expire naturally.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type RedisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryRevocationStore is used when no Redis address is configured.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	if !expiresAt.After(s.now()) {
		return nil
	}
	s.mu.Lock()
	s.revoked[token] = expiresAt
	s.mu.Unlock()
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	expiresAt, ok := s.revoked[token]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if s.now().After(expiresAt) {
		s.mu.Lock()
		delete(s.revoked, token)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
