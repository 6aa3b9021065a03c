package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend persists the session sentinel. The contract mirrors the single
// storage key the admin console keeps: present means authenticated, absent
// means not. Entries expire after the configured TTL.
type Backend interface {
	Put(ctx context.Context, id string, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type MemoryBackend struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (b *MemoryBackend) Put(_ context.Context, id string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[id] = b.now().Add(ttl)
	return nil
}

func (b *MemoryBackend) Exists(_ context.Context, id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	expiry, ok := b.sessions[id]
	if !ok {
		return false, nil
	}
	if b.now().After(expiry) {
		delete(b.sessions, id)
		return false, nil
	}
	return true, nil
}

func (b *MemoryBackend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, id)
	return nil
}

const redisKeyPrefix = "admin_session:"

// RedisBackend keeps the sentinel in Redis so sessions survive a server
// restart for their remaining TTL.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Put(ctx context.Context, id string, ttl time.Duration) error {
	return b.client.Set(ctx, redisKeyPrefix+id, "true", ttl).Err()
}

func (b *RedisBackend) Exists(ctx context.Context, id string) (bool, error) {
	_, err := b.client.Get(ctx, redisKeyPrefix+id).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *RedisBackend) Delete(ctx context.Context, id string) error {
	return b.client.Del(ctx, redisKeyPrefix+id).Err()
}
