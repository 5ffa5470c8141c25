package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes a lock only if it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore is a Store backed by Redis.
type RedisStore struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a RedisStore. Zero ttl and empty namespace take defaults.
func NewRedisStore(rdb *redis.Client, ttl time.Duration, namespace string) *RedisStore {
	ttl, namespace = defaults(ttl, namespace)
	return &RedisStore{rdb: rdb, ttl: ttl, namespace: namespace}
}

// Load reads the snapshot under key. A corrupted entry is deleted and reported as a miss.
func (s *RedisStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	k := dataKey(s.namespace, key)
	b, err := s.rdb.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		slog.Warn("dropping corrupted view state", "key", k, "error", err)
		_ = s.rdb.Del(ctx, k).Err()
		return false, nil
	}
	return true, nil
}

// Save writes v under key with the store TTL.
func (s *RedisStore) Save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal view state: %w", err)
	}
	return s.rdb.Set(ctx, dataKey(s.namespace, key), b, s.ttl).Err()
}

// Delete removes the snapshot under key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, dataKey(s.namespace, key)).Err()
}

// TryLock sets the lock key with SET NX and a random token.
func (s *RedisStore) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	k := lockKey(s.namespace, key)
	token := uuid.NewString()
	ok, err := s.rdb.SetNX(ctx, k, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	unlock := func() {
		// The request context may already be cancelled when unlock runs.
		if err := releaseScript.Run(context.Background(), s.rdb, []string{k}, token).Err(); err != nil {
			slog.Warn("failed to release lock", "key", k, "error", err)
		}
	}
	return unlock, true, nil
}
