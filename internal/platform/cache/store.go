// Package cache stores per-user view state snapshots and short-lived locks.
// Redis is used when configured; otherwise an in-process store takes over.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned by callers that fail to acquire a lock held elsewhere.
var ErrLocked = errors.New("resource is locked")

// Store persists JSON-encodable snapshots under string keys.
type Store interface {
	// Load decodes the value under key into dest. found is false on a miss.
	Load(ctx context.Context, key string, dest any) (found bool, err error)
	Save(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
	// TryLock acquires key for ttl. ok is false when someone else holds it.
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), ok bool, err error)
}

// NewStore returns a Redis-backed store when rdb is non-nil, else an in-process one.
// If ttl is 0, it defaults to 30 minutes. If namespace is empty, it uses "viewstate".
func NewStore(rdb *redis.Client, ttl time.Duration, namespace string) Store {
	if rdb != nil {
		return NewRedisStore(rdb, ttl, namespace)
	}
	return NewMemoryStore(ttl, namespace)
}

func defaults(ttl time.Duration, namespace string) (time.Duration, string) {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if namespace == "" {
		namespace = "viewstate"
	}
	return ttl, namespace
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

func dataKey(namespace, key string) string {
	return namespace + ":" + safe(key)
}

func lockKey(namespace, key string) string {
	return namespace + ":lock:" + safe(key)
}
