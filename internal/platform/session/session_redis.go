// Package session keeps auth sessions in Redis, next to the view-state cache.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront_backend/internal/platform/backend/authn"
)

// revokedRetention is how long a revoked session stays readable.
const revokedRetention = 24 * time.Hour

// SessionRedis stores each session as JSON under <prefix>:<id>, expiring with the
// session, and indexes a user's ids in the set <prefix>:user:<userID>.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

var _ authn.SessionRepository = (*SessionRedis)(nil)

func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{client: client, prefix: prefix}
}

func (r *SessionRedis) key(id string) string { return r.prefix + ":" + id }

func (r *SessionRedis) index(userID string) string { return r.prefix + ":user:" + userID }

func (r *SessionRedis) put(ctx context.Context, pipe redis.Cmdable, s *authn.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return pipe.Set(ctx, r.key(s.ID), data, ttl).Err()
}

func (r *SessionRedis) Create(ctx context.Context, s *authn.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session expires before it is stored")
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := r.put(ctx, pipe, s, ttl); err != nil {
			return err
		}
		pipe.SAdd(ctx, r.index(s.UserID), s.ID)
		return nil
	})
	return err
}

func (r *SessionRedis) FindByID(ctx context.Context, id string) (*authn.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, authn.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	s := new(authn.Session)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return s, nil
}

// Active reads every indexed id and drops index entries whose key Redis expired.
func (r *SessionRedis) Active(ctx context.Context, userID string, at time.Time) ([]*authn.Session, error) {
	ids, err := r.client.SMembers(ctx, r.index(userID)).Result()
	if err != nil {
		return nil, err
	}
	var live []*authn.Session
	for _, id := range ids {
		s, err := r.FindByID(ctx, id)
		switch {
		case errors.Is(err, authn.ErrSessionNotFound):
			r.client.SRem(ctx, r.index(userID), id)
		case err != nil:
			return nil, err
		case s.Live(at):
			live = append(live, s)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].CreatedAt.Before(live[j].CreatedAt) })
	return live, nil
}

func (r *SessionRedis) Revoke(ctx context.Context, id string, at time.Time) error {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.RevokedAt = &at
	return r.put(ctx, r.client, s, revokedRetention)
}

func (r *SessionRedis) Delete(ctx context.Context, id string) error {
	s, err := r.FindByID(ctx, id)
	if errors.Is(err, authn.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(id))
		pipe.SRem(ctx, r.index(s.UserID), id)
		return nil
	})
	return err
}

// DeleteExpired has nothing to do: session keys carry their own TTL.
func (r *SessionRedis) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
