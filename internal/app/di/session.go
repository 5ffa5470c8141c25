package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storefront_backend/internal/platform/backend/authn"
	"storefront_backend/internal/platform/session"
)

// NewSessionRepository keeps sessions in Redis when a client is configured and
// in the row database otherwise.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) authn.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authn.NewSessionGorm(db)
}
