package authn

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// SessionModel is the auth_sessions row.
type SessionModel struct {
	ID        string     `gorm:"primaryKey;size:36"`
	UserID    string     `gorm:"index;size:36;not null"`
	CreatedAt time.Time  `gorm:"not null"`
	ExpiresAt time.Time  `gorm:"index;not null"`
	RevokedAt *time.Time `gorm:"index"`
}

func (SessionModel) TableName() string { return "auth_sessions" }

func (m SessionModel) session() *Session {
	s := Session(m)
	return &s
}

// sessionGorm keeps sessions in the row database when Redis is absent.
type sessionGorm struct {
	db *gorm.DB
}

var _ SessionRepository = (*sessionGorm)(nil)

func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

func (r *sessionGorm) table(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&SessionModel{})
}

func (r *sessionGorm) Create(ctx context.Context, s *Session) error {
	m := SessionModel(*s)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *sessionGorm) FindByID(ctx context.Context, id string) (*Session, error) {
	var m SessionModel
	err := r.table(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.session(), nil
}

func (r *sessionGorm) Active(ctx context.Context, userID string, at time.Time) ([]*Session, error) {
	var rows []SessionModel
	err := r.table(ctx).
		Where("user_id = ?", userID).
		Where("revoked_at IS NULL").
		Where("expires_at > ?", at).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*Session, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.session())
	}
	return out, nil
}

func (r *sessionGorm) Revoke(ctx context.Context, id string, at time.Time) error {
	res := r.table(ctx).Where("id = ?", id).Update("revoked_at", at)
	if res.Error == nil && res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return res.Error
}

func (r *sessionGorm) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&SessionModel{}).Error
}

func (r *sessionGorm) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&SessionModel{})
	return res.RowsAffected, res.Error
}
