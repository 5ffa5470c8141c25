package usecase

import (
	"context"
	"io"
	"time"

	"storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/platform/backend"
)

// ProfilePatch は編集可能なプロフィール項目を保持します。
type ProfilePatch struct {
	Nome       string
	Sexo       string
	Pais       string
	Estado     string
	FotoPerfil string
}

// ProfileRepository はプロフィールの永続化層を抽象化します。
type ProfileRepository interface {
	// FindByUserID は行がない場合にErrProfileNotFoundを返します。
	FindByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	UpdateByUserID(ctx context.Context, userID string, patch ProfilePatch) error
	Create(ctx context.Context, p *entity.Profile) (*entity.Profile, error)
}

// PhotoStorage はプロフィール写真をアップロードし、公開URLを返します。
type PhotoStorage interface {
	Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error)
}

// SessionSource はアクセストークンに対応するセッションを返します。
type SessionSource interface {
	GetSession(ctx context.Context, accessToken string) (*backend.Session, error)
}

// IdentityResolver はアクセストークンに対応する有効なユーザーを解決します。
type IdentityResolver interface {
	GetUser(ctx context.Context, accessToken string) (*backend.Identity, error)
}

// LockStore はリクエストをまたいで同一ユーザーの保存を直列化します。
type LockStore interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), ok bool, err error)
}
