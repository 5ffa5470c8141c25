// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	profileentity "storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/platform/backend"
)

// AuthClient は認証バックエンドを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（backend）ではなくコンシューマー（usecase）が定義します。
type AuthClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (*backend.Session, error)
	SignUp(ctx context.Context, email, password string) (*backend.Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// ProfileCreator は新規アカウントのプロフィール行を作成します。
type ProfileCreator interface {
	CreateForSignup(ctx context.Context, userID, nome, email string) (*profileentity.Profile, error)
}

// authUsecase はログイン・登録・ログアウトを実装します。
type authUsecase struct {
	auth     AuthClient
	profiles ProfileCreator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(auth AuthClient, profiles ProfileCreator) *authUsecase {
	return &authUsecase{auth: auth, profiles: profiles}
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// SignIn はメールアドレスとパスワードでセッションを開始します。
func (u *authUsecase) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	return u.auth.SignInWithPassword(ctx, strings.TrimSpace(email), password)
}

// SignUp はアカウントを登録し、続けてプロフィール行を作成します。
// プロフィール作成に失敗してもアカウントは残ります。
func (u *authUsecase) SignUp(ctx context.Context, nome, email, password string) (*backend.Identity, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	identity, err := u.auth.SignUp(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	if _, err := u.profiles.CreateForSignup(ctx, identity.ID, nome, identity.Email); err != nil {
		slog.Error("profile insert after signup failed", "error", err, "user_id", identity.ID)
		return identity, fmt.Errorf("%w: %w", ErrProfileCreate, err)
	}
	return identity, nil
}

// SignOut はセッションを無効化します。
func (u *authUsecase) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return backend.ErrNotAuthenticated
	}
	return u.auth.SignOut(ctx, accessToken)
}
