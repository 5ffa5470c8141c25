package usecase

import (
	"context"
	"errors"
	"log/slog"

	"storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/platform/backend"
	"storefront_backend/internal/platform/state"
)

// LoginPath はセッションのない訪問者をナビバーが送る先です。
const LoginPath = "/login"

// NavbarState はナビバーが描画する内容です。
type NavbarState struct {
	Identity *backend.Identity
	Profile  *entity.Profile
	// Error はナビバーの横に表示され、描画は妨げません。
	Error string
	// Redirect は現在のユーザーがいない場合に設定されます。
	Redirect string
}

// ShowAvatar はユーザー表示部分を描画できるかを返します。
func (s NavbarState) ShowAvatar() bool { return s.Profile != nil }

// Navbar は現在のユーザーとそのプロフィールを解決します。
type Navbar struct {
	state    *state.Container[NavbarState]
	identity IdentityResolver
	profiles ProfileRepository
}

// NewNavbar はNavbarの新しいインスタンスを生成します。
func NewNavbar(identity IdentityResolver, profiles ProfileRepository) *Navbar {
	return &Navbar{
		state:    state.NewContainer(NavbarState{}),
		identity: identity,
		profiles: profiles,
	}
}

// State は変更を購読できるようコンテナを公開します。
func (n *Navbar) State() *state.Container[NavbarState] { return n.state }

// Load はユーザーがいなければリダイレクトし、プロフィール取得の失敗はErrorを設定するだけです。
func (n *Navbar) Load(ctx context.Context, accessToken string) NavbarState {
	user, err := n.identity.GetUser(ctx, accessToken)
	if err != nil || user == nil {
		if err != nil && !errors.Is(err, backend.ErrNotAuthenticated) {
			slog.Warn("navbar identity lookup failed", "error", err)
		}
		return n.state.Set(NavbarState{Redirect: LoginPath})
	}

	// /api/navbar はガード外なので、サインイン中のユーザーとして問い合わせる
	ctx = backend.WithAccessToken(ctx, accessToken)
	p, err := n.profiles.FindByUserID(ctx, user.ID)
	if err != nil {
		slog.Warn("navbar profile fetch failed", "error", err, "user_id", user.ID)
		return n.state.Set(NavbarState{Identity: user, Error: backend.Message(err)})
	}
	return n.state.Set(NavbarState{Identity: user, Profile: p})
}

// ApplyUpdate はモーダル保存後に保持中のプロフィールを置き換えます。
func (n *Navbar) ApplyUpdate(p entity.Profile) {
	n.state.Update(func(s *NavbarState) {
		s.Profile = &p
		s.Error = ""
	})
}
