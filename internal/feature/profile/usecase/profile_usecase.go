package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront_backend/internal/feature/profile/domain/entity"
)

const defaultSaveLockTTL = 30 * time.Second

// SaveInput はプロフィールモーダルの1回分の送信内容です。nilの項目は現在の値を維持します。
type SaveInput struct {
	Nome   *string
	Sexo   *string
	Pais   *string
	Estado *string
	Photo  *PhotoUpload
}

// profileUsecase はナビバーとプロフィールモーダルを束ねます。
type profileUsecase struct {
	profiles ProfileRepository
	photos   PhotoStorage
	sessions SessionSource
	identity IdentityResolver
	locks    LockStore
	lockTTL  time.Duration
	now      func() time.Time
}

// NewProfileUsecase はprofileUsecaseの新しいインスタンスを生成します。
func NewProfileUsecase(profiles ProfileRepository, photos PhotoStorage, sessions SessionSource, identity IdentityResolver, locks LockStore) *profileUsecase {
	return &profileUsecase{
		profiles: profiles,
		photos:   photos,
		sessions: sessions,
		identity: identity,
		locks:    locks,
		lockTTL:  defaultSaveLockTTL,
		now:      time.Now,
	}
}

// Navbar はナビバー用に現在のユーザーとプロフィールを解決します。
func (u *profileUsecase) Navbar(ctx context.Context, accessToken string) NavbarState {
	return NewNavbar(u.identity, u.profiles).Load(ctx, accessToken)
}

// Get はモーダルを開くときのプロフィールを返します。
func (u *profileUsecase) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	return u.profiles.FindByUserID(ctx, userID)
}

// Save はuserIDのモーダル送信内容を適用します。
func (u *profileUsecase) Save(ctx context.Context, accessToken, userID string, in SaveInput) (*entity.Profile, error) {
	unlock, ok, err := u.locks.TryLock(ctx, "profile-save:"+userID, u.lockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSaveInFlight
	}
	defer unlock()

	held, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	editor := NewProfileEditor(EditorDeps{
		Profiles: u.profiles,
		Photos:   u.photos,
		Sessions: u.sessions,
		Now:      u.now,
	}, *held, nil)

	form := editor.State().Get().Form
	if in.Nome != nil {
		form.Nome = *in.Nome
	}
	if in.Sexo != nil {
		form.Sexo = *in.Sexo
	}
	if in.Pais != nil {
		form.Pais = *in.Pais
	}
	if in.Estado != nil {
		form.Estado = *in.Estado
	}
	editor.SetForm(form)
	return editor.Submit(ctx, accessToken, in.Photo)
}

// CreateForSignup は新規登録ユーザーのプロフィール行を作成します。
func (u *profileUsecase) CreateForSignup(ctx context.Context, userID, nome, email string) (*entity.Profile, error) {
	p, err := u.profiles.Create(ctx, &entity.Profile{
		UserID: userID,
		Nome:   strings.TrimSpace(nome),
		Email:  strings.ToLower(strings.TrimSpace(email)),
	})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}
