package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/platform/backend"
	"storefront_backend/internal/platform/state"
)

// EditorPhase はプロフィールモーダルのライフサイクルです。
type EditorPhase string

const (
	PhaseIdle       EditorPhase = "idle"
	PhaseSubmitting EditorPhase = "submitting"
	PhaseClosed     EditorPhase = "closed"
)

// ProfileForm はモーダルの入力項目を保持します。
type ProfileForm struct {
	Nome   string
	Sexo   string
	Pais   string
	Estado string
}

// PhotoUpload は新しいプロフィール写真です。
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// EditorState は呼び出し側から購読できます。
type EditorState struct {
	Phase  EditorPhase
	Held   entity.Profile
	Form   ProfileForm
	Error  string
	Merged *entity.Profile
}

// EditorDeps はProfileEditorの依存先です。
type EditorDeps struct {
	Profiles ProfileRepository
	Photos   PhotoStorage
	Sessions SessionSource
	Now      func() time.Time
}

// ProfileEditor はナビバーが保持しているプロフィールを編集します。
type ProfileEditor struct {
	state    *state.Container[EditorState]
	deps     EditorDeps
	onUpdate func(entity.Profile)
}

// NewProfileEditor はheldからフォームを事前入力します。
func NewProfileEditor(deps EditorDeps, held entity.Profile, onUpdate func(entity.Profile)) *ProfileEditor {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &ProfileEditor{
		state: state.NewContainer(EditorState{
			Phase: PhaseIdle,
			Held:  held,
			Form:  ProfileForm{Nome: held.Nome, Sexo: held.Sexo, Pais: held.Pais, Estado: held.Estado},
		}),
		deps:     deps,
		onUpdate: onUpdate,
	}
}

// State は変更を購読できるようコンテナを公開します。
func (e *ProfileEditor) State() *state.Container[EditorState] { return e.state }

// SetForm はフォームの項目を置き換えます。
func (e *ProfileEditor) SetForm(f ProfileForm) {
	e.state.Update(func(s *EditorState) { s.Form = f })
}

// Cancel は保存中でなければモーダルを閉じます。
func (e *ProfileEditor) Cancel() error {
	var err error
	e.state.Update(func(s *EditorState) {
		if s.Phase == PhaseSubmitting {
			err = ErrSaveInFlight
			return
		}
		s.Phase = PhaseClosed
	})
	return err
}

// Submit は任意の写真をアップロードし、ユーザーIDで行を更新して、
// 編集した項目を保持中のプロフィールにマージします。
func (e *ProfileEditor) Submit(ctx context.Context, accessToken string, photo *PhotoUpload) (*entity.Profile, error) {
	var (
		busy bool
		snap EditorState
	)
	e.state.Update(func(s *EditorState) {
		if s.Phase == PhaseSubmitting {
			busy = true
			return
		}
		s.Phase = PhaseSubmitting
		s.Error = ""
		snap = *s
	})
	if busy {
		return nil, ErrSaveInFlight
	}

	merged, err := e.save(ctx, accessToken, snap, photo)
	if err != nil {
		e.state.Update(func(s *EditorState) {
			s.Phase = PhaseIdle
			s.Error = backend.Message(err)
		})
		return nil, err
	}

	if e.onUpdate != nil {
		e.onUpdate(*merged)
	}
	e.state.Update(func(s *EditorState) {
		s.Phase = PhaseClosed
		s.Held = *merged
		s.Merged = merged
	})
	return merged, nil
}

func (e *ProfileEditor) save(ctx context.Context, accessToken string, s EditorState, photo *PhotoUpload) (*entity.Profile, error) {
	if !entity.ValidSexo(s.Form.Sexo) {
		return nil, ErrInvalidSexo
	}

	session, err := e.deps.Sessions.GetSession(ctx, accessToken)
	if err != nil || session == nil {
		if err != nil && !errors.Is(err, backend.ErrNotAuthenticated) {
			slog.Warn("session lookup failed", "error", err)
		}
		return nil, backend.ErrNotAuthenticated
	}
	userID := session.User.ID

	foto := s.Held.FotoPerfil
	if photo != nil {
		p := NewPhotoPath(userID, e.deps.Now(), photo.Filename)
		url, err := e.deps.Photos.Upload(ctx, p, photo.Body, photo.Size, photo.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload photo: %w", err)
		}
		foto = url
	}

	patch := ProfilePatch{
		Nome:       s.Form.Nome,
		Sexo:       s.Form.Sexo,
		Pais:       s.Form.Pais,
		Estado:     s.Form.Estado,
		FotoPerfil: foto,
	}
	if err := e.deps.Profiles.UpdateByUserID(ctx, userID, patch); err != nil {
		return nil, err
	}

	merged := s.Held
	merged.Nome = patch.Nome
	merged.Sexo = patch.Sexo
	merged.Pais = patch.Pais
	merged.Estado = patch.Estado
	merged.FotoPerfil = patch.FotoPerfil
	if merged.UserID == "" {
		merged.UserID = userID
	}
	return &merged, nil
}

// NewPhotoPath はユーザーと時刻 (ミリ秒) でプロフィール写真を命名します。
func NewPhotoPath(userID string, now time.Time, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("perfil/%s-%d.%s", userID, now.UnixMilli(), ext)
}
