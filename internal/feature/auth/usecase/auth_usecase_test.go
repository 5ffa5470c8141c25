package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profileentity "storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/platform/backend"
)

type mockAuthClient struct {
	SignInFunc  func(ctx context.Context, email, password string) (*backend.Session, error)
	SignUpFunc  func(ctx context.Context, email, password string) (*backend.Identity, error)
	SignOutFunc func(ctx context.Context, accessToken string) error
	calls       int
}

func (m *mockAuthClient) SignInWithPassword(ctx context.Context, email, password string) (*backend.Session, error) {
	m.calls++
	return m.SignInFunc(ctx, email, password)
}

func (m *mockAuthClient) SignUp(ctx context.Context, email, password string) (*backend.Identity, error) {
	m.calls++
	return m.SignUpFunc(ctx, email, password)
}

func (m *mockAuthClient) SignOut(ctx context.Context, accessToken string) error {
	m.calls++
	return m.SignOutFunc(ctx, accessToken)
}

type mockProfileCreator struct {
	CreateFunc func(ctx context.Context, userID, nome, email string) (*profileentity.Profile, error)
}

func (m *mockProfileCreator) CreateForSignup(ctx context.Context, userID, nome, email string) (*profileentity.Profile, error) {
	return m.CreateFunc(ctx, userID, nome, email)
}

func TestAuthUsecase_SignIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "empty email", email: "  ", password: "secret123", wantErr: ErrEmailRequired},
		{name: "empty password", email: "ana@example.com", password: "", wantErr: ErrPasswordRequired},
		{name: "both empty reports email first", wantErr: ErrEmailRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			auth := &mockAuthClient{}
			_, err := NewAuthUsecase(auth, &mockProfileCreator{}).SignIn(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, auth.calls, "no backend call on validation failure")
		})
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		auth := &mockAuthClient{SignInFunc: func(ctx context.Context, email, password string) (*backend.Session, error) {
			assert.Equal(t, "ana@example.com", email)
			return &backend.Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour), User: backend.Identity{ID: "u1", Email: email}}, nil
		}}
		s, err := NewAuthUsecase(auth, &mockProfileCreator{}).SignIn(context.Background(), " ana@example.com ", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "tok", s.AccessToken)
	})

	t.Run("backend rejection passes through", func(t *testing.T) {
		t.Parallel()
		rejected := &backend.APIError{Status: 400, Code: "invalid_credentials", Message: "Invalid login credentials"}
		auth := &mockAuthClient{SignInFunc: func(ctx context.Context, email, password string) (*backend.Session, error) {
			return nil, rejected
		}}
		_, err := NewAuthUsecase(auth, &mockProfileCreator{}).SignIn(context.Background(), "ana@example.com", "x")
		assert.Equal(t, "Invalid login credentials", backend.Message(err))
	})
}

func TestAuthUsecase_SignUp(t *testing.T) {
	t.Parallel()

	signUp := func(ctx context.Context, email, password string) (*backend.Identity, error) {
		return &backend.Identity{ID: "u9", Email: email}, nil
	}

	t.Run("creates profile row", func(t *testing.T) {
		t.Parallel()
		var got []string
		profiles := &mockProfileCreator{CreateFunc: func(ctx context.Context, userID, nome, email string) (*profileentity.Profile, error) {
			got = []string{userID, nome, email}
			return &profileentity.Profile{ID: "p", UserID: userID}, nil
		}}
		id, err := NewAuthUsecase(&mockAuthClient{SignUpFunc: signUp}, profiles).SignUp(context.Background(), "Bia", "bia@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "u9", id.ID)
		assert.Equal(t, []string{"u9", "Bia", "bia@example.com"}, got)
	})

	t.Run("profile failure is reported", func(t *testing.T) {
		t.Parallel()
		profiles := &mockProfileCreator{CreateFunc: func(ctx context.Context, userID, nome, email string) (*profileentity.Profile, error) {
			return nil, &backend.APIError{Status: 409, Message: "duplicate key value"}
		}}
		id, err := NewAuthUsecase(&mockAuthClient{SignUpFunc: signUp}, profiles).SignUp(context.Background(), "Bia", "bia@example.com", "secret123")
		assert.ErrorIs(t, err, ErrProfileCreate)
		assert.Equal(t, "duplicate key value", backend.Message(err))
		require.NotNil(t, id)
	})

	t.Run("auth failure skips profile", func(t *testing.T) {
		t.Parallel()
		auth := &mockAuthClient{SignUpFunc: func(ctx context.Context, email, password string) (*backend.Identity, error) {
			return nil, &backend.APIError{Status: 422, Message: "User already registered"}
		}}
		profiles := &mockProfileCreator{CreateFunc: func(ctx context.Context, userID, nome, email string) (*profileentity.Profile, error) {
			t.Fatal("profile must not be created")
			return nil, nil
		}}
		_, err := NewAuthUsecase(auth, profiles).SignUp(context.Background(), "Bia", "bia@example.com", "secret123")
		assert.Equal(t, "User already registered", backend.Message(err))
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		auth := &mockAuthClient{}
		_, err := NewAuthUsecase(auth, &mockProfileCreator{}).SignUp(context.Background(), "Bia", "bia@example.com", "")
		assert.ErrorIs(t, err, ErrPasswordRequired)
		assert.Zero(t, auth.calls)
	})
}

func TestAuthUsecase_SignOut(t *testing.T) {
	t.Parallel()

	auth := &mockAuthClient{SignOutFunc: func(ctx context.Context, accessToken string) error {
		assert.Equal(t, "tok", accessToken)
		return nil
	}}
	uc := NewAuthUsecase(auth, &mockProfileCreator{})
	assert.ErrorIs(t, uc.SignOut(context.Background(), ""), backend.ErrNotAuthenticated)
	assert.NoError(t, uc.SignOut(context.Background(), "tok"))
	assert.Equal(t, 1, auth.calls)
}
