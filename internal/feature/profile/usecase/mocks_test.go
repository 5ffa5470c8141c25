package usecase

import (
	"context"
	"io"
	"time"

	"storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/platform/backend"
)

type mockProfileRepository struct {
	FindByUserIDFunc   func(ctx context.Context, userID string) (*entity.Profile, error)
	UpdateByUserIDFunc func(ctx context.Context, userID string, patch ProfilePatch) error
	CreateFunc         func(ctx context.Context, p *entity.Profile) (*entity.Profile, error)
}

func (m *mockProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, ErrProfileNotFound
}

func (m *mockProfileRepository) UpdateByUserID(ctx context.Context, userID string, patch ProfilePatch) error {
	if m.UpdateByUserIDFunc != nil {
		return m.UpdateByUserIDFunc(ctx, userID, patch)
	}
	return nil
}

func (m *mockProfileRepository) Create(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	saved := *p
	saved.ID = "profile-1"
	return &saved, nil
}

type mockPhotos struct {
	paths []string
	err   error
}

func (m *mockPhotos) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error) {
	m.paths = append(m.paths, path)
	if m.err != nil {
		return "", m.err
	}
	return "https://cdn.test/box/" + path, nil
}

// mockAuth serves both GetSession and GetUser for userID; empty userID means signed out.
type mockAuth struct {
	userID string
	err    error
}

func (m mockAuth) GetSession(ctx context.Context, accessToken string) (*backend.Session, error) {
	if m.userID == "" {
		return nil, backend.ErrNotAuthenticated
	}
	return &backend.Session{User: backend.Identity{ID: m.userID}}, nil
}

func (m mockAuth) GetUser(ctx context.Context, accessToken string) (*backend.Identity, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.userID == "" {
		return nil, backend.ErrNotAuthenticated
	}
	return &backend.Identity{ID: m.userID, Email: "ana@example.com"}, nil
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func heldProfile() entity.Profile {
	return entity.Profile{
		ID: "profile-1", UserID: "u1", Nome: "Ana", Email: "ana@example.com",
		Sexo: entity.SexoFeminino, Pais: "Brasil", Estado: "SP",
		FotoPerfil: "https://cdn.test/box/perfil/u1-1.png",
	}
}
