package adapters

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/feature/profile/usecase"
	"storefront_backend/internal/platform/backend/rowstore/gormstore"
)

func setupRepo(t *testing.T) *profileBackend {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entity.Profile{}))

	r := NewProfileBackend(gormstore.New(db))
	r.newID = func() string { return "profile-1" }
	return r
}

func TestProfileBackend_CreateFindUpdate(t *testing.T) {
	t.Parallel()

	r := setupRepo(t)
	ctx := context.Background()

	_, err := r.FindByUserID(ctx, "u1")
	assert.ErrorIs(t, err, usecase.ErrProfileNotFound)

	created, err := r.Create(ctx, &entity.Profile{UserID: "u1", Nome: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "profile-1", created.ID)

	require.NoError(t, r.UpdateByUserID(ctx, "u1", usecase.ProfilePatch{
		Nome: "Ana Maria", Sexo: entity.SexoFeminino, Pais: "Brasil", Estado: "SP",
		FotoPerfil: "https://cdn.test/perfil/u1-1.png",
	}))

	got, err := r.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.Profile{
		ID: "profile-1", UserID: "u1", Nome: "Ana Maria", Email: "ana@example.com",
		Sexo: "Feminino", Pais: "Brasil", Estado: "SP", FotoPerfil: "https://cdn.test/perfil/u1-1.png",
	}, *got)
}

func TestProfileBackend_OneRowPerUser(t *testing.T) {
	t.Parallel()

	r := setupRepo(t)
	ctx := context.Background()
	_, err := r.Create(ctx, &entity.Profile{UserID: "u1", Nome: "Ana"})
	require.NoError(t, err)

	r.newID = func() string { return "profile-2" }
	_, err = r.Create(ctx, &entity.Profile{UserID: "u1", Nome: "Outra"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

type fakeObjects struct {
	paths   []string
	upserts []bool
}

func (f *fakeObjects) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string, upsert bool) error {
	f.paths = append(f.paths, path)
	f.upserts = append(f.upserts, upsert)
	return nil
}

func (f *fakeObjects) Remove(ctx context.Context, paths ...string) error { return nil }

func (f *fakeObjects) PublicURL(path string) string { return "https://cdn.test/box/" + path }

func TestPhotoStorage(t *testing.T) {
	t.Parallel()

	objs := &fakeObjects{}
	url, err := NewPhotoStorage(objs).Upload(context.Background(), "perfil/u1-5.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/box/perfil/u1-5.png", url)
	assert.Equal(t, []bool{true}, objs.upserts)
}
