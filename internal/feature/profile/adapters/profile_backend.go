package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/feature/profile/usecase"
	"storefront_backend/internal/platform/backend"
)

// profileBackend は backend.RowStore 上の usecase.ProfileRepository 実装です。
type profileBackend struct {
	rows  backend.RowStore
	newID func() string
}

var _ usecase.ProfileRepository = (*profileBackend)(nil)

// NewProfileBackend はprofileBackendの新しいインスタンスを生成します。
func NewProfileBackend(rows backend.RowStore) *profileBackend {
	return &profileBackend{rows: rows, newID: uuid.NewString}
}

func byUser(userID string) backend.Query {
	return backend.From(entity.ProfileTable).Eq("user_id", userID)
}

func (r *profileBackend) FindByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.rows.Single(ctx, byUser(userID), &p); err != nil {
		if errors.Is(err, backend.ErrNoRows) {
			return nil, usecase.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

// UpdateByUserID は編集可能な列をすべて書き込みます。行の再読み込みはしません。
func (r *profileBackend) UpdateByUserID(ctx context.Context, userID string, patch usecase.ProfilePatch) error {
	values := map[string]any{
		"nome":        patch.Nome,
		"sexo":        patch.Sexo,
		"pais":        patch.Pais,
		"estado":      patch.Estado,
		"foto_perfil": patch.FotoPerfil,
	}
	if err := r.rows.Update(ctx, byUser(userID), values, nil); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (r *profileBackend) Create(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	row := *p
	if row.ID == "" {
		row.ID = r.newID()
	}
	var saved entity.Profile
	if err := r.rows.Insert(ctx, entity.ProfileTable, row, &saved); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return &saved, nil
}
