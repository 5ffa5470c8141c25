package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/feature/catalog/usecase"
	"storefront_backend/internal/platform/backend"
)

// productBackend は backend.RowStore 上の usecase.ProductRepository 実装です。
type productBackend struct {
	rows  backend.RowStore
	newID func() string
	now   func() time.Time
}

var _ usecase.ProductRepository = (*productBackend)(nil)

// NewProductBackend はproductBackendの新しいインスタンスを生成します。
func NewProductBackend(rows backend.RowStore) *productBackend {
	return &productBackend{rows: rows, newID: uuid.NewString, now: time.Now}
}

func owned(userID string) backend.Query {
	return backend.From(entity.ProductTable).Eq("user_id", userID)
}

func (r *productBackend) ListByUser(ctx context.Context, userID string) ([]entity.Product, error) {
	var out []entity.Product
	if err := r.rows.Select(ctx, owned(userID).OrderBy("created_at", false), &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if out == nil {
		out = []entity.Product{}
	}
	return out, nil
}

func (r *productBackend) FindByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	var p entity.Product
	if err := r.rows.Single(ctx, owned(userID).Eq("id", id), &p); err != nil {
		if errors.Is(err, backend.ErrNoRows) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

// Create は ID と作成日時をアプリ側で採番して挿入します。
func (r *productBackend) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	row := *p
	row.ID = r.newID()
	row.CreatedAt = r.now().UTC().Truncate(time.Millisecond)

	var saved entity.Product
	if err := r.rows.Insert(ctx, entity.ProductTable, row, &saved); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &saved, nil
}

func (r *productBackend) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	patch := map[string]any{
		"nome":      p.Nome,
		"descricao": p.Descricao,
		"preco":     p.Preco,
		"imagem":    p.Imagem,
	}
	var saved entity.Product
	if err := r.rows.Update(ctx, owned(p.UserID).Eq("id", p.ID), patch, &saved); err != nil {
		if errors.Is(err, backend.ErrNoRows) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &saved, nil
}

func (r *productBackend) Delete(ctx context.Context, userID, id string) error {
	if err := r.rows.Delete(ctx, owned(userID).Eq("id", id)); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
