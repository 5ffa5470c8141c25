package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront_backend/internal/platform/backend"
)

type item struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey"`
	Name      string    `json:"nome" gorm:"column:nome"`
	Price     float64   `json:"preco" gorm:"column:preco"`
	UserID    string    `json:"user_id" gorm:"column:user_id"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

const table = "loja_produto"

func setupStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Table(table).AutoMigrate(&item{}))

	return New(db)
}

func seed(t *testing.T, s *Store, items ...item) {
	t.Helper()
	for _, it := range items {
		require.NoError(t, s.Insert(context.Background(), table, it, nil))
	}
}

func TestStore_SelectFiltersAndOrders(t *testing.T) {
	s := setupStore(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seed(t, s,
		item{ID: "a", Name: "Copo", UserID: "u1", CreatedAt: base},
		item{ID: "b", Name: "Caneca", UserID: "u1", CreatedAt: base.Add(time.Hour)},
		item{ID: "c", Name: "Prato", UserID: "u2", CreatedAt: base.Add(2 * time.Hour)},
	)

	var got []item
	err := s.Select(context.Background(), backend.From(table).Eq("user_id", "u1").OrderBy("created_at", false), &got)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestStore_Single(t *testing.T) {
	s := setupStore(t)
	seed(t, s, item{ID: "a", Name: "Copo", UserID: "u1"})

	var got item
	require.NoError(t, s.Single(context.Background(), backend.From(table).Eq("id", "a").Eq("user_id", "u1"), &got))
	assert.Equal(t, "Copo", got.Name)

	err := s.Single(context.Background(), backend.From(table).Eq("id", "a").Eq("user_id", "u2"), &got)
	assert.ErrorIs(t, err, backend.ErrNoRows)
}

func TestStore_InsertReadsBack(t *testing.T) {
	s := setupStore(t)

	var out item
	require.NoError(t, s.Insert(context.Background(), table, &item{ID: "a", Name: "Caneca", Price: 25.9, UserID: "u1"}, &out))
	assert.Equal(t, "Caneca", out.Name)
	assert.False(t, out.CreatedAt.IsZero(), "created_at is filled on insert")

	var viaJSON map[string]any
	require.NoError(t, s.Insert(context.Background(), table, item{ID: "b", Name: "Copo", UserID: "u1"}, &viaJSON))
	assert.Equal(t, "Copo", viaJSON["nome"])
}

func TestStore_Update(t *testing.T) {
	s := setupStore(t)
	seed(t, s, item{ID: "a", Name: "Copo", Price: 10, UserID: "u1"})
	ctx := context.Background()

	var out item
	require.NoError(t, s.Update(ctx, backend.From(table).Eq("id", "a"), map[string]any{"preco": 12.5}, &out))
	assert.Equal(t, 12.5, out.Price)
	assert.Equal(t, "Copo", out.Name)

	err := s.Update(ctx, backend.From(table).Eq("id", "missing"), map[string]any{"preco": 1}, &out)
	assert.ErrorIs(t, err, backend.ErrNoRows)

	assert.NoError(t, s.Update(ctx, backend.From(table).Eq("id", "missing"), map[string]any{"preco": 1}, nil))
	assert.Error(t, s.Update(ctx, backend.From(table), map[string]any{"preco": 1}, nil))
}

func TestStore_Delete(t *testing.T) {
	s := setupStore(t)
	seed(t, s,
		item{ID: "a", Name: "Copo", UserID: "u1"},
		item{ID: "b", Name: "Caneca", UserID: "u1"},
	)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, backend.From(table).Eq("id", "a").Eq("user_id", "u1")))
	assert.ErrorIs(t, s.Delete(ctx, backend.From(table)), backend.ErrUnfilteredDelete)

	var rest []item
	require.NoError(t, s.Select(ctx, backend.From(table), &rest))
	require.Len(t, rest, 1)
	assert.Equal(t, "b", rest[0].ID)
}
