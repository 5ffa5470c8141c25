package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/feature/catalog/domain/entity"
)

func TestProductList_Load(t *testing.T) {
	t.Parallel()

	t.Run("keeps only the user's products", func(t *testing.T) {
		repo := &mockProductRepository{ListByUserFunc: func(ctx context.Context, userID string) ([]entity.Product, error) {
			assert.Equal(t, "u1", userID)
			return []entity.Product{
				product("1", "u1", "Caneca", "", 25.9),
				product("2", "u2", "Alheio", "", 1),
			}, nil
		}}
		l := NewProductList(repo, "u1", ListState{})

		require.NoError(t, l.Load(context.Background()))
		s := l.State().Get()
		assert.True(t, s.Loaded)
		assert.False(t, s.Loading)
		assert.Equal(t, []string{"1"}, ids(s.Products))
	})

	t.Run("failure sets the generic message and keeps products", func(t *testing.T) {
		repo := &mockProductRepository{ListByUserFunc: func(ctx context.Context, userID string) ([]entity.Product, error) {
			return nil, errBackend
		}}
		l := NewProductList(repo, "u1", ListState{Products: sampleProducts(), Loaded: true})

		err := l.Load(context.Background())
		assert.ErrorIs(t, err, errBackend)
		s := l.State().Get()
		assert.Equal(t, LoadFailedMessage, s.Error)
		assert.Len(t, s.Products, 3)
	})
}

func TestProductList_Delete(t *testing.T) {
	t.Parallel()

	t.Run("declined confirmation issues no call", func(t *testing.T) {
		repo := &mockProductRepository{}
		l := NewProductList(repo, "u1", ListState{Products: sampleProducts(), Loaded: true})
		var notified int
		l.State().Subscribe(func(ListState) { notified++ })

		deleted, err := l.Delete(context.Background(), "2", false)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Equal(t, 0, repo.deleteCalls)
		assert.Equal(t, 0, notified)
		assert.Equal(t, sampleProducts(), l.State().Get().Products)
	})

	t.Run("confirmed delete removes exactly one entry", func(t *testing.T) {
		repo := &mockProductRepository{DeleteFunc: func(ctx context.Context, userID, id string) error {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "2", id)
			return nil
		}}
		l := NewProductList(repo, "u1", ListState{Products: sampleProducts(), Loaded: true})

		deleted, err := l.Delete(context.Background(), "2", true)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, []string{"1", "3"}, ids(l.State().Get().Products))
	})

	t.Run("backend failure keeps the list", func(t *testing.T) {
		repo := &mockProductRepository{DeleteFunc: func(ctx context.Context, userID, id string) error { return errBackend }}
		l := NewProductList(repo, "u1", ListState{Products: sampleProducts(), Loaded: true})

		deleted, err := l.Delete(context.Background(), "2", true)
		assert.ErrorIs(t, err, errBackend)
		assert.False(t, deleted)
		s := l.State().Get()
		assert.Len(t, s.Products, 3)
		assert.Equal(t, DeleteFailedMessage, s.Error)
	})
}

func TestProductList_ApplySaved(t *testing.T) {
	t.Parallel()

	l := NewProductList(&mockProductRepository{}, "u1", ListState{Products: sampleProducts(), Loaded: true})
	l.ApplySaved(product("x", "u2", "Alheio", "", 1))
	assert.Len(t, l.State().Get().Products, 3, "another user's row is ignored")

	l.ApplySaved(product("9", "u1", "Novo", "", 1))
	assert.Equal(t, []string{"9", "1", "2", "3"}, ids(l.State().Get().Products))
}

func TestProductList_View(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		state       ListState
		term        string
		wantIDs     []string
		wantMessage string
	}{
		{name: "all", state: ListState{Products: sampleProducts()}, wantIDs: []string{"1", "2", "3"}},
		{name: "empty list", state: ListState{}, wantIDs: []string{}, wantMessage: EmptyListMessage},
		{name: "search without match", state: ListState{Products: sampleProducts()}, term: "mesa", wantIDs: []string{}, wantMessage: NoMatchMessage},
		{name: "error hides the empty message", state: ListState{Error: LoadFailedMessage}, wantIDs: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := NewProductList(&mockProductRepository{}, "u1", tt.state).View(tt.term)
			assert.Equal(t, tt.wantIDs, ids(v.Products))
			assert.Equal(t, tt.wantMessage, v.Message)
			assert.Equal(t, len(tt.state.Products), v.Total)
			assert.Equal(t, tt.state.Error, v.Error)
		})
	}
}
