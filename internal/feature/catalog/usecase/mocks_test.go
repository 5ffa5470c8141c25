package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/platform/backend"
)

// mockProductRepository is a func-field mock of ProductRepository.
type mockProductRepository struct {
	mu sync.Mutex

	ListByUserFunc func(ctx context.Context, userID string) ([]entity.Product, error)
	FindByIDFunc   func(ctx context.Context, userID, id string) (*entity.Product, error)
	CreateFunc     func(ctx context.Context, p *entity.Product) (*entity.Product, error)
	UpdateFunc     func(ctx context.Context, p *entity.Product) (*entity.Product, error)
	DeleteFunc     func(ctx context.Context, userID, id string) error

	listCalls   int
	deleteCalls int
}

func (m *mockProductRepository) ListByUser(ctx context.Context, userID string) ([]entity.Product, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID, id)
	}
	return nil, ErrProductNotFound
}

func (m *mockProductRepository) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	saved := *p
	saved.ID = "new-id"
	return &saved, nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	saved := *p
	return &saved, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	m.deleteCalls++
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

type uploadCall struct {
	Path        string
	ContentType string
	Body        string
}

// mockImageStorage records uploads and removals in call order.
type mockImageStorage struct {
	UploadErr error
	RemoveErr error

	calls   []string
	uploads []uploadCall
}

func (m *mockImageStorage) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error) {
	m.calls = append(m.calls, "upload "+path)
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	b, _ := io.ReadAll(body)
	m.uploads = append(m.uploads, uploadCall{Path: path, ContentType: contentType, Body: string(b)})
	return "https://cdn.test/box/" + path, nil
}

func (m *mockImageStorage) Remove(ctx context.Context, path string) error {
	m.calls = append(m.calls, "remove "+path)
	return m.RemoveErr
}

// mockSessions returns a session for userID, or ErrNotAuthenticated when empty.
type mockSessions struct {
	userID string
}

func (m mockSessions) GetSession(ctx context.Context, accessToken string) (*backend.Session, error) {
	if m.userID == "" || accessToken == "" {
		return nil, backend.ErrNotAuthenticated
	}
	return &backend.Session{AccessToken: accessToken, User: backend.Identity{ID: m.userID, Email: m.userID + "@example.com"}}, nil
}

var errBackend = errors.New("connection reset")

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func product(id, userID, nome, descricao string, preco float64) entity.Product {
	return entity.Product{ID: id, UserID: userID, Nome: nome, Descricao: descricao, Preco: preco}
}
