package adapters

import (
	"context"
	"io"

	"storefront_backend/internal/feature/catalog/usecase"
	"storefront_backend/internal/platform/backend"
)

type imageStorage struct {
	objects backend.ObjectStore
}

var _ usecase.ImageStorage = (*imageStorage)(nil)

// NewImageStorage は上書き有効で商品画像をアップロードします。
func NewImageStorage(objects backend.ObjectStore) *imageStorage {
	return &imageStorage{objects: objects}
}

func (s *imageStorage) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error) {
	if err := s.objects.Upload(ctx, path, body, size, contentType, true); err != nil {
		return "", err
	}
	return s.objects.PublicURL(path), nil
}

func (s *imageStorage) Remove(ctx context.Context, path string) error {
	return s.objects.Remove(ctx, path)
}
