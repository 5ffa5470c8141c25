package adapters

import (
	"context"
	"io"

	"storefront_backend/internal/feature/profile/usecase"
	"storefront_backend/internal/platform/backend"
)

type photoStorage struct {
	objects backend.ObjectStore
}

var _ usecase.PhotoStorage = (*photoStorage)(nil)

// NewPhotoStorage は上書き有効でプロフィール写真をアップロードします。
func NewPhotoStorage(objects backend.ObjectStore) *photoStorage {
	return &photoStorage{objects: objects}
}

func (s *photoStorage) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error) {
	if err := s.objects.Upload(ctx, path, body, size, contentType, true); err != nil {
		return "", err
	}
	return s.objects.PublicURL(path), nil
}
