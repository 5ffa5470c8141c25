package usecase

import (
	"context"
	"io"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/platform/backend"
)

// ProductRepository は商品の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ProductRepository interface {
	// ListByUser は userID の商品を作成日時の降順で返します。
	ListByUser(ctx context.Context, userID string) ([]entity.Product, error)

	// FindByID は userID が所有する商品を取得します。存在しない場合は ErrProductNotFound。
	FindByID(ctx context.Context, userID, id string) (*entity.Product, error)

	// Create は新しい商品を保存し、保存後の行を返します。
	Create(ctx context.Context, p *entity.Product) (*entity.Product, error)

	// Update は p.ID の商品の編集可能フィールドを更新し、保存後の行を返します。
	Update(ctx context.Context, p *entity.Product) (*entity.Product, error)

	Delete(ctx context.Context, userID, id string) error
}

// ImageStorage は商品画像を保存し、公開URLを解決します。
type ImageStorage interface {
	// Upload はpathを上書きし、その公開URLを返します。
	Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
}

// SessionSource はアクセストークンに対応するセッションを返します。
type SessionSource interface {
	GetSession(ctx context.Context, accessToken string) (*backend.Session, error)
}
