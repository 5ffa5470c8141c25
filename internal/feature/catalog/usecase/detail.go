package usecase

import (
	"context"
	"errors"
	"log/slog"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/platform/backend"
	"storefront_backend/internal/platform/state"
)

// DetailStatus は詳細読み込みの結果です。
type DetailStatus string

const (
	DetailLoading  DetailStatus = "loading"
	DetailFound    DetailStatus = "found"
	DetailNotFound DetailStatus = "not_found"
	DetailError    DetailStatus = "error"
)

// ListPath は商品を表示できないときに案内する一覧へのリンクです。
const ListPath = "/dashboard/produto"

// DetailState は商品詳細画面の状態です。
type DetailState struct {
	Status   DetailStatus
	Product  *entity.Product
	Error    string
	BackLink string
}

// ProductDetail は現在のユーザーの商品を1件読み込みます。
type ProductDetail struct {
	state *state.Container[DetailState]
	repo  ProductRepository
}

// NewProductDetail はProductDetailの新しいインスタンスを生成します。
func NewProductDetail(repo ProductRepository) *ProductDetail {
	return &ProductDetail{
		state: state.NewContainer(DetailState{Status: DetailLoading}),
		repo:  repo,
	}
}

// State は変更を購読できるようコンテナを公開します。
func (d *ProductDetail) State() *state.Container[DetailState] { return d.state }

// Load は商品を解決し、最終状態を返します。
func (d *ProductDetail) Load(ctx context.Context, userID, id string) DetailState {
	d.state.Set(DetailState{Status: DetailLoading})

	p, err := d.repo.FindByID(ctx, userID, id)
	switch {
	case err == nil:
		return d.state.Set(DetailState{Status: DetailFound, Product: p})
	case errors.Is(err, ErrProductNotFound):
		return d.state.Set(DetailState{Status: DetailNotFound, Error: ErrProductNotFound.Error(), BackLink: ListPath})
	default:
		slog.Warn("product detail load failed", "error", err, "user_id", userID, "product_id", id)
		return d.state.Set(DetailState{Status: DetailError, Error: backend.Message(err), BackLink: ListPath})
	}
}
