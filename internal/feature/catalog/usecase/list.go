package usecase

import (
	"context"
	"log/slog"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/platform/state"
)

const (
	LoadFailedMessage   = "failed to load products, please try again"
	DeleteFailedMessage = "failed to delete product, please try again"
	EmptyListMessage    = "no products registered"
	NoMatchMessage      = "no products found"
)

// ListState は1ユーザー分の商品一覧です。
type ListState struct {
	Products []entity.Product `json:"products"`
	Loaded   bool             `json:"loaded"`
	Loading  bool             `json:"-"`
	Error    string           `json:"error,omitempty"`
}

// ListView は検索語に対して一覧が描画する内容です。
type ListView struct {
	Products []entity.Product
	Total    int
	Message  string
	Error    string
}

// ProductList は1ユーザー分の一覧状態を保持します。
type ProductList struct {
	state  *state.Container[ListState]
	repo   ProductRepository
	userID string
}

// NewProductList はinitial (通常は保存済みスナップショット) から開始します。
func NewProductList(repo ProductRepository, userID string, initial ListState) *ProductList {
	return &ProductList{
		state:  state.NewContainer(initial),
		repo:   repo,
		userID: userID,
	}
}

// State は変更を購読できるようコンテナを公開します。
func (l *ProductList) State() *state.Container[ListState] { return l.state }

// Load はユーザーの商品を取得します。失敗時は汎用メッセージを設定し、
// それまでの商品は保持します。
func (l *ProductList) Load(ctx context.Context) error {
	l.state.Update(func(s *ListState) {
		s.Loading = true
		s.Error = ""
	})

	products, err := l.repo.ListByUser(ctx, l.userID)
	if err != nil {
		slog.Warn("product list load failed", "error", err, "user_id", l.userID)
		l.state.Update(func(s *ListState) {
			s.Loading = false
			s.Error = LoadFailedMessage
		})
		return err
	}

	owned := OwnedBy(products, l.userID)
	l.state.Update(func(s *ListState) {
		s.Products = owned
		s.Loaded = true
		s.Loading = false
	})
	return nil
}

// ApplySaved は保存済みの商品を再取得なしで一覧にマージします。
func (l *ProductList) ApplySaved(p entity.Product) {
	if p.UserID != l.userID {
		return
	}
	l.state.Update(func(s *ListState) {
		s.Products = MergeSaved(s.Products, p)
	})
}

// Delete は確認後にidを削除します。確認されなければ状態も変えず、
// バックエンドも呼びません。
func (l *ProductList) Delete(ctx context.Context, id string, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	if err := l.repo.Delete(ctx, l.userID, id); err != nil {
		slog.Warn("product delete failed", "error", err, "user_id", l.userID, "product_id", id)
		l.Fail(DeleteFailedMessage)
		return false, err
	}
	l.Remove(id)
	return true, nil
}

// Remove はバックエンドでの削除後に保持中の商品からidを外します。
func (l *ProductList) Remove(id string) {
	l.state.Update(func(s *ListState) {
		s.Products = RemoveByID(s.Products, id)
		s.Error = ""
	})
}

// Fail はmsgを設定し、保持中の商品はそのまま残します。
func (l *ProductList) Fail(msg string) {
	l.state.Update(func(s *ListState) { s.Error = msg })
}

// View は現在の商品をtermで絞り込みます。
func (l *ProductList) View(term string) ListView {
	s := l.state.Get()
	filtered := FilterProducts(s.Products, term)
	v := ListView{Products: filtered, Total: len(s.Products), Error: s.Error}
	if len(filtered) == 0 && s.Error == "" {
		if term != "" {
			v.Message = NoMatchMessage
		} else {
			v.Message = EmptyListMessage
		}
	}
	return v
}
