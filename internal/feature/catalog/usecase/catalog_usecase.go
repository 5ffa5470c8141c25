package usecase

import (
	"context"
	"log/slog"
	"time"

	"storefront_backend/internal/feature/catalog/domain/entity"
)

// ViewStateStore はユーザーごとの一覧スナップショットと保存ロックを保持します。
type ViewStateStore interface {
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, v any) error
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), ok bool, err error)
}

// SaveInput はエディタからの1回分の送信内容です。
type SaveInput struct {
	Nome      string
	Descricao string
	// PriceInput はマスク入力された価格。nilなら現在の価格を維持します。
	PriceInput *string
	Image      *ImageUpload
}

const defaultSaveLockTTL = 30 * time.Second

// catalogUsecase は商品一覧・編集・詳細を束ねます。
type catalogUsecase struct {
	repo     ProductRepository
	images   ImageStorage
	sessions SessionSource
	views    ViewStateStore
	lockTTL  time.Duration
	now      func() time.Time
}

// NewCatalogUsecase はcatalogUsecaseの新しいインスタンスを生成します。
func NewCatalogUsecase(repo ProductRepository, images ImageStorage, sessions SessionSource, views ViewStateStore) *catalogUsecase {
	return &catalogUsecase{
		repo:     repo,
		images:   images,
		sessions: sessions,
		views:    views,
		lockTTL:  defaultSaveLockTTL,
		now:      time.Now,
	}
}

func listKey(userID string) string { return "products:" + userID }
func saveKey(userID string) string { return "products-save:" + userID }

// openList はユーザーのスナップショットを復元し、以降の変更をすべて保存します。
func (u *catalogUsecase) openList(ctx context.Context, userID string) *ProductList {
	var snap ListState
	if _, err := u.views.Load(ctx, listKey(userID), &snap); err != nil {
		slog.Warn("list snapshot load failed", "error", err, "user_id", userID)
		snap = ListState{}
	}
	l := NewProductList(u.repo, userID, snap)
	l.State().Subscribe(func(s ListState) {
		if s.Loading {
			return
		}
		if err := u.views.Save(ctx, listKey(userID), s); err != nil {
			slog.Warn("list snapshot save failed", "error", err, "user_id", userID)
		}
	})
	return l
}

// List は検索語で絞り込んだユーザーの商品を返します。
// バックエンドへの問い合わせは、読み込み済みスナップショットがないかrefresh指定時のみです。
func (u *catalogUsecase) List(ctx context.Context, userID, search string, refresh bool) (ListView, error) {
	l := u.openList(ctx, userID)
	if refresh || !l.State().Get().Loaded {
		if err := l.Load(ctx); err != nil {
			return l.View(search), err
		}
	}
	return l.View(search), nil
}

// Save は商品を作成 (productID == "") または更新し、一覧スナップショットに反映します。
func (u *catalogUsecase) Save(ctx context.Context, accessToken, userID, productID string, in SaveInput) (*entity.Product, error) {
	unlock, ok, err := u.views.TryLock(ctx, saveKey(userID), u.lockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSaveInFlight
	}
	defer unlock()

	var original *entity.Product
	if productID != "" {
		original, err = u.repo.FindByID(ctx, userID, productID)
		if err != nil {
			return nil, err
		}
	}

	// 書き込み後にスナップショットを開き直し、その間に完了した削除を失わないようにする
	merge := func(p entity.Product) { u.openList(ctx, userID).ApplySaved(p) }
	editor := NewProductEditor(EditorDeps{
		Repo:     u.repo,
		Images:   u.images,
		Sessions: u.sessions,
		Now:      u.now,
	}, original, merge)

	editor.SetFields(in.Nome, in.Descricao)
	if in.PriceInput != nil {
		if err := editor.SetPriceInput(*in.PriceInput); err != nil {
			return nil, err
		}
	}
	return editor.Submit(ctx, accessToken, in.Image)
}

// Delete は確認済みの商品を削除します。確認されなければ何もしません。
// スナップショットはバックエンドの応答後に読むため、
// その間にマージされた保存結果は残ります。
func (u *catalogUsecase) Delete(ctx context.Context, userID, id string, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		slog.Warn("product delete failed", "error", err, "user_id", userID, "product_id", id)
		u.openList(ctx, userID).Fail(DeleteFailedMessage)
		return false, err
	}
	u.openList(ctx, userID).Remove(id)
	return true, nil
}

// Detail はユーザーの商品を1件読み込みます。
func (u *catalogUsecase) Detail(ctx context.Context, userID, id string) DetailState {
	return NewProductDetail(u.repo).Load(ctx, userID, id)
}
