package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/platform/backend"
	"storefront_backend/internal/platform/money"
	"storefront_backend/internal/platform/state"
)

// EditorPhase は商品エディタのライフサイクルです。
type EditorPhase string

const (
	PhaseIdle       EditorPhase = "idle"
	PhaseSubmitting EditorPhase = "submitting"
	PhaseClosed     EditorPhase = "closed"
)

// ProductForm は編集可能な項目を保持します。
type ProductForm struct {
	Nome         string
	Descricao    string
	Preco        float64
	PriceSet     bool
	PriceDisplay string
}

// ImageUpload は商品画像を置き換えるために選ばれたファイルです。
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// EditorState は呼び出し側から購読できます。
type EditorState struct {
	Phase    EditorPhase
	Original *entity.Product
	Form     ProductForm
	Error    string
	Saved    *entity.Product
}

// EditorDeps はProductEditorの依存先です。
type EditorDeps struct {
	Repo     ProductRepository
	Images   ImageStorage
	Sessions SessionSource
	Now      func() time.Time
}

// ProductEditor は商品を新規作成 (originalなし) または編集します。
type ProductEditor struct {
	state   *state.Container[EditorState]
	deps    EditorDeps
	onSaved func(entity.Product)
}

// NewProductEditor はエディタを開きます。onSavedは保存後の行を受け取り、nilでも構いません。
func NewProductEditor(deps EditorDeps, original *entity.Product, onSaved func(entity.Product)) *ProductEditor {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := EditorState{Phase: PhaseIdle, Original: original}
	if original != nil {
		s.Form = ProductForm{
			Nome:         original.Nome,
			Descricao:    original.Descricao,
			Preco:        original.Preco,
			PriceSet:     true,
			PriceDisplay: money.FormatDecimal(original.Preco),
		}
	}
	return &ProductEditor{state: state.NewContainer(s), deps: deps, onSaved: onSaved}
}

// State は変更を購読できるようコンテナを公開します。
func (e *ProductEditor) State() *state.Container[EditorState] { return e.state }

// SetFields は名前と説明を置き換えます。
func (e *ProductEditor) SetFields(nome, descricao string) {
	e.state.Update(func(s *EditorState) {
		s.Form.Nome = nome
		s.Form.Descricao = descricao
	})
}

// SetPriceInput はマスク入力の価格を読み取り "1.234,50" 形式で再表示します。
// 数字を含まない入力は価格をクリアします。
func (e *ProductEditor) SetPriceInput(raw string) error {
	v, ok, err := money.ParseMasked(raw)
	if err != nil {
		return err
	}
	e.state.Update(func(s *EditorState) {
		s.Form.Preco = v
		s.Form.PriceSet = ok
		s.Form.PriceDisplay = ""
		if ok {
			s.Form.PriceDisplay = money.FormatDecimal(v)
		}
	})
	return nil
}

// Cancel は保存中でなければエディタを閉じます。
func (e *ProductEditor) Cancel() error {
	var err error
	e.state.Update(func(s *EditorState) {
		if s.Phase == PhaseSubmitting {
			err = ErrSaveInFlight
			return
		}
		s.Phase = PhaseClosed
	})
	return err
}

// Submit はフォームを保存します。imageがnilなら現在の画像を維持します。
func (e *ProductEditor) Submit(ctx context.Context, accessToken string, image *ImageUpload) (*entity.Product, error) {
	var (
		busy bool
		snap EditorState
	)
	e.state.Update(func(s *EditorState) {
		if s.Phase == PhaseSubmitting {
			busy = true
			return
		}
		s.Phase = PhaseSubmitting
		s.Error = ""
		snap = *s
	})
	if busy {
		return nil, ErrSaveInFlight
	}

	saved, err := e.save(ctx, accessToken, snap, image)
	if err != nil {
		e.state.Update(func(s *EditorState) {
			s.Phase = PhaseIdle
			s.Error = backend.Message(err)
		})
		return nil, err
	}

	if e.onSaved != nil {
		e.onSaved(*saved)
	}
	e.state.Update(func(s *EditorState) {
		s.Phase = PhaseClosed
		s.Saved = saved
	})
	return saved, nil
}

func (e *ProductEditor) save(ctx context.Context, accessToken string, s EditorState, image *ImageUpload) (*entity.Product, error) {
	nome := strings.TrimSpace(s.Form.Nome)
	if nome == "" {
		return nil, ErrNameRequired
	}
	if !s.Form.PriceSet {
		return nil, ErrPriceRequired
	}

	session, err := e.deps.Sessions.GetSession(ctx, accessToken)
	if err != nil || session == nil {
		if err != nil && !errors.Is(err, backend.ErrNotAuthenticated) {
			slog.Warn("session lookup failed", "error", err)
		}
		return nil, backend.ErrNotAuthenticated
	}
	userID := session.User.ID

	var imageURL string
	if s.Original != nil {
		imageURL = s.Original.Imagem
	}

	if image != nil {
		if s.Original != nil && s.Original.HasImage() {
			old := ProductImagePath(userID, lastSegment(s.Original.Imagem))
			if err := e.deps.Images.Remove(ctx, old); err != nil {
				slog.Warn("old product image removal failed", "error", err, "path", old)
			}
		}
		p := NewProductImagePath(userID, e.deps.Now(), image.Filename)
		url, err := e.deps.Images.Upload(ctx, p, image.Body, image.Size, image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		imageURL = url
	}

	p := &entity.Product{
		Nome:      nome,
		Descricao: s.Form.Descricao,
		Preco:     money.Round(s.Form.Preco),
		Imagem:    imageURL,
		UserID:    userID,
	}
	if s.Original == nil {
		return e.deps.Repo.Create(ctx, p)
	}
	p.ID = s.Original.ID
	p.CreatedAt = s.Original.CreatedAt
	return e.deps.Repo.Update(ctx, p)
}

// ProductImagePath は商品画像ファイルのオブジェクトパスです。
func ProductImagePath(userID, filename string) string {
	return "produtos/" + userID + "/" + filename
}

// NewProductImagePath は現在時刻 (ミリ秒) で新しいアップロードを命名します。
func NewProductImagePath(userID string, now time.Time, filename string) string {
	return ProductImagePath(userID, fmt.Sprintf("%d.%s", now.UnixMilli(), fileExt(filename)))
}

func fileExt(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		return "bin"
	}
	return ext
}

func lastSegment(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}
