// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/api"
	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/feature/catalog/transport/http/dto"
	"storefront_backend/internal/feature/catalog/usecase"
	"storefront_backend/internal/platform/backend"
	jwtmw "storefront_backend/internal/platform/jwt"
	"storefront_backend/internal/platform/money"
)

// maxImageSize は商品画像アップロードの上限です。
const maxImageSize = 5 << 20

// CatalogUsecase は商品一覧・編集・詳細のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type CatalogUsecase interface {
	List(ctx context.Context, userID, search string, refresh bool) (usecase.ListView, error)
	Save(ctx context.Context, accessToken, userID, productID string, in usecase.SaveInput) (*entity.Product, error)
	Delete(ctx context.Context, userID, id string, confirmed bool) (bool, error)
	Detail(ctx context.Context, userID, id string) usecase.DetailState
}

// ProductHandler は商品関連のHTTPリクエストを処理します。
type ProductHandler struct {
	catalog CatalogUsecase
}

// NewProductHandler はProductHandlerの新しいインスタンスを生成します。
func NewProductHandler(catalog CatalogUsecase) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func currentUser(c *gin.Context) (backend.Identity, bool) {
	id, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.UnauthorizedResponse{Error: "not authenticated", LoginURL: jwtmw.LoginPath})
	}
	return id, ok
}

// List は GET /api/products?search=&refresh= を処理します。
func (h *ProductHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	refresh, err := api.BindBoolQuery(c, "refresh")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid refresh parameter"})
		return
	}
	search := c.Query("search")

	view, err := h.catalog.List(c.Request.Context(), user.ID, search, refresh)
	if err != nil {
		// view.Error には汎用メッセージが入っている
		c.JSON(http.StatusBadGateway, dto.FromListView(view, search))
		return
	}
	c.JSON(http.StatusOK, dto.FromListView(view, search))
}

// Create は POST /api/products を処理します。
func (h *ProductHandler) Create(c *gin.Context) {
	h.save(c, "")
}

// Update は PUT /api/products/:id を処理します。
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := api.BindIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid product id"})
		return
	}
	h.save(c, id)
}

func (h *ProductHandler) save(c *gin.Context, productID string) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var form dto.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("product form binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	in := usecase.SaveInput{Nome: form.Nome, Descricao: form.Descricao}
	if raw, exists := c.GetPostForm("preco"); exists {
		in.PriceInput = &raw
	} else if productID == "" {
		empty := ""
		in.PriceInput = &empty
	}

	image, closeImage, err := imageFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	defer closeImage()
	in.Image = image

	saved, err := h.catalog.Save(c.Request.Context(), jwtmw.AccessTokenFrom(c), user.ID, productID, in)
	if err != nil {
		h.saveError(c, err, user.ID, productID)
		return
	}

	status := http.StatusOK
	if productID == "" {
		status = http.StatusCreated
	}
	slog.Info("product saved", "user_id", user.ID, "product_id", saved.ID)
	c.JSON(status, dto.FromProduct(*saved))
}

func (h *ProductHandler) saveError(c *gin.Context, err error, userID, productID string) {
	switch {
	case errors.Is(err, usecase.ErrNameRequired), errors.Is(err, usecase.ErrPriceRequired), errors.Is(err, money.ErrAmountTooLarge):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrSaveInFlight):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, backend.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, api.UnauthorizedResponse{Error: err.Error(), LoginURL: jwtmw.LoginPath})
	default:
		slog.Warn("product save failed", "error", err, "user_id", userID, "product_id", productID)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: backend.Message(err)})
	}
}

// imageFromForm は任意の "imagem" ファイルを返します。返すclose関数はnilになりません。
func imageFromForm(c *gin.Context) (*usecase.ImageUpload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile("imagem")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, errors.New("invalid image upload")
	}
	if fh.Size > maxImageSize {
		return nil, noop, fmt.Errorf("image larger than %d MB", maxImageSize>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, errors.New("invalid image upload")
	}
	return toUpload(fh, f), func() { _ = f.Close() }, nil
}

func toUpload(fh *multipart.FileHeader, f multipart.File) *usecase.ImageUpload {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &usecase.ImageUpload{Filename: fh.Filename, ContentType: ct, Size: fh.Size, Body: f}
}

// Delete は DELETE /api/products/:id?confirm=true を処理します。
func (h *ProductHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := api.BindIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid product id"})
		return
	}
	confirmed, err := api.BindBoolQuery(c, "confirm")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid confirm parameter"})
		return
	}

	deleted, err := h.catalog.Delete(c.Request.Context(), user.ID, id, confirmed)
	if err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: usecase.DeleteFailedMessage})
		return
	}
	if !deleted {
		c.JSON(http.StatusOK, dto.DeleteResponse{Deleted: false, Message: "deletion not confirmed"})
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Deleted: true})
}

// Detail は GET /api/products/:id を処理します。
func (h *ProductHandler) Detail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := api.BindIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid product id"})
		return
	}

	s := h.catalog.Detail(c.Request.Context(), user.ID, id)
	status := http.StatusOK
	switch s.Status {
	case usecase.DetailNotFound:
		status = http.StatusNotFound
	case usecase.DetailError:
		status = http.StatusBadGateway
	}
	c.JSON(status, dto.FromDetail(s))
}
