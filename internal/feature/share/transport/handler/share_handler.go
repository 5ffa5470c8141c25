// Package handler は共有操作をHTTPで公開します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/api"
	"storefront_backend/internal/feature/catalog/domain/entity"
	catalogusecase "storefront_backend/internal/feature/catalog/usecase"
	"storefront_backend/internal/feature/share/usecase"
	jwtmw "storefront_backend/internal/platform/jwt"
)

// ProductFinder は現在のユーザーの商品を読み込みます。
type ProductFinder interface {
	FindByID(ctx context.Context, userID, id string) (*entity.Product, error)
}

// ShareResponse は GET /api/products/:id/share のレスポンスボディです。
type ShareResponse struct {
	Message   string `json:"message"`
	DetailURL string `json:"detail_url"`
	URL       string `json:"url"`
}

// ShareHandler は商品の共有リンクを組み立てます。
type ShareHandler struct {
	products ProductFinder
	baseURL  string
}

// NewShareHandler はbaseURLを使って詳細ページの正規URLを組み立てます。
func NewShareHandler(products ProductFinder, baseURL string) *ShareHandler {
	return &ShareHandler{products: products, baseURL: baseURL}
}

// Share は GET /api/products/:id/share?from=list|detail を処理します。
func (h *ShareHandler) Share(c *gin.Context) {
	user, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.UnauthorizedResponse{Error: "not authenticated", LoginURL: jwtmw.LoginPath})
		return
	}
	id, err := api.BindIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid product id"})
		return
	}
	origin, err := usecase.ParseOrigin(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.products.FindByID(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, catalogusecase.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Warn("share lookup failed", "error", err, "user_id", user.ID, "product_id", id)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to load product"})
		return
	}

	link := usecase.Compose(*p, origin, h.baseURL)
	c.JSON(http.StatusOK, ShareResponse{Message: link.Message, DetailURL: link.DetailURL, URL: link.URL})
}
