// Package handler はprofileフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/api"
	"storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/feature/profile/transport/http/dto"
	"storefront_backend/internal/feature/profile/usecase"
	"storefront_backend/internal/platform/backend"
	jwtmw "storefront_backend/internal/platform/jwt"
)

const maxPhotoSize = 5 << 20

// ProfileUsecase はナビバーとプロフィールモーダルのユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ProfileUsecase interface {
	Navbar(ctx context.Context, accessToken string) usecase.NavbarState
	Get(ctx context.Context, userID string) (*entity.Profile, error)
	Save(ctx context.Context, accessToken, userID string, in usecase.SaveInput) (*entity.Profile, error)
}

// ProfileHandler はプロフィール関連のHTTPリクエストを処理します。
type ProfileHandler struct {
	profiles ProfileUsecase
}

// NewProfileHandler はProfileHandlerの新しいインスタンスを生成します。
func NewProfileHandler(profiles ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Navbar は GET /api/navbar を処理します。認証ミドルウェアの外側で呼ばれます。
func (h *ProfileHandler) Navbar(c *gin.Context) {
	s := h.profiles.Navbar(c.Request.Context(), jwtmw.TokenFromRequest(c))
	if s.Redirect != "" {
		if strings.Contains(c.GetHeader("Accept"), "text/html") {
			c.Redirect(http.StatusFound, s.Redirect)
			return
		}
		c.JSON(http.StatusUnauthorized, api.UnauthorizedResponse{Error: "not authenticated", LoginURL: s.Redirect})
		return
	}
	c.JSON(http.StatusOK, dto.FromNavbar(s))
}

// Get は GET /api/profile を処理します。
func (h *ProfileHandler) Get(c *gin.Context) {
	user, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.UnauthorizedResponse{Error: "not authenticated", LoginURL: jwtmw.LoginPath})
		return
	}
	p, err := h.profiles.Get(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Warn("profile fetch failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: backend.Message(err)})
		return
	}
	c.JSON(http.StatusOK, dto.FromProfile(*p))
}

// Update は PUT /api/profile を処理します（multipart、写真は "foto"）。
func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.UnauthorizedResponse{Error: "not authenticated", LoginURL: jwtmw.LoginPath})
		return
	}

	var form dto.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("profile form binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	in := usecase.SaveInput{Nome: form.Nome, Sexo: form.Sexo, Pais: form.Pais, Estado: form.Estado}
	fh, err := c.FormFile("foto")
	switch {
	case err == nil:
		if fh.Size > maxPhotoSize {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: fmt.Sprintf("photo larger than %d MB", maxPhotoSize>>20)})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid photo upload"})
			return
		}
		defer f.Close()
		in.Photo = &usecase.PhotoUpload{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Size: fh.Size, Body: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid photo upload"})
		return
	}

	merged, err := h.profiles.Save(c.Request.Context(), jwtmw.AccessTokenFrom(c), user.ID, in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSexo):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrSaveInFlight):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, backend.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, api.UnauthorizedResponse{Error: err.Error(), LoginURL: jwtmw.LoginPath})
		default:
			slog.Warn("profile save failed", "error", err, "user_id", user.ID)
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: backend.Message(err)})
		}
		return
	}
	slog.Info("profile saved", "user_id", user.ID)
	c.JSON(http.StatusOK, dto.FromProfile(*merged))
}
