// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/api"
	"storefront_backend/internal/feature/auth/usecase"
	"storefront_backend/internal/platform/backend"
	jwtmw "storefront_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	SignIn(ctx context.Context, email, password string) (*backend.Session, error)
	SignUp(ctx context.Context, nome, email, password string) (*backend.Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth         AuthUsecase
	secureCookie bool
	now          func() time.Time
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// secureCookie はアクセストークンCookieにSecure属性を付けるかを指定します。
func NewAuthHandler(auth AuthUsecase, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie, now: time.Now}
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, s *backend.Session) {
	maxAge := int(s.ExpiresAt.Sub(h.now()).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.AccessTokenCookie, s.AccessToken, maxAge, "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.AccessTokenCookie, "", -1, "/", "", h.secureCookie, true)
}

// rejectStatus はバックエンドが返した4xxはそのまま使い、それ以外は502にします。
func rejectStatus(err error) int {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

// Login は POST /api/auth/login を処理します。
// - 空のメール・パスワードはバックエンド呼び出し前に400を返却
// - 認証失敗時はバックエンドのメッセージで4xxを返却
// - 成功時はアクセストークンCookieを設定し200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login request binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailRequired) || errors.Is(err, usecase.ErrPasswordRequired) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(rejectStatus(err), api.ErrorResponse{Error: backend.Message(err)})
		return
	}

	h.setTokenCookie(c, session)
	slog.Info("user login successful", "user_id", session.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt.Unix(),
		User:        api.IdentityResponse{ID: session.User.ID, Email: session.User.Email},
	})
}

// Signup は POST /api/auth/signup を処理します。
// アカウント登録またはプロフィール作成のどちらかが失敗した場合はそのメッセージを返します。
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	identity, err := h.auth.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailRequired), errors.Is(err, usecase.ErrPasswordRequired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrProfileCreate):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: backend.Message(err)})
		default:
			slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(rejectStatus(err), api.ErrorResponse{Error: backend.Message(err)})
		}
		return
	}
	slog.Info("user signup successful", "user_id", identity.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.IdentityResponse{ID: identity.ID, Email: identity.Email})
}

// Logout は POST /api/auth/logout を処理します。Cookieは常に削除します。
func (h *AuthHandler) Logout(c *gin.Context) {
	token := jwtmw.TokenFromRequest(c)
	if token != "" {
		if err := h.auth.SignOut(c.Request.Context(), token); err != nil && !errors.Is(err, backend.ErrNotAuthenticated) {
			slog.Warn("sign out failed", "error", err, "remote_addr", c.ClientIP())
		}
	}
	h.clearTokenCookie(c)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "signed out"})
}

// Me は GET /api/auth/me を処理します。AuthRequired の後ろで呼ばれます。
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.UnauthorizedResponse{Error: "not authenticated", LoginURL: jwtmw.LoginPath})
		return
	}
	c.JSON(http.StatusOK, api.IdentityResponse{ID: identity.ID, Email: identity.Email})
}
