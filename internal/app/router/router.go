package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront_backend/internal/app/config"
	"storefront_backend/internal/app/di"
	"storefront_backend/internal/platform/http/handler"
	jwtmw "storefront_backend/internal/platform/jwt"
	"storefront_backend/internal/shared/ratelimiter"
)

func NewRouter(cfg config.Config, h *di.Handlers, checks ...handler.Check) *gin.Engine {
	r := gin.Default()

	// ブラウザからCookie付きで呼ばれるためオリジンを明示する
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(checks...))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		limited := ratelimiter.Middleware(h.AuthLimiter)
		// ログイン（アクセストークンCookie発行）
		authGroup.POST("/login", limited, h.Auth.Login)
		// 新規ユーザー登録 + プロフィール作成
		authGroup.POST("/signup", limited, h.Auth.Signup)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	// ナビバーは自分でセッションを確認し、未ログインならリダイレクトを返す
	api.GET("/navbar", h.Profile.Navbar)

	// 認証必須のルート
	protected := api.Group("")
	protected.Use(jwtmw.AuthRequired(h.Identity))
	{
		protected.GET("/auth/me", h.Auth.Me)

		protected.GET("/profile", h.Profile.Get)
		protected.PUT("/profile", h.Profile.Update)

		protected.GET("/products", h.Products.List)
		protected.POST("/products", h.Products.Create)
		protected.GET("/products/:id", h.Products.Detail)
		protected.PUT("/products/:id", h.Products.Update)
		protected.DELETE("/products/:id", h.Products.Delete)
		protected.GET("/products/:id/share", h.Share.Share)
	}

	return r
}
