package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"storefront_backend/internal/app/config"
	"storefront_backend/internal/app/di"
	"storefront_backend/internal/app/router"
	"storefront_backend/internal/platform/backend/authn"
	"storefront_backend/internal/platform/cache"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[ERROR] invalid configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	ctx := context.Background()
	infra, err := di.NewInfra(ctx, cfg)
	if err != nil {
		log.Fatalf("[ERROR] backend setup failed: %v", err)
	}
	defer infra.Close()

	// Redisが無ければプロセス内ストアにフォールバック
	views := cache.NewStore(infra.Redis, cfg.ViewStateTTL, "viewstate")
	handlers := di.NewHandlers(cfg, infra.Client, views)
	engine := router.NewRouter(cfg, handlers, infra.Checks...)

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	if infra.Auth != nil && cfg.SessionPurgeInterval > 0 {
		go purgeSessions(purgeCtx, infra.Auth, cfg.SessionPurgeInterval)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "backend", cfg.Backend, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[ERROR] server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
	slog.Info("server stopped gracefully")
}

// purgeSessions deletes expired local sessions every interval until ctx is done.
func purgeSessions(ctx context.Context, auth *authn.Provider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := auth.PurgeExpired(ctx)
			if err != nil {
				slog.Warn("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions purged", "count", n)
			}
		}
	}
}
