// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storefront_backend/internal/app/config"
	catalogentity "storefront_backend/internal/feature/catalog/domain/entity"
	profileentity "storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/platform/backend"
	"storefront_backend/internal/platform/backend/authn"
	"storefront_backend/internal/platform/backend/hosted"
	"storefront_backend/internal/platform/backend/objectstore/cloudinarystore"
	"storefront_backend/internal/platform/backend/objectstore/miniostore"
	"storefront_backend/internal/platform/backend/rowstore/gormstore"
	"storefront_backend/internal/platform/backend/rowstore/mongostore"
	platformdb "storefront_backend/internal/platform/db"
	platformhttp "storefront_backend/internal/platform/http"
	healthhandler "storefront_backend/internal/platform/http/handler"
	jwtmw "storefront_backend/internal/platform/jwt"
	platformredis "storefront_backend/internal/platform/redis"
)

// Models are the tables migrated in local mode.
func Models() []any {
	return []any{
		&authn.User{},
		&authn.SessionModel{},
		&catalogentity.Product{},
		&profileentity.Profile{},
	}
}

// Infra holds the backend client and the connections behind it.
type Infra struct {
	Client *backend.Client
	Redis  *redis.Client
	DB     *gorm.DB
	// Auth is the local auth provider; nil in hosted mode.
	Auth   *authn.Provider
	Checks []healthhandler.Check

	closers []func()
}

// Close releases every connection opened by NewInfra, last opened first.
func (in *Infra) Close() {
	for i := len(in.closers) - 1; i >= 0; i-- {
		in.closers[i]()
	}
}

// NewInfra connects redis (optional) and builds the backend client for cfg.Backend.
func NewInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	in := &Infra{}

	if rcfg := platformredis.LoadConfig(); rcfg.Enabled() {
		rdb, err := platformredis.NewRedisClient(ctx, rcfg)
		if err != nil {
			slog.Warn("redis unavailable, running with in-process view state and SQL sessions", "error", err)
		} else {
			in.Redis = rdb
			in.closers = append(in.closers, func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			})
			in.Checks = append(in.Checks, healthhandler.Check{Name: "redis", Ping: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}})
		}
	}

	var err error
	switch cfg.Backend {
	case config.BackendHosted:
		hcfg := hosted.LoadConfig()
		in.Client = hosted.New(hcfg, platformhttp.NewHTTPClient(hcfg.Timeout))
	case config.BackendLocal:
		err = in.buildLocal(ctx, cfg)
	default:
		err = fmt.Errorf("unsupported backend mode %q", cfg.Backend)
	}
	if err != nil {
		in.Close()
		return nil, err
	}
	return in, nil
}

func (in *Infra) buildLocal(ctx context.Context, cfg config.Config) error {
	db, err := platformdb.OpenDB(Models()...)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	in.DB = db
	if sqlDB, err := db.DB(); err == nil {
		in.closers = append(in.closers, func() { _ = sqlDB.Close() })
		in.Checks = append(in.Checks, healthhandler.Check{Name: "database", Ping: sqlDB.PingContext})
	}

	var rows backend.RowStore
	switch cfg.RowStore {
	case config.RowStoreMongo:
		client, store, err := mongostore.Connect(ctx, mongostore.LoadConfig())
		if err != nil {
			return err
		}
		in.closers = append(in.closers, func() { _ = client.Disconnect(context.Background()) })
		in.Checks = append(in.Checks, healthhandler.Check{Name: "mongo", Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		}})
		rows = store
	default:
		rows = gormstore.New(db)
	}

	var objects backend.ObjectStore
	switch cfg.ObjectStore {
	case config.ObjectStoreCloudinary:
		objects, err = cloudinarystore.New(os.Getenv(cloudinarystore.EnvKeyURL))
	default:
		objects, err = miniostore.New(ctx, miniostore.LoadConfig())
	}
	if err != nil {
		return fmt.Errorf("object store: %w", err)
	}

	in.Auth = authn.NewProvider(
		authn.NewUserGorm(db),
		NewSessionRepository(in.Redis, db),
		jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration),
	)
	in.Client = &backend.Client{Auth: in.Auth, Rows: rows, Objects: objects}
	slog.Info("local backend ready", "row_store", cfg.RowStore, "object_store", cfg.ObjectStore, "redis", in.Redis != nil)
	return nil
}
