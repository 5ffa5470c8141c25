package di

import (
	"storefront_backend/internal/app/config"
	authhandler "storefront_backend/internal/feature/auth/transport/handler"
	authusecase "storefront_backend/internal/feature/auth/usecase"
	catalogadapters "storefront_backend/internal/feature/catalog/adapters"
	cataloghandler "storefront_backend/internal/feature/catalog/transport/handler"
	catalogusecase "storefront_backend/internal/feature/catalog/usecase"
	profileadapters "storefront_backend/internal/feature/profile/adapters"
	profilehandler "storefront_backend/internal/feature/profile/transport/handler"
	profileusecase "storefront_backend/internal/feature/profile/usecase"
	sharehandler "storefront_backend/internal/feature/share/transport/handler"
	"storefront_backend/internal/platform/backend"
	"storefront_backend/internal/platform/cache"
	"storefront_backend/internal/shared/ratelimiter"
)

// Handlers are the HTTP handlers mounted by the router.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Products *cataloghandler.ProductHandler
	Share    *sharehandler.ShareHandler
	Profile  *profilehandler.ProfileHandler

	// Identity resolves access tokens for the route guard.
	Identity    backend.AuthClient
	AuthLimiter ratelimiter.Limiter
}

// NewHandlers wires every feature onto client. views holds list snapshots and save locks.
func NewHandlers(cfg config.Config, client *backend.Client, views cache.Store) *Handlers {
	products := catalogadapters.NewProductBackend(client.Rows)
	profiles := profileadapters.NewProfileBackend(client.Rows)

	catalogUC := catalogusecase.NewCatalogUsecase(products, catalogadapters.NewImageStorage(client.Objects), client.Auth, views)
	profileUC := profileusecase.NewProfileUsecase(profiles, profileadapters.NewPhotoStorage(client.Objects), client.Auth, client.Auth, views)
	authUC := authusecase.NewAuthUsecase(client.Auth, profileUC)

	return &Handlers{
		Auth:        authhandler.NewAuthHandler(authUC, cfg.SecureCookie),
		Products:    cataloghandler.NewProductHandler(catalogUC),
		Share:       sharehandler.NewShareHandler(products, cfg.PublicBaseURL),
		Profile:     profilehandler.NewProfileHandler(profileUC),
		Identity:    client.Auth,
		AuthLimiter: ratelimiter.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow),
	}
}
