// Package di provides dependency injection configuration for the podfeed server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/podfeedapp/podfeed-server/internal/catalog"
	"github.com/podfeedapp/podfeed-server/internal/config"
	"github.com/podfeedapp/podfeed-server/internal/di/providers"
	"github.com/podfeedapp/podfeed-server/internal/feed"
	"github.com/podfeedapp/podfeed-server/internal/logger"
	"github.com/podfeedapp/podfeed-server/internal/ratelimit"
	"github.com/podfeedapp/podfeed-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Data layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideResolver)

	// Feed layer
	do.Provide(injector, providers.ProvideGenerator)
	do.Provide(injector, providers.ProvideFeedService)
	do.Provide(injector, providers.ProvideRateLimiter)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns once the server is
// running. This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.CatalogHandle](injector)
	_ = do.MustInvoke[*catalog.Resolver](injector)
	_ = do.MustInvoke[*feed.Generator](injector)
	_ = do.MustInvoke[*service.FeedService](injector)
	_ = do.MustInvoke[*ratelimit.KeyedRateLimiter](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	return nil
}
