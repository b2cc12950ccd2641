package providers

import (
	"github.com/samber/do/v2"

	"github.com/podfeedapp/podfeed-server/internal/catalog"
	"github.com/podfeedapp/podfeed-server/internal/config"
	"github.com/podfeedapp/podfeed-server/internal/feed"
	"github.com/podfeedapp/podfeed-server/internal/logger"
	"github.com/podfeedapp/podfeed-server/internal/ratelimit"
	"github.com/podfeedapp/podfeed-server/internal/service"
)

// ProvideGenerator provides the feed XML generator.
func ProvideGenerator(i do.Injector) (*feed.Generator, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return feed.NewGenerator(log.Logger), nil
}

// ProvideFeedService provides the feed service.
func ProvideFeedService(i do.Injector) (*service.FeedService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	resolver := do.MustInvoke[*catalog.Resolver](i)
	generator := do.MustInvoke[*feed.Generator](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewFeedService(resolver, generator, storeHandle.Store, cfg.Server.BaseURL, log.Logger), nil
}

// ProvideRateLimiter provides the per-client API rate limiter.
func ProvideRateLimiter(i do.Injector) (*ratelimit.KeyedRateLimiter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return ratelimit.New(cfg.API.RateLimitRPS, cfg.API.RateLimitBurst), nil
}
