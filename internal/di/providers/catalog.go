package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/podfeedapp/podfeed-server/internal/catalog"
	"github.com/podfeedapp/podfeed-server/internal/config"
	"github.com/podfeedapp/podfeed-server/internal/logger"
)

// CatalogHandle wraps the catalog with its watcher context for
// lifecycle management.
type CatalogHandle struct {
	*catalog.Catalog
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	return nil
}

// ProvideCatalog provides the show catalog, optionally hot-reloading
// it on file changes.
func ProvideCatalog(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cat, err := catalog.Load(cfg.Catalog.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	handle := &CatalogHandle{Catalog: cat}
	if cfg.Catalog.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		if err := cat.Watch(ctx); err != nil {
			cancel()
			// Non-fatal: the catalog still serves its initial load.
			log.Warn("Catalog watcher unavailable", "error", err)
		} else {
			handle.cancel = cancel
			log.Info("Catalog watcher started", "path", cfg.Catalog.Path)
		}
	}

	return handle, nil
}

// ProvideResolver provides the show resolver.
func ProvideResolver(i do.Injector) (*catalog.Resolver, error) {
	handle := do.MustInvoke[*CatalogHandle](i)
	return catalog.NewResolver(handle.Catalog, handle.Aliases()), nil
}
