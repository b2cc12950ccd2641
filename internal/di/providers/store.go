package providers

import (
	"github.com/samber/do/v2"

	"github.com/podfeedapp/podfeed-server/internal/config"
	"github.com/podfeedapp/podfeed-server/internal/logger"
	"github.com/podfeedapp/podfeed-server/internal/store/sqlite"
)

// StoreHandle wraps the redirect store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the redirect database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := sqlite.Open(cfg.Redirect.DBPath, cfg.Redirect.RetryBudget, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Redirect store initialized", "path", cfg.Redirect.DBPath)

	return &StoreHandle{Store: st}, nil
}
