package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/emilyynorton/NotreDameRMP/internal/cache"
	"github.com/emilyynorton/NotreDameRMP/internal/config"
	"github.com/emilyynorton/NotreDameRMP/internal/logger"
	"github.com/emilyynorton/NotreDameRMP/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideResultCache provides the in-memory result cache backed by the store.
func ProvideResultCache(i do.Injector) (*cache.ResultCache, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return cache.New(storeHandle.Store), nil
}
