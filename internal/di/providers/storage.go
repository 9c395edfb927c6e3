package providers

import (
	"github.com/samber/do/v2"

	"github.com/secondbrain/brain-client/internal/authstore"
	"github.com/secondbrain/brain-client/internal/config"
	"github.com/secondbrain/brain-client/internal/logger"
)

// AuthStoreHandle wraps the token store with shutdown capability.
type AuthStoreHandle struct {
	*authstore.Store
}

// Shutdown implements do.Shutdownable.
func (h *AuthStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideAuthStore opens the configured token backend.
func ProvideAuthStore(i do.Injector) (*AuthStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	backend, err := authstore.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}

	log.Debug("Token store opened", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)

	return &AuthStoreHandle{Store: authstore.New(backend, log.Logger)}, nil
}
