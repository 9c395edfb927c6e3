package authstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/secondbrain/brain-client/internal/config"
)

// Open creates the backend named by cfg.
func Open(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		return NewMemoryBackend(), nil
	case config.StorageBadger:
		if err := os.MkdirAll(cfg.Path, 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		return OpenBadger(cfg.Path)
	case config.StorageSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
