// Package initializer builds the process-wide dependencies from configuration.
package initializer

import (
	"fmt"

	"github.com/amirasaad/banksystem/infra"
	"github.com/amirasaad/banksystem/pkg/app"
	"github.com/amirasaad/banksystem/pkg/config"
	"github.com/google/uuid"
)

// InitializeDependencies sets up logging and opens the store. Every log record
// of the process carries the same run_id.
func InitializeDependencies(cfg *config.App) (deps *app.Deps, err error) {
	logger := SetupLogger(cfg.Log).With("run_id", uuid.NewString())

	store, err := infra.OpenStore(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to open store", "db_path", cfg.DB.Path, "error", err)
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	logger.Debug("Store opened", "db_path", cfg.DB.Path)

	return &app.Deps{
		Store:  store,
		Logger: logger,
	}, nil
}
