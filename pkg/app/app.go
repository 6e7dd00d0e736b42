// Package app assembles the services of the bank system from its dependencies.
package app

import (
	"log/slog"

	"github.com/amirasaad/banksystem/pkg/config"
	"github.com/amirasaad/banksystem/pkg/repository"
	"github.com/amirasaad/banksystem/pkg/service/account"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Store  repository.Store
	Logger *slog.Logger
}

// App holds the services built for one process.
type App struct {
	Deps           *Deps
	Config         *config.App
	AccountService *account.Service
}

// New builds the services on top of deps.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:           deps,
		Config:         cfg,
		AccountService: account.NewService(deps.Store, deps.Logger),
	}
}

// Close releases the store.
func (a *App) Close() error {
	return a.Deps.Store.Close()
}
