package repository

import (
	"context"

	"github.com/amirasaad/banksystem/pkg/dto"
)

// OwnerWriter persists owner rows.
type OwnerWriter interface {
	// UpsertOwner inserts a new owner when in.ID is zero and returns the generated ID,
	// otherwise it updates the row with in.ID and returns that ID.
	UpsertOwner(ctx context.Context, in dto.OwnerUpsert) (int64, error)
}

// AccountWriter persists bank account rows.
type AccountWriter interface {
	// UpsertAccount inserts a new account when in.ID is zero and returns the generated ID,
	// otherwise it updates the row with in.ID and returns that ID.
	UpsertAccount(ctx context.Context, in dto.AccountUpsert) (int64, error)
}

// Gateway is the write side entities persist themselves through.
type Gateway interface {
	OwnerWriter
	AccountWriter
}

// Reader exposes the query side of the store.
type Reader interface {
	// AllOwners returns every owner row in insertion order.
	AllOwners(ctx context.Context) ([]dto.OwnerRead, error)
	// Owner returns a single owner row or domain.ErrNotFound.
	Owner(ctx context.Context, id int64) (*dto.OwnerRead, error)
	// AccountFor returns the first account of an owner or domain.ErrNotFound.
	AccountFor(ctx context.Context, ownerID int64) (*dto.AccountRead, error)
	// BalanceFor returns the balance of the owner's account, or 0 when it has none.
	BalanceFor(ctx context.Context, ownerID int64) (float64, error)
	// TotalBalance returns the sum of all balances, or 0 when there are no accounts.
	TotalBalance(ctx context.Context) (float64, error)
}

// Store is the storage gateway: writes, reads, an explicit transactional scope
// and the connection lifecycle.
type Store interface {
	Gateway
	Reader

	// Transaction runs fn inside a single database transaction. Every write made
	// through the Gateway handed to fn is committed together or rolled back
	// together when fn returns an error.
	Transaction(ctx context.Context, fn func(tx Gateway) error) error

	// Close releases the connection. No further operations are valid afterward.
	Close() error
}
