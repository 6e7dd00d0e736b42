// Package account provides the operations callers use to register owners,
// open accounts and move money, with structured logging around each one.
//
// Deposits and withdrawals are write-through: the new balance is persisted
// before the call returns. Opening an account for a new owner is two writes;
// OpenAccount performs them independently and OpenAccountTx performs them in
// one transaction.
package account

import (
	"context"
	"log/slog"

	"github.com/amirasaad/banksystem/pkg/domain"
	"github.com/amirasaad/banksystem/pkg/domain/account"
	"github.com/amirasaad/banksystem/pkg/domain/owner"
	"github.com/amirasaad/banksystem/pkg/dto"
	"github.com/amirasaad/banksystem/pkg/repository"
)

// Service wires account operations to a store.
type Service struct {
	store  repository.Store
	logger *slog.Logger
}

// NewService creates a Service. A nil logger falls back to slog.Default.
func NewService(store repository.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// RegisterOwner persists o, assigning its identity on first save.
func (s *Service) RegisterOwner(ctx context.Context, o *owner.Owner) error {
	logger := s.logger.With("owner", o.Name)
	if err := o.Save(ctx, s.store); err != nil {
		logger.Error("RegisterOwner failed: store error", "error", err)
		return err
	}
	logger.Info("Owner saved", "ownerID", o.ID)
	return nil
}

// OpenAccount saves the owner when it has no identity yet, then the account.
// The two writes are independent: if the second fails the owner stays stored
// without an account.
func (s *Service) OpenAccount(ctx context.Context, a *account.Account) error {
	logger := s.logger.With("balance", a.Balance)
	if a.Owner != nil && !a.Owner.Persisted() {
		if err := s.RegisterOwner(ctx, a.Owner); err != nil {
			return err
		}
	}
	if err := a.Save(ctx, s.store); err != nil {
		logger.Error("OpenAccount failed: account save error", "ownerID", a.OwnerID(), "error", err)
		return err
	}
	logger.Info("Account opened", "accountID", a.ID, "ownerID", a.OwnerID())
	return nil
}

// OpenAccountTx is OpenAccount with both writes in one transaction. When the
// transaction rolls back, identities assigned during it are cleared again so
// memory matches storage.
func (s *Service) OpenAccountTx(ctx context.Context, a *account.Account) error {
	if a.Owner == nil {
		return account.ErrOwnerNotPersisted
	}
	logger := s.logger.With("owner", a.Owner.Name, "balance", a.Balance)
	ownerID, accountID := a.Owner.ID, a.ID

	err := s.store.Transaction(ctx, func(tx repository.Gateway) error {
		if !a.Owner.Persisted() {
			if err := a.Owner.Save(ctx, tx); err != nil {
				return err
			}
		}
		return a.Save(ctx, tx)
	})
	if err != nil {
		a.Owner.ID, a.ID = ownerID, accountID
		logger.Error("OpenAccountTx failed: rolled back", "error", err)
		return err
	}
	logger.Info("Account opened", "accountID", a.ID, "ownerID", a.OwnerID())
	return nil
}

// Deposit adds amount to a and persists the new balance.
// A rejected deposit is reported through the receipt, not the error.
func (s *Service) Deposit(ctx context.Context, a *account.Account, amount float64) (account.Receipt, error) {
	logger := s.logger.With("accountID", a.ID, "amount", amount)
	r, err := a.Deposit(ctx, s.store, amount)
	if err != nil {
		logger.Error("Deposit failed: store error", "error", err)
		return r, err
	}
	s.logReceipt(logger, "Deposit", r)
	return r, nil
}

// Withdraw subtracts amount from a and persists the new balance.
// A rejected withdrawal is reported through the receipt, not the error.
func (s *Service) Withdraw(ctx context.Context, a *account.Account, amount float64) (account.Receipt, error) {
	logger := s.logger.With("accountID", a.ID, "amount", amount)
	r, err := a.Withdraw(ctx, s.store, amount)
	if err != nil {
		logger.Error("Withdraw failed: store error", "error", err)
		return r, err
	}
	s.logReceipt(logger, "Withdraw", r)
	return r, nil
}

func (s *Service) logReceipt(logger *slog.Logger, op string, r account.Receipt) {
	if !r.Accepted() {
		logger.Warn(op+" rejected", "reason", r.Reason, "balance", r.Balance)
		return
	}
	logger.Info(op+" completed", "balance", r.Balance)
}

// LoadAccount rehydrates an owner and its account from the store.
// It returns domain.ErrNotFound when either is missing.
func (s *Service) LoadAccount(ctx context.Context, ownerID int64) (*account.Account, error) {
	row, err := s.store.Owner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	accRow, err := s.store.AccountFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return account.NewFromData(*accRow, owner.NewFromData(*row)), nil
}

// LoadOwner rehydrates an owner from the store.
func (s *Service) LoadOwner(ctx context.Context, ownerID int64) (*owner.Owner, error) {
	row, err := s.store.Owner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return owner.NewFromData(*row), nil
}

// Owners lists every stored owner.
func (s *Service) Owners(ctx context.Context) ([]dto.OwnerRead, error) {
	return s.store.AllOwners(ctx)
}

// BalanceFor returns the stored balance of an owner's account, 0 when it has none.
func (s *Service) BalanceFor(ctx context.Context, ownerID int64) (float64, error) {
	if ownerID == domain.NoID {
		return 0, nil
	}
	return s.store.BalanceFor(ctx, ownerID)
}

// TotalBalance returns the sum of all stored balances.
func (s *Service) TotalBalance(ctx context.Context) (float64, error) {
	return s.store.TotalBalance(ctx)
}
