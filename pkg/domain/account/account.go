package account

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amirasaad/banksystem/pkg/domain"
	"github.com/amirasaad/banksystem/pkg/domain/owner"
	"github.com/amirasaad/banksystem/pkg/dto"
	"github.com/amirasaad/banksystem/pkg/repository"
)

var (
	// ErrTransactionAmountMustBePositive is the reason a deposit or withdrawal of a non-positive amount is rejected.
	ErrTransactionAmountMustBePositive = errors.New("transaction amount must be positive")

	// ErrInsufficientFunds is the reason a withdrawal larger than the balance is rejected.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOwnerNotPersisted is returned when saving an account whose owner has no identity yet.
	ErrOwnerNotPersisted = errors.New("account owner has not been persisted")
)

// Rejection messages returned to callers. The insufficient-funds message also
// mentions an invalid amount; callers that need to tell the cases apart use
// Receipt.Reason instead.
const (
	MsgInvalidDeposit    = "Invalid deposit amount"
	MsgInvalidWithdraw   = "Invalid withdraw amount"
	MsgInsufficientFunds = "Invalid withdraw amount or insufficient funds"
)

// Account is a balance record held by exactly one Owner.
//
// Invariants:
//   - The owner must be persisted before the account can be saved.
//   - A withdrawal never leaves the balance negative; it is rejected instead.
//   - After Deposit or Withdraw returns, the stored balance equals Balance.
//
// An Account is not safe for concurrent use.
type Account struct {
	domain.Entity
	Owner   *owner.Owner
	Balance float64
}

var _ domain.Persistable = (*Account)(nil)

// New creates an unsaved account for o with an opening balance.
func New(o *owner.Owner, balance float64) *Account {
	return &Account{
		Owner:   o,
		Balance: balance,
	}
}

// NewFromData creates an Account from a stored row (used for DB hydration).
// The owner is expected to be the one referenced by row.OwnerID.
func NewFromData(row dto.AccountRead, o *owner.Owner) *Account {
	return &Account{
		Entity:  domain.Entity{ID: row.ID},
		Owner:   o,
		Balance: row.Balance,
	}
}

// OwnerID returns the foreign key written on save, or domain.NoID when the
// owner is missing or unsaved.
func (a *Account) OwnerID() int64 {
	if a.Owner == nil {
		return domain.NoID
	}
	return a.Owner.ID
}

// Save inserts the account and adopts the generated identity, or updates the
// row keyed on the identity it already has. It fails with ErrOwnerNotPersisted,
// without touching the store, while the owner has no identity.
func (a *Account) Save(ctx context.Context, g repository.Gateway) error {
	if a.Owner == nil || !a.Owner.Persisted() {
		return ErrOwnerNotPersisted
	}
	id, err := g.UpsertAccount(ctx, dto.AccountUpsert{
		ID:      a.ID,
		OwnerID: a.Owner.ID,
		Balance: a.Balance,
	})
	if err != nil {
		return err
	}
	if !a.Persisted() {
		a.ID = id
	}
	return nil
}

// Receipt is the outcome of a deposit or withdrawal. A rejected operation is
// not an error: Reason names why it was rejected and the balance is unchanged.
type Receipt struct {
	Message string
	Balance float64
	Reason  error
}

// Accepted reports whether the operation changed the balance.
func (r Receipt) Accepted() bool {
	return r.Reason == nil
}

func (r Receipt) String() string {
	return r.Message
}

// Deposit adds amount to the balance and persists it. Non-positive amounts are
// rejected with an unchanged balance. If persisting fails the previous balance
// is restored and the storage error is returned.
func (a *Account) Deposit(ctx context.Context, g repository.Gateway, amount float64) (Receipt, error) {
	if !(amount > 0) {
		return a.reject(MsgInvalidDeposit, ErrTransactionAmountMustBePositive), nil
	}
	if err := a.apply(ctx, g, a.Balance+amount); err != nil {
		return Receipt{}, err
	}
	return Receipt{
		Message: fmt.Sprintf("Deposited %s. New balance: %s", FormatAmount(amount), FormatBalance(a.Balance)),
		Balance: a.Balance,
	}, nil
}

// Withdraw subtracts amount from the balance and persists it. Amounts that are
// not positive or exceed the balance are rejected with an unchanged balance.
// If persisting fails the previous balance is restored and the storage error
// is returned.
func (a *Account) Withdraw(ctx context.Context, g repository.Gateway, amount float64) (Receipt, error) {
	if !(amount > 0) {
		return a.reject(MsgInvalidWithdraw, ErrTransactionAmountMustBePositive), nil
	}
	if amount > a.Balance {
		return a.reject(MsgInsufficientFunds, ErrInsufficientFunds), nil
	}
	if err := a.apply(ctx, g, a.Balance-amount); err != nil {
		return Receipt{}, err
	}
	return Receipt{
		Message: fmt.Sprintf("Withdrew %s. New balance: %s", FormatAmount(amount), FormatBalance(a.Balance)),
		Balance: a.Balance,
	}, nil
}

// apply writes through the new balance, rolling memory back on failure.
func (a *Account) apply(ctx context.Context, g repository.Gateway, balance float64) error {
	previous := a.Balance
	a.Balance = balance
	if err := a.Save(ctx, g); err != nil {
		a.Balance = previous
		return err
	}
	return nil
}

func (a *Account) reject(msg string, reason error) Receipt {
	return Receipt{Message: msg, Balance: a.Balance, Reason: reason}
}

func (a *Account) String() string {
	name := ""
	if a.Owner != nil {
		name = a.Owner.Name
	}
	return fmt.Sprintf("Account of %s with balance %s", name, FormatBalance(a.Balance))
}

// FormatAmount renders an amount in its shortest form: 50, 50.5.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatBalance renders a balance that always carries a fractional part: 150.0, 120.5.
func FormatBalance(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}
