package account_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/amirasaad/banksystem/infra"
	"github.com/amirasaad/banksystem/pkg/domain"
	accountdomain "github.com/amirasaad/banksystem/pkg/domain/account"
	"github.com/amirasaad/banksystem/pkg/domain/owner"
	"github.com/amirasaad/banksystem/pkg/dto"
	"github.com/amirasaad/banksystem/pkg/repository"
	accountsvc "github.com/amirasaad/banksystem/pkg/service/account"
	"github.com/amirasaad/banksystem/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCrash = errors.New("crash between writes")

// failingAccounts lets owner writes through and fails every account write.
type failingAccounts struct {
	repository.Gateway
}

func (failingAccounts) UpsertAccount(context.Context, dto.AccountUpsert) (int64, error) {
	return 0, errCrash
}

type failingStore struct {
	repository.Store
}

func (f failingStore) UpsertAccount(ctx context.Context, in dto.AccountUpsert) (int64, error) {
	return failingAccounts{f.Store}.UpsertAccount(ctx, in)
}

func (f failingStore) Transaction(ctx context.Context, fn func(tx repository.Gateway) error) error {
	return f.Store.Transaction(ctx, func(tx repository.Gateway) error {
		return fn(failingAccounts{tx})
	})
}

func openStore(t *testing.T) repository.Store {
	t.Helper()
	store, err := infra.Open(filepath.Join(t.TempDir(), "bank.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestService_JohnDoeScenario(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := openStore(t)
	svc := accountsvc.NewService(store, testutils.DiscardLogger())

	acc := accountdomain.New(owner.New("John Doe", "123 Street", "1234567890"), 100.0)
	require.NoError(svc.OpenAccount(ctx, acc))
	require.True(acc.Owner.Persisted())
	require.True(acc.Persisted())

	r, err := svc.Deposit(ctx, acc, 50)
	require.NoError(err)
	assert.Equal(t, "Deposited 50. New balance: 150.0", r.String())

	r, err = svc.Withdraw(ctx, acc, 30)
	require.NoError(err)
	assert.Equal(t, "Withdrew 30. New balance: 120.0", r.String())

	r, err = svc.Withdraw(ctx, acc, 200)
	require.NoError(err)
	assert.False(t, r.Accepted())
	assert.Equal(t, accountdomain.MsgInsufficientFunds, r.String())
	assert.ErrorIs(t, r.Reason, accountdomain.ErrInsufficientFunds)

	balance, err := svc.BalanceFor(ctx, acc.Owner.ID)
	require.NoError(err)
	assert.InDelta(t, 120.0, balance, 1e-9)

	total, err := svc.TotalBalance(ctx)
	require.NoError(err)
	assert.InDelta(t, 120.0, total, 1e-9)

	owners, err := svc.Owners(ctx)
	require.NoError(err)
	require.Len(owners, 1)
	assert.Equal(t, "John Doe", owners[0].Name)
}

func TestService_FreshStoreTotalIsZero(t *testing.T) {
	svc := accountsvc.NewService(openStore(t), testutils.DiscardLogger())
	total, err := svc.TotalBalance(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestService_BalanceForUnsavedOwner(t *testing.T) {
	svc := accountsvc.NewService(openStore(t), nil)
	balance, err := svc.BalanceFor(context.Background(), domain.NoID)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestService_LoadAccount(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := openStore(t)
	svc := accountsvc.NewService(store, testutils.DiscardLogger())

	acc := accountdomain.New(owner.New("Jane", "1 Road", "555"), 40)
	require.NoError(svc.OpenAccount(ctx, acc))
	_, err := svc.Deposit(ctx, acc, 2.5)
	require.NoError(err)

	loaded, err := svc.LoadAccount(ctx, acc.Owner.ID)
	require.NoError(err)
	assert.Equal(t, acc.ID, loaded.ID)
	assert.Equal(t, acc.Owner.ID, loaded.Owner.ID)
	assert.Equal(t, "Jane", loaded.Owner.Name)
	assert.InDelta(t, 42.5, loaded.Balance, 1e-9)

	// the rehydrated account keeps writing to the same row
	_, err = svc.Withdraw(ctx, loaded, 2.5)
	require.NoError(err)
	total, err := svc.TotalBalance(ctx)
	require.NoError(err)
	assert.InDelta(t, 40.0, total, 1e-9)

	_, err = svc.LoadAccount(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_LoadAccount_OwnerWithoutAccount(t *testing.T) {
	ctx := context.Background()
	svc := accountsvc.NewService(openStore(t), testutils.DiscardLogger())

	o := owner.New("Solo", "", "")
	require.NoError(t, svc.RegisterOwner(ctx, o))

	loadedOwner, err := svc.LoadOwner(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solo", loadedOwner.Name)

	_, err = svc.LoadAccount(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Opening an account without a transaction is two independent writes; a crash
// between them leaves the owner stored without an account.
func TestService_OpenAccount_CrashBetweenWrites(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := openStore(t)
	svc := accountsvc.NewService(failingStore{store}, testutils.DiscardLogger())

	acc := accountdomain.New(owner.New("John Doe", "123 Street", "1234567890"), 100)
	err := svc.OpenAccount(ctx, acc)
	require.ErrorIs(err, errCrash)

	assert.True(t, acc.Owner.Persisted())
	assert.False(t, acc.Persisted())

	owners, err := store.AllOwners(ctx)
	require.NoError(err)
	require.Len(owners, 1)

	total, err := store.TotalBalance(ctx)
	require.NoError(err)
	assert.Zero(t, total)
}

func TestService_OpenAccountTx_RollsBack(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := openStore(t)
	svc := accountsvc.NewService(failingStore{store}, testutils.DiscardLogger())

	acc := accountdomain.New(owner.New("John Doe", "123 Street", "1234567890"), 100)
	err := svc.OpenAccountTx(ctx, acc)
	require.ErrorIs(err, errCrash)

	assert.Equal(t, domain.NoID, acc.Owner.ID)
	assert.Equal(t, domain.NoID, acc.ID)

	owners, err := store.AllOwners(ctx)
	require.NoError(err)
	assert.Empty(t, owners)
}

func TestService_OpenAccountTx_Commits(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := openStore(t)
	svc := accountsvc.NewService(store, testutils.DiscardLogger())

	acc := accountdomain.New(owner.New("John Doe", "123 Street", "1234567890"), 1000)
	require.NoError(svc.OpenAccountTx(ctx, acc))
	require.True(acc.Persisted())

	balance, err := store.BalanceFor(ctx, acc.Owner.ID)
	require.NoError(err)
	assert.InDelta(t, 1000.0, balance, 1e-9)
}

func TestService_OpenAccountTx_NilOwner(t *testing.T) {
	svc := accountsvc.NewService(openStore(t), testutils.DiscardLogger())
	err := svc.OpenAccountTx(context.Background(), accountdomain.New(nil, 0))
	assert.ErrorIs(t, err, accountdomain.ErrOwnerNotPersisted)
}

func TestService_OpenAccount_NilOwner(t *testing.T) {
	svc := accountsvc.NewService(openStore(t), testutils.DiscardLogger())
	err := svc.OpenAccount(context.Background(), accountdomain.New(nil, 0))
	assert.ErrorIs(t, err, accountdomain.ErrOwnerNotPersisted)
}

func TestService_DepositRejected(t *testing.T) {
	ctx := context.Background()
	svc := accountsvc.NewService(openStore(t), testutils.DiscardLogger())
	acc := accountdomain.New(owner.New("A", "B", "C"), 10)
	require.NoError(t, svc.OpenAccount(ctx, acc))

	r, err := svc.Deposit(ctx, acc, -5)
	require.NoError(t, err)
	assert.Equal(t, accountdomain.MsgInvalidDeposit, r.String())
	assert.InDelta(t, 10.0, acc.Balance, 1e-9)
}
