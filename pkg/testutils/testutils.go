package testutils

import (
	"context"
	"io"
	"log/slog"

	"github.com/amirasaad/banksystem/pkg/dto"
	"github.com/amirasaad/banksystem/pkg/repository"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a testify mock of repository.Gateway.
type MockGateway struct {
	mock.Mock
}

var _ repository.Gateway = (*MockGateway)(nil)

func (m *MockGateway) UpsertOwner(ctx context.Context, in dto.OwnerUpsert) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGateway) UpsertAccount(ctx context.Context, in dto.AccountUpsert) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
