package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/banksystem/pkg/domain"
	"github.com/amirasaad/banksystem/pkg/dto"
	"github.com/amirasaad/banksystem/pkg/repository"
	"gorm.io/gorm"
)

// Store is the gorm-backed storage gateway. Every write is committed before
// the call returns unless it runs inside Transaction.
type Store struct {
	db *gorm.DB
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps an open, migrated connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// UpsertOwner implements repository.OwnerWriter.
func (s *Store) UpsertOwner(ctx context.Context, in dto.OwnerUpsert) (int64, error) {
	if in.ID == domain.NoID {
		row := Owner{Name: in.Name, Address: in.Address, Phone: in.Phone}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return 0, MapGormErrorToDomain(err)
		}
		return row.ID, nil
	}
	err := s.update(ctx, &Owner{}, in.ID, map[string]any{
		"name":    in.Name,
		"address": in.Address,
		"phone":   in.Phone,
	})
	if err != nil {
		return 0, fmt.Errorf("update owner %d: %w", in.ID, err)
	}
	return in.ID, nil
}

// UpsertAccount implements repository.AccountWriter.
func (s *Store) UpsertAccount(ctx context.Context, in dto.AccountUpsert) (int64, error) {
	if in.ID == domain.NoID {
		row := BankAccount{OwnerID: in.OwnerID, Balance: in.Balance}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return 0, MapGormErrorToDomain(err)
		}
		return row.ID, nil
	}
	err := s.update(ctx, &BankAccount{}, in.ID, map[string]any{
		"owner_id": in.OwnerID,
		"balance":  in.Balance,
	})
	if err != nil {
		return 0, fmt.Errorf("update account %d: %w", in.ID, err)
	}
	return in.ID, nil
}

// update writes every column in values to the row with id. Zero values are
// written too. Updating a row that does not exist returns domain.ErrNotFound.
func (s *Store) update(ctx context.Context, model any, id int64, values map[string]any) error {
	result := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AllOwners implements repository.Reader.
func (s *Store) AllOwners(ctx context.Context) ([]dto.OwnerRead, error) {
	var rows []Owner
	err := WrapError(func() error {
		return s.db.WithContext(ctx).Order("id").Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	owners := make([]dto.OwnerRead, 0, len(rows))
	for _, r := range rows {
		owners = append(owners, mapOwnerToDTO(r))
	}
	return owners, nil
}

// Owner implements repository.Reader.
func (s *Store) Owner(ctx context.Context, id int64) (*dto.OwnerRead, error) {
	var row Owner
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	o := mapOwnerToDTO(row)
	return &o, nil
}

// AccountFor implements repository.Reader.
func (s *Store) AccountFor(ctx context.Context, ownerID int64) (*dto.AccountRead, error) {
	var row BankAccount
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Take(&row).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return &dto.AccountRead{ID: row.ID, OwnerID: row.OwnerID, Balance: row.Balance}, nil
}

// BalanceFor implements repository.Reader.
func (s *Store) BalanceFor(ctx context.Context, ownerID int64) (float64, error) {
	var row BankAccount
	err := s.db.WithContext(ctx).Select("balance").Where("owner_id = ?", ownerID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, MapGormErrorToDomain(err)
	}
	return row.Balance, nil
}

// TotalBalance implements repository.Reader.
func (s *Store) TotalBalance(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).
		Model(&BankAccount{}).
		Select("COALESCE(SUM(balance), 0.0)").
		Scan(&total).Error
	if err != nil {
		return 0, MapGormErrorToDomain(err)
	}
	return total, nil
}

// Transaction implements repository.Store.
func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Gateway) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Close implements repository.Store.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func mapOwnerToDTO(row Owner) dto.OwnerRead {
	return dto.OwnerRead{
		ID:      row.ID,
		Name:    row.Name,
		Address: row.Address,
		Phone:   row.Phone,
	}
}
