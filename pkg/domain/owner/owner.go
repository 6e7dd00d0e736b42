package owner

import (
	"context"
	"fmt"

	"github.com/amirasaad/banksystem/pkg/domain"
	"github.com/amirasaad/banksystem/pkg/dto"
	"github.com/amirasaad/banksystem/pkg/repository"
)

// Owner is a person holding at most one bank account.
// Name and phone are not unique; two owners may share both.
type Owner struct {
	domain.Entity
	Name    string
	Address string
	Phone   string
}

var _ domain.Persistable = (*Owner)(nil)

// New creates an owner that has not been persisted yet.
func New(name, address, phone string) *Owner {
	return &Owner{
		Name:    name,
		Address: address,
		Phone:   phone,
	}
}

// NewFromData creates an Owner from a stored row (used for DB hydration).
func NewFromData(row dto.OwnerRead) *Owner {
	return &Owner{
		Entity:  domain.Entity{ID: row.ID},
		Name:    row.Name,
		Address: row.Address,
		Phone:   row.Phone,
	}
}

// Save inserts the owner and adopts the generated identity, or updates the
// row keyed on the identity it already has.
func (o *Owner) Save(ctx context.Context, g repository.Gateway) error {
	id, err := g.UpsertOwner(ctx, dto.OwnerUpsert{
		ID:      o.ID,
		Name:    o.Name,
		Address: o.Address,
		Phone:   o.Phone,
	})
	if err != nil {
		return err
	}
	if !o.Persisted() {
		o.ID = id
	}
	return nil
}

func (o *Owner) String() string {
	return fmt.Sprintf("Owner %s at %s (%s)", o.Name, o.Address, o.Phone)
}
