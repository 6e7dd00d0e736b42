package domain

import (
	"context"

	"github.com/amirasaad/banksystem/pkg/repository"
)

// NoID is the identity of an entity that has not been persisted yet.
const NoID int64 = 0

// Entity is the identity shared by every persisted record.
// It deliberately carries no Save method: a type embedding Entity only
// satisfies Persistable once it implements its own insert/update logic.
type Entity struct {
	ID int64
}

// Persisted reports whether the store has assigned an identity.
func (e Entity) Persisted() bool {
	return e.ID != NoID
}

// Persistable is implemented by entities that know how to upsert themselves.
//
// Save inserts the entity and adopts the generated identity when it has none,
// otherwise it updates the row keyed on the existing identity. The change is
// committed before Save returns.
type Persistable interface {
	Save(ctx context.Context, g repository.Gateway) error
}
