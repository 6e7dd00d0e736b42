package infra

import (
	"fmt"

	infrarepo "github.com/amirasaad/banksystem/infra/repository"
	"github.com/amirasaad/banksystem/pkg/config"
)

// OpenStore connects to the configured database, makes sure the schema exists
// and returns the storage gateway. The connection is closed again if any step
// fails.
func OpenStore(cnf *config.DB, appEnv string) (*infrarepo.Store, error) {
	db, err := NewDBConnection(cnf, appEnv)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return infrarepo.NewStore(db), nil
}

// Open opens the store at path with foreign keys enforced and SQL logging off.
func Open(path string) (*infrarepo.Store, error) {
	return OpenStore(&config.DB{Path: path, ForeignKeys: true}, "production")
}
