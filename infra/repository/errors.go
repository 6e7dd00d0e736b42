package repository

import (
	"errors"

	"github.com/amirasaad/banksystem/pkg/domain"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM and SQLite errors to domain errors.
// It walks the error chain and returns the original error when nothing maps.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		case errors.Is(currentErr, gorm.ErrForeignKeyViolated):
			return domain.ErrInvalidReference
		}

		var sqliteErr sqlite3.Error
		if errors.As(currentErr, &sqliteErr) {
			switch sqliteErr.ExtendedCode {
			case sqlite3.ErrConstraintForeignKey:
				return domain.ErrInvalidReference
			case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
				return domain.ErrAlreadyExists
			}
		}

		currentErr = errors.Unwrap(currentErr)
	}

	return err
}

// WrapError runs a GORM operation and maps its error.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&row).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
