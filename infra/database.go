package infra

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amirasaad/banksystem/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const memoryPath = ":memory:"

// NewDBConnection opens the SQLite file at cnf.Path, creating it and its
// parent directory when absent. The pool is pinned to a single connection
// that never expires, so an in-memory store lives as long as the handle.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Path == "" {
		return nil, errors.New("DATABASE_PATH is not set")
	}

	if cnf.Path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(cnf.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Warn
	}

	connection, err := gorm.Open(sqlite.Open(dsn(cnf)), &gorm.Config{
		Logger:                 sqlLogger(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", cnf.Path, err)
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return connection, nil
}

// sqlLogger writes gorm traces to stderr so they never mix with command output.
func sqlLogger(level logger.LogLevel) logger.Interface {
	return logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  true,
	})
}

// dsn appends the go-sqlite3 foreign key switch to the configured path.
func dsn(cnf *config.DB) string {
	if !cnf.ForeignKeys {
		return cnf.Path
	}
	sep := "?"
	if strings.Contains(cnf.Path, "?") {
		sep = "&"
	}
	return cnf.Path + sep + "_foreign_keys=on"
}
