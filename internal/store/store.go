// Package store keeps the ledger and the contact whitelist, either in sqlite through gorm
// or in memory when no database path is configured.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrInsufficientFunds is returned when a debit exceeds the current balance
var ErrInsufficientFunds = errors.New("insufficient funds")

// balanceKey names the single balance row of the wallet
const balanceKey = "wallet"

// Open opens (creating if needed) the sqlite database at path and migrates the schema.
// ":memory:" gives a private in-memory database.
func Open(path string) (*gorm.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&SQLiteLedgerEntry{},
		&SQLiteBalance{},
		&SQLiteContact{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
