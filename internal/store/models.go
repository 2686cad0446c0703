package store

import (
	"time"

	"gorm.io/gorm"
)

// SQLiteLedgerEntry is one committed transfer
type SQLiteLedgerEntry struct {
	gorm.Model
	EntryID      string    `gorm:"uniqueIndex"`
	Direction    string    `gorm:"index"` // SENT or RECEIVED
	Amount       uint64
	Counterparty string    `gorm:"index"`
	Timestamp    time.Time `gorm:"index"`
	Signature    string
}

// SQLiteBalance holds the running balance in whole USDC
type SQLiteBalance struct {
	gorm.Model
	Name   string `gorm:"uniqueIndex"`
	Amount uint64
}

// SQLiteContact is one whitelisted name. Names are not unique.
type SQLiteContact struct {
	gorm.Model
	Name string
}
