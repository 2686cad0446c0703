package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/voice-wallet/internal/model"
	"gorm.io/gorm"
)

// SQLiteLedger is the balance and append-only entry log kept in sqlite
type SQLiteLedger struct {
	db *gorm.DB
}

// NewSQLiteLedger wraps db. An empty ledger starts with the opening balance.
func NewSQLiteLedger(ctx context.Context, db *gorm.DB, opening uint64) (*SQLiteLedger, error) {
	row := SQLiteBalance{Name: balanceKey, Amount: opening}
	err := db.WithContext(ctx).Where(SQLiteBalance{Name: balanceKey}).FirstOrCreate(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to initialize balance: %w", err)
	}
	return &SQLiteLedger{db: db}, nil
}

// Append records an entry without touching the balance. Sends commit through Transfer.
func (l *SQLiteLedger) Append(ctx context.Context, entry model.LedgerEntry) error {
	row := toRow(entry)
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	return nil
}

// Latest returns the newest entry, or nil when the ledger is empty
func (l *SQLiteLedger) Latest(ctx context.Context) (*model.LedgerEntry, error) {
	var row SQLiteLedgerEntry
	err := l.db.WithContext(ctx).Order("timestamp desc").Order("id desc").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest entry: %w", err)
	}
	entry := fromRow(row)
	return &entry, nil
}

func (l *SQLiteLedger) CurrentBalance(ctx context.Context) (uint64, error) {
	var row SQLiteBalance
	if err := l.db.WithContext(ctx).Where("name = ?", balanceKey).First(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return row.Amount, nil
}

// Debit lowers the balance without recording an entry. Sends commit through Transfer.
func (l *SQLiteLedger) Debit(ctx context.Context, amount uint64) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return debit(tx, amount)
	})
}

// Transfer debits entry.Amount and appends the entry in one database transaction
func (l *SQLiteLedger) Transfer(ctx context.Context, entry model.LedgerEntry) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debit(tx, entry.Amount); err != nil {
			return err
		}
		row := toRow(entry)
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to append entry: %w", err)
		}
		return nil
	})
}

// SeedBalance replaces the balance while no entry has been recorded yet.
// It reports whether the balance was replaced.
func (l *SQLiteLedger) SeedBalance(ctx context.Context, amount uint64) (bool, error) {
	seeded := false
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&SQLiteLedgerEntry{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count entries: %w", err)
		}
		if count > 0 {
			return nil
		}
		err := tx.Model(&SQLiteBalance{}).Where("name = ?", balanceKey).Update("amount", amount).Error
		if err != nil {
			return fmt.Errorf("failed to seed balance: %w", err)
		}
		seeded = true
		return nil
	})
	return seeded, err
}

// Entries returns every entry, oldest first
func (l *SQLiteLedger) Entries(ctx context.Context) ([]model.LedgerEntry, error) {
	var rows []SQLiteLedgerEntry
	if err := l.db.WithContext(ctx).Order("timestamp asc").Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	entries := make([]model.LedgerEntry, len(rows))
	for i, row := range rows {
		entries[i] = fromRow(row)
	}
	return entries, nil
}

func debit(tx *gorm.DB, amount uint64) error {
	var row SQLiteBalance
	if err := tx.Where("name = ?", balanceKey).First(&row).Error; err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}
	if amount > row.Amount {
		return fmt.Errorf("debit %d over balance %d: %w", amount, row.Amount, ErrInsufficientFunds)
	}
	if err := tx.Model(&row).Update("amount", row.Amount-amount).Error; err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	return nil
}

func toRow(entry model.LedgerEntry) SQLiteLedgerEntry {
	return SQLiteLedgerEntry{
		EntryID:      withID(entry).ID,
		Direction:    string(entry.Direction),
		Amount:       entry.Amount,
		Counterparty: entry.Counterparty,
		Timestamp:    entry.Timestamp,
		Signature:    entry.Signature,
	}
}

func fromRow(row SQLiteLedgerEntry) model.LedgerEntry {
	return model.LedgerEntry{
		ID:           row.EntryID,
		Direction:    model.Direction(row.Direction),
		Amount:       row.Amount,
		Counterparty: row.Counterparty,
		Timestamp:    row.Timestamp,
		Signature:    row.Signature,
	}
}
