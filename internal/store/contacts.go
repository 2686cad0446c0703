package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// SQLiteContactBook is the recipient whitelist kept in sqlite
type SQLiteContactBook struct {
	db *gorm.DB
}

// NewSQLiteContactBook wraps db and seeds an empty whitelist with names
func NewSQLiteContactBook(ctx context.Context, db *gorm.DB, seed []string) (*SQLiteContactBook, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&SQLiteContact{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	if count == 0 && len(seed) > 0 {
		rows := make([]SQLiteContact, len(seed))
		for i, name := range seed {
			rows[i] = SQLiteContact{Name: name}
		}
		if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to seed contacts: %w", err)
		}
	}
	return &SQLiteContactBook{db: db}, nil
}

func (b *SQLiteContactBook) Add(ctx context.Context, name string) error {
	if err := b.db.WithContext(ctx).Create(&SQLiteContact{Name: name}).Error; err != nil {
		return fmt.Errorf("failed to add contact: %w", err)
	}
	return nil
}

// All returns the names in insertion order, duplicates included
func (b *SQLiteContactBook) All(ctx context.Context) ([]string, error) {
	var names []string
	err := b.db.WithContext(ctx).Model(&SQLiteContact{}).Order("id asc").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return names, nil
}
