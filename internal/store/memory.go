package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/google/uuid"
)

// MemoryLedger is a process-lifetime ledger used when no database is configured
type MemoryLedger struct {
	mu      sync.RWMutex
	balance uint64
	entries []model.LedgerEntry
}

func NewMemoryLedger(opening uint64) *MemoryLedger {
	return &MemoryLedger{balance: opening}
}

// Append records an entry without touching the balance. Sends commit through Transfer.
func (l *MemoryLedger) Append(_ context.Context, entry model.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, withID(entry))
	return nil
}

func (l *MemoryLedger) Latest(context.Context) (*model.LedgerEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return nil, nil
	}
	last := l.entries[len(l.entries)-1]
	return &last, nil
}

func (l *MemoryLedger) CurrentBalance(context.Context) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balance, nil
}

// Debit lowers the balance without recording an entry. Sends commit through Transfer.
func (l *MemoryLedger) Debit(_ context.Context, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debit(amount)
}

func (l *MemoryLedger) Transfer(_ context.Context, entry model.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.debit(entry.Amount); err != nil {
		return err
	}
	l.entries = append(l.entries, withID(entry))
	return nil
}

func (l *MemoryLedger) SeedBalance(_ context.Context, amount uint64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) > 0 {
		return false, nil
	}
	l.balance = amount
	return true, nil
}

func (l *MemoryLedger) Entries(context.Context) ([]model.LedgerEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries), nil
}

func (l *MemoryLedger) debit(amount uint64) error {
	if amount > l.balance {
		return fmt.Errorf("debit %d over balance %d: %w", amount, l.balance, ErrInsufficientFunds)
	}
	l.balance -= amount
	return nil
}

func withID(entry model.LedgerEntry) model.LedgerEntry {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return entry
}

// MemoryContactBook is a process-lifetime whitelist
type MemoryContactBook struct {
	mu    sync.RWMutex
	names []string
}

func NewMemoryContactBook(seed []string) *MemoryContactBook {
	return &MemoryContactBook{names: slices.Clone(seed)}
}

func (b *MemoryContactBook) Add(_ context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.names = append(b.names, name)
	return nil
}

func (b *MemoryContactBook) All(context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.names), nil
}
