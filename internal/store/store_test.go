package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledger interface {
	EntryReader
	Append(ctx context.Context, entry model.LedgerEntry) error
	Latest(ctx context.Context) (*model.LedgerEntry, error)
	Debit(ctx context.Context, amount uint64) error
	Transfer(ctx context.Context, entry model.LedgerEntry) error
	SeedBalance(ctx context.Context, amount uint64) (bool, error)
}

type contactBook interface {
	Add(ctx context.Context, name string) error
	All(ctx context.Context) ([]string, error)
}

func ledgers(t *testing.T, opening uint64) map[string]ledger {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "wallet.db"))
	require.NoError(t, err)
	sqliteLedger, err := NewSQLiteLedger(context.Background(), db, opening)
	require.NoError(t, err)

	return map[string]ledger{
		"sqlite": sqliteLedger,
		"memory": NewMemoryLedger(opening),
	}
}

func contactBooks(t *testing.T, seed []string) map[string]contactBook {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	sqliteBook, err := NewSQLiteContactBook(context.Background(), db, seed)
	require.NoError(t, err)

	return map[string]contactBook{
		"sqlite": sqliteBook,
		"memory": NewMemoryContactBook(seed),
	}
}

func sentEntry(amount uint64, to string, at time.Time) model.LedgerEntry {
	return model.LedgerEntry{Direction: model.DirectionSent, Amount: amount, Counterparty: to, Timestamp: at}
}

func TestLedgerTransfer(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, l := range ledgers(t, 500) {
		t.Run(name, func(t *testing.T) {
			latest, err := l.Latest(ctx)
			require.NoError(t, err)
			assert.Nil(t, latest)

			require.NoError(t, l.Transfer(ctx, sentEntry(20, "alice", now)))

			balance, err := l.CurrentBalance(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(480), balance)

			latest, err = l.Latest(ctx)
			require.NoError(t, err)
			require.NotNil(t, latest)
			assert.NotEmpty(t, latest.ID)
			assert.Equal(t, uint64(20), latest.Amount)
			assert.Equal(t, "alice", latest.Counterparty)
			assert.True(t, now.Equal(latest.Timestamp))
		})
	}
}

func TestLedgerInsufficientFunds(t *testing.T) {
	ctx := context.Background()

	for name, l := range ledgers(t, 10) {
		t.Run(name, func(t *testing.T) {
			err := l.Transfer(ctx, sentEntry(11, "bob", time.Now()))
			assert.True(t, errors.Is(err, ErrInsufficientFunds))
			assert.ErrorIs(t, l.Debit(ctx, 11), ErrInsufficientFunds)

			balance, err := l.CurrentBalance(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(10), balance)

			entries, err := l.Entries(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)

			require.NoError(t, l.Debit(ctx, 10))
			balance, err = l.CurrentBalance(ctx)
			require.NoError(t, err)
			assert.Zero(t, balance)
		})
	}
}

func TestLedgerAppendKeepsBalance(t *testing.T) {
	ctx := context.Background()

	for name, l := range ledgers(t, 100) {
		t.Run(name, func(t *testing.T) {
			entry := model.LedgerEntry{Direction: model.DirectionReceived, Amount: 5, Counterparty: "carol", Timestamp: time.Now()}
			require.NoError(t, l.Append(ctx, entry))

			balance, err := l.CurrentBalance(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(100), balance)
		})
	}
}

func TestSeedBalance(t *testing.T) {
	ctx := context.Background()

	for name, l := range ledgers(t, 500) {
		t.Run(name, func(t *testing.T) {
			seeded, err := l.SeedBalance(ctx, 42)
			require.NoError(t, err)
			assert.True(t, seeded)

			require.NoError(t, l.Transfer(ctx, sentEntry(2, "alice", time.Now())))

			seeded, err = l.SeedBalance(ctx, 1000)
			require.NoError(t, err)
			assert.False(t, seeded)

			balance, err := l.CurrentBalance(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(40), balance)
		})
	}
}

func TestSQLiteLedgerReopenKeepsBalance(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wallet.db")

	db, err := Open(path)
	require.NoError(t, err)
	l, err := NewSQLiteLedger(ctx, db, 500)
	require.NoError(t, err)
	require.NoError(t, l.Transfer(ctx, sentEntry(100, "alice", time.Now())))

	reopened, err := NewSQLiteLedger(ctx, db, 999)
	require.NoError(t, err)
	balance, err := reopened.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), balance)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for name, l := range ledgers(t, 500) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, l.Transfer(ctx, sentEntry(10, "alice", base)))
			require.NoError(t, l.Transfer(ctx, sentEntry(20, "bob", base.Add(time.Hour))))
			require.NoError(t, l.Append(ctx, model.LedgerEntry{
				Direction: model.DirectionReceived, Amount: 7, Counterparty: "Alice", Timestamp: base.Add(2 * time.Hour),
			}))

			all, err := History(ctx, l, &model.HistoryRequest{})
			require.NoError(t, err)
			assert.Equal(t, uint64(470), all.Balance)
			assert.Equal(t, uint64(30), all.TotalSent)
			assert.Equal(t, uint64(7), all.TotalReceived)
			require.Len(t, all.Entries, 3)
			assert.Equal(t, uint64(7), all.Entries[0].Amount)
			assert.Equal(t, uint64(10), all.Entries[2].Amount)

			sent := model.DirectionSent
			alice := "ALICE"
			filtered, err := History(ctx, l, &model.HistoryRequest{Direction: &sent, Counterparty: &alice})
			require.NoError(t, err)
			require.Len(t, filtered.Entries, 1)
			assert.Equal(t, uint64(10), filtered.TotalSent)
			assert.Zero(t, filtered.TotalReceived)

			from := base.Add(30 * time.Minute)
			to := base.Add(90 * time.Minute)
			window, err := History(ctx, l, &model.HistoryRequest{From: &from, To: &to})
			require.NoError(t, err)
			require.Len(t, window.Entries, 1)
			assert.Equal(t, "bob", window.Entries[0].Counterparty)
		})
	}
}

func TestContactBook(t *testing.T) {
	ctx := context.Background()

	for name, b := range contactBooks(t, []string{"Alice", "Bob"}) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Add(ctx, "carol"))
			require.NoError(t, b.Add(ctx, "Alice"))

			names, err := b.All(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Alice", "Bob", "carol", "Alice"}, names)
		})
	}
}

func TestSQLiteContactBookSeedsOnce(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "contacts.db"))
	require.NoError(t, err)

	_, err = NewSQLiteContactBook(ctx, db, []string{"Alice"})
	require.NoError(t, err)
	b, err := NewSQLiteContactBook(ctx, db, []string{"Alice"})
	require.NoError(t, err)

	names, err := b.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, names)
}
