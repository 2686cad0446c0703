package dialogue

import (
	"context"

	"github.com/AlexZinkM/voice-wallet/internal/model"
)

// Signer owns wallet key material. The engine only ever holds identity handles.
type Signer interface {
	Generate() ([]string, model.IdentityHandle, error)
	ImportFromWords(words []string) (model.IdentityHandle, error)
	DeriveAddress(id model.IdentityHandle) (string, error)
	Sign(id model.IdentityHandle, message []byte) (string, error)
	RevealSecret(id model.IdentityHandle) (string, error)
}

// IdentityStore persists a freshly created identity
type IdentityStore interface {
	Save(id model.IdentityHandle) error
}

// Ledger is the balance and transaction history. Transfer debits and appends atomically.
type Ledger interface {
	Latest(ctx context.Context) (*model.LedgerEntry, error)
	CurrentBalance(ctx context.Context) (uint64, error)
	Transfer(ctx context.Context, entry model.LedgerEntry) error
}

// ContactBook is the whitelist of recipients, in insertion order
type ContactBook interface {
	Add(ctx context.Context, name string) error
	All(ctx context.Context) ([]string, error)
}

// RateSource quotes the price of one USDC in a fiat currency as a decimal string
type RateSource interface {
	Rate(ctx context.Context, currency string) (string, error)
}

// Brailler is implemented by haptic devices that can buzz digits
type Brailler interface {
	Braille(text string)
}
