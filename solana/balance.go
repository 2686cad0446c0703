package solana

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/voice-wallet/internal/common"
	"github.com/AlexZinkM/voice-wallet/internal/model"
)

// USDCReader reads an on-chain USDC balance in micro units
type USDCReader interface {
	USDCBalance(ctx context.Context, address string) (uint64, error)
}

// BalanceSeeder replaces the ledger's opening balance while it has no entries
type BalanceSeeder interface {
	SeedBalance(ctx context.Context, amount uint64) (bool, error)
}

// SyncOpeningBalance seeds the ledger with the identity's on-chain USDC, truncated to whole USDC.
// It returns the on-chain amount and whether the ledger accepted it.
func SyncOpeningBalance(ctx context.Context, signer *Signer, id model.IdentityHandle, reader USDCReader, seeder BalanceSeeder) (uint64, bool, error) {
	address, err := signer.DeriveAddress(id)
	if err != nil {
		return 0, false, fmt.Errorf("failed to derive address: %w", err)
	}

	micro, err := reader.USDCBalance(ctx, address)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get USDC balance: %w", err)
	}

	whole := common.MicroToWholeUSDC(micro)
	seeded, err := seeder.SeedBalance(ctx, whole)
	if err != nil {
		return 0, false, err
	}
	return whole, seeded, nil
}
