package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	usdcMintAddressMainnet = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v" // USDC mint address on Solana mainnet (does not work on devnet/testnet)
)

// SolanaClient reads on-chain USDC balances through Solana RPC
type SolanaClient struct {
	rpcClient     *rpc.Client
	mintPublicKey solana.PublicKey
}

// NewSolanaClient creates a client for the RPC endpoint at rpcURL
func NewSolanaClient(rpcURL string) (*SolanaClient, error) {
	mintPubKey, err := solana.PublicKeyFromBase58(usdcMintAddressMainnet)
	if err != nil {
		return nil, fmt.Errorf("invalid USDC mint address: %w", err)
	}
	return &SolanaClient{
		rpcClient:     rpc.New(rpcURL),
		mintPublicKey: mintPubKey,
	}, nil
}

// USDCBalance gets the USDC balance of address in micro units (10^-6 USDC).
// An address without a USDC token account holds zero.
func (c *SolanaClient) USDCBalance(ctx context.Context, address string) (uint64, error) {
	ownerPubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("invalid Solana address: %w", err)
	}

	ataAddress, _, err := solana.FindAssociatedTokenAddress(ownerPubkey, c.mintPublicKey)
	if err != nil {
		return 0, fmt.Errorf("failed to find associated token account address: %w", err)
	}

	balance, err := c.rpcClient.GetTokenAccountBalance(ctx, ataAddress, rpc.CommitmentConfirmed)
	if err != nil {
		if isATANotFoundError(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get token account balance: %w", err)
	}

	if balance.Value == nil {
		return 0, nil
	}

	amount, err := strconv.ParseUint(balance.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse USDC balance amount: %w", err)
	}

	return amount, nil
}

// isATANotFoundError checks if error indicates that token account doesn't exist
func isATANotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "could not find account") ||
		strings.Contains(errStr, "not found")
}
