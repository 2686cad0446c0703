package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AlexZinkM/voice-wallet/internal/model"
)

// EntryReader lists every ledger entry and the current balance
type EntryReader interface {
	Entries(ctx context.Context) ([]model.LedgerEntry, error)
	CurrentBalance(ctx context.Context) (uint64, error)
}

// History gets ledger entries with filtering, newest first, with totals over the filtered set
func History(ctx context.Context, ledger EntryReader, req *model.HistoryRequest) (*model.HistoryResponse, error) {
	balance, err := ledger.CurrentBalance(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := ledger.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	result := make([]model.LedgerEntry, 0, len(entries))
	// newest appended first, so entries sharing a timestamp stay newest first after the sort
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]

		// Filter by direction
		if req.Direction != nil && *req.Direction != entry.Direction {
			continue
		}

		// Filter by counterparty (case-insensitive)
		if req.Counterparty != nil && !strings.EqualFold(*req.Counterparty, entry.Counterparty) {
			continue
		}

		// Filter by dates
		if req.From != nil && entry.Timestamp.Before(*req.From) {
			continue
		}
		if req.To != nil && entry.Timestamp.After(*req.To) {
			continue
		}

		result = append(result, entry)
	}

	// Sort by time DESC (newest first)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	resp := &model.HistoryResponse{Balance: balance, Entries: result}
	for _, entry := range result {
		switch entry.Direction {
		case model.DirectionSent:
			resp.TotalSent += entry.Amount
		case model.DirectionReceived:
			resp.TotalReceived += entry.Amount
		}
	}
	return resp, nil
}
