package model

import (
	"fmt"
	"time"
)

// Direction of a ledger entry
type Direction string

const (
	DirectionSent     Direction = "SENT"
	DirectionReceived Direction = "RECEIVED"
)

// LedgerEntry is an append-only record of a committed transfer.
// Amount is in whole USDC. Signature is empty when no identity signed the transfer.
type LedgerEntry struct {
	ID           string    `json:"id"`
	Direction    Direction `json:"direction"`
	Amount       uint64    `json:"amount"`
	Counterparty string    `json:"counterparty"`
	Timestamp    time.Time `json:"timestamp"`
	Signature    string    `json:"signature,omitempty"`
}

// HistoryResponse represents response for GET /wallet/history
type HistoryResponse struct {
	Balance       uint64        `json:"balance"`
	TotalSent     uint64        `json:"total_sent"`
	TotalReceived uint64        `json:"total_received"`
	Entries       []LedgerEntry `json:"entries"`
}

// HistoryRequest represents filter parameters for GET /wallet/history
type HistoryRequest struct {
	Direction    *Direction `form:"direction"`
	Counterparty *string    `form:"counterparty"`
	From         *time.Time `form:"from"`
	To           *time.Time `form:"to"`
}

// Validate validates HistoryRequest filter parameters.
func (r *HistoryRequest) Validate() error {
	if r.Direction != nil && *r.Direction != DirectionSent && *r.Direction != DirectionReceived {
		return fmt.Errorf("direction must be SENT or RECEIVED")
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	return nil
}
