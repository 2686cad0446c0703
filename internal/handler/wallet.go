package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/voice-wallet/internal/common"
	"github.com/AlexZinkM/voice-wallet/internal/dialogue"
	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/AlexZinkM/voice-wallet/internal/store"
	"github.com/AlexZinkM/voice-wallet/solana"
	"go.uber.org/zap"
)

// AddressDeriver resolves the public address of an identity
type AddressDeriver interface {
	DeriveAddress(id model.IdentityHandle) (string, error)
}

// ContactLister reads the whitelist
type ContactLister interface {
	All(ctx context.Context) ([]string, error)
}

// WalletHandler serves read-only wallet views for the loaded identity
type WalletHandler struct {
	engine   Dialogue
	ledger   store.EntryReader
	contacts ContactLister
	signer   AddressDeriver
	rates    dialogue.RateSource
	currency string
	logger   *zap.Logger
}

// NewWalletHandler creates a WalletHandler. rates may be nil, and currency empty, to skip fiat quotes.
func NewWalletHandler(engine Dialogue, ledger store.EntryReader, contacts ContactLister, signer AddressDeriver,
	rates dialogue.RateSource, currency string, logger *zap.Logger) *WalletHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletHandler{
		engine:   engine,
		ledger:   ledger,
		contacts: contacts,
		signer:   signer,
		rates:    rates,
		currency: currency,
		logger:   logger,
	}
}

// Balance handles GET /wallet/balance
// @Summary      Get balance
// @Description  Returns the ledger balance in whole USDC and, when a fiat currency is configured, its value
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	balance, err := h.ledger.CurrentBalance(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrorCodeInternal, err)
		return
	}

	resp := model.BalanceResponse{USDC: balance}
	if h.rates != nil && h.currency != "" {
		rate, err := h.rates.Rate(r.Context(), h.currency)
		if err != nil {
			h.logger.Warn("failed to get fiat rate", zap.String("currency", h.currency), zap.Error(err))
		} else if fiat, err := common.FiatValue(balance, rate); err == nil {
			resp.Rate = rate
			resp.Fiat = fiat + " " + strings.ToUpper(h.currency)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// History handles GET /wallet/history
// @Summary      Get ledger history
// @Description  Lists committed transfers, newest first, with optional filters
// @Tags         wallet
// @Produce      json
// @Param        direction     query     string  false  "SENT or RECEIVED"
// @Param        counterparty  query     string  false  "Counterparty name (case-insensitive)"
// @Param        from          query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to            query     string  false  "End date (YYYY-MM-DD)"
// @Success      200  {object}  model.HistoryResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /wallet/history [get]
func (h *WalletHandler) History(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	var req model.HistoryRequest
	query := r.URL.Query()

	const dateLayout = "2006-01-02"
	if fromStr := query.Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest,
				errors.New("invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)"))
			return
		}
		req.From = &t
	}
	if toStr := query.Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest,
				errors.New("invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)"))
			return
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		req.To = &t
	}
	if direction := query.Get("direction"); direction != "" {
		d := model.Direction(strings.ToUpper(direction))
		req.Direction = &d
	}
	if counterparty := query.Get("counterparty"); counterparty != "" {
		req.Counterparty = &counterparty
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, err)
		return
	}

	resp, err := store.History(r.Context(), h.ledger, &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrorCodeInternal, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Address handles GET /wallet/address
// @Summary      Get wallet address
// @Description  Returns the address of the loaded identity with a base64 PNG QR code
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.AddressResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/address [get]
func (h *WalletHandler) Address(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	id := h.engine.Identity()
	if id == "" {
		writeError(w, http.StatusNotFound, model.ErrorCodeNoIdentity, errors.New("no wallet loaded"))
		return
	}

	address, err := h.signer.DeriveAddress(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrorCodeInternal, err)
		return
	}

	resp := model.AddressResponse{Address: address}
	if qr, err := solana.AddressQR(address); err != nil {
		h.logger.Warn("failed to render address QR", zap.Error(err))
	} else {
		resp.QR = qr
	}

	writeJSON(w, http.StatusOK, resp)
}

// Contacts handles GET /contacts
// @Summary      List whitelist
// @Description  Returns the whitelisted contact names in insertion order
// @Tags         contacts
// @Produce      json
// @Success      200  {object}  model.ContactsResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /contacts [get]
func (h *WalletHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	names, err := h.contacts.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrorCodeInternal, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, model.ContactsResponse{Contacts: names})
}
