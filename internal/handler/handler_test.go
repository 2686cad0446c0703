package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AlexZinkM/voice-wallet/internal/dialogue"
	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/AlexZinkM/voice-wallet/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeDialogue struct {
	mu       sync.Mutex
	inputs   []dialogue.Input
	identity model.IdentityHandle
	err      error
}

func (f *fakeDialogue) Submit(ctx context.Context, in dialogue.Input) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.inputs = append(f.inputs, in)
	return nil
}

func (f *fakeDialogue) State() model.StateResponse {
	return model.StateResponse{State: model.StateSendAmount, Data: model.SessionData{Recipient: "Alice"}, HasIdentity: f.identity != ""}
}

func (f *fakeDialogue) Identity() model.IdentityHandle {
	return f.identity
}

func (f *fakeDialogue) submitted() []dialogue.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dialogue.Input(nil), f.inputs...)
}

type fakeAddresses struct{}

func (fakeAddresses) DeriveAddress(id model.IdentityHandle) (string, error) {
	if id != "known" {
		return "", errors.New("unknown identity")
	}
	return "7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV", nil
}

type fixedRate string

func (r fixedRate) Rate(ctx context.Context, currency string) (string, error) {
	return string(r), nil
}

func do(t *testing.T, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func newDialogueHandler(t *testing.T, engine *fakeDialogue) *DialogueHandler {
	t.Helper()
	h := NewDialogueHandler(engine, nil, nil)
	t.Cleanup(h.Close)
	return h
}

func TestTranscript(t *testing.T) {
	engine := &fakeDialogue{}
	h := newDialogueHandler(t, engine)

	rec := do(t, h.Transcript, http.MethodPost, "/dialogue/transcript", `{"text":"send money"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, decode[model.AcceptedResponse](t, rec).Accepted)

	inputs := engine.submitted()
	require.Len(t, inputs, 1)
	assert.Equal(t, dialogue.InputTranscript, inputs[0].Kind)
	assert.Equal(t, "send money", inputs[0].Text)

	rec = do(t, h.Transcript, http.MethodPost, "/dialogue/transcript", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.ErrorCodeBadRequest, decode[model.ErrorResponse](t, rec).Code)

	rec = do(t, h.Transcript, http.MethodPost, "/dialogue/transcript", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h.Transcript, http.MethodGet, "/dialogue/transcript", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestTranscriptEngineStopped(t *testing.T) {
	engine := &fakeDialogue{err: dialogue.ErrStopped}
	h := newDialogueHandler(t, engine)

	rec := do(t, h.Transcript, http.MethodPost, "/dialogue/transcript", `{"text":"balance"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, model.ErrorCodeUnavailable, decode[model.ErrorResponse](t, rec).Code)
}

func TestButtonAndKey(t *testing.T) {
	engine := &fakeDialogue{}
	h := newDialogueHandler(t, engine)

	rec := do(t, h.Button, http.MethodPost, "/dialogue/button", `{"button":"create_wallet"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	rec = do(t, h.Button, http.MethodPost, "/dialogue/button", `{"button":"self_destruct"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h.Key, http.MethodPost, "/dialogue/key", `{"key":"b"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	rec = do(t, h.Key, http.MethodPost, "/dialogue/key", `{"key":"bb"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	inputs := engine.submitted()
	require.Len(t, inputs, 2)
	assert.Equal(t, model.ButtonCreateWallet, inputs[0].Button)
	assert.Equal(t, 'b', inputs[1].Key)
}

func TestPointerTap(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine := &fakeDialogue{}
	h := NewDialogueHandler(engine, nil, nil)
	defer h.Close()

	rec := do(t, h.Pointer, http.MethodPost, "/gesture/pointer", `{"event":"down"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	rec = do(t, h.Pointer, http.MethodPost, "/gesture/pointer", `{"event":"up"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool { return len(engine.submitted()) == 1 }, 2*time.Second, 10*time.Millisecond)
	in := engine.submitted()[0]
	assert.Equal(t, dialogue.InputGesture, in.Kind)
	assert.Equal(t, model.GestureSingleTap, in.Gesture)

	rec = do(t, h.Pointer, http.MethodPost, "/gesture/pointer", `{"event":"hover"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestState(t *testing.T) {
	h := newDialogueHandler(t, &fakeDialogue{})

	rec := do(t, h.State, http.MethodGet, "/dialogue/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[model.StateResponse](t, rec)
	assert.Equal(t, model.StateSendAmount, state.State)
	assert.Equal(t, "Alice", state.Data.Recipient)

	rec = do(t, h.State, http.MethodPost, "/dialogue/state", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func newWalletHandler(t *testing.T, engine *fakeDialogue, rates dialogue.RateSource) (*WalletHandler, *store.MemoryLedger) {
	t.Helper()
	ledger := store.NewMemoryLedger(500)
	contacts := store.NewMemoryContactBook([]string{"Alice", "Bob"})
	return NewWalletHandler(engine, ledger, contacts, fakeAddresses{}, rates, "rub", nil), ledger
}

func TestBalance(t *testing.T) {
	h, _ := newWalletHandler(t, &fakeDialogue{}, fixedRate("90.5"))

	rec := do(t, h.Balance, http.MethodGet, "/wallet/balance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	balance := decode[model.BalanceResponse](t, rec)
	assert.Equal(t, uint64(500), balance.USDC)
	assert.Equal(t, "90.5", balance.Rate)
	assert.Equal(t, "45250.00 RUB", balance.Fiat)

	plain, _ := newWalletHandler(t, &fakeDialogue{}, nil)
	rec = do(t, plain.Balance, http.MethodGet, "/wallet/balance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[model.BalanceResponse](t, rec).Fiat)
}

func TestHistoryFilters(t *testing.T) {
	ctx := context.Background()
	h, ledger := newWalletHandler(t, &fakeDialogue{}, nil)
	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, ledger.Transfer(ctx, model.LedgerEntry{Direction: model.DirectionSent, Amount: 20, Counterparty: "Alice", Timestamp: day}))
	require.NoError(t, ledger.Transfer(ctx, model.LedgerEntry{Direction: model.DirectionSent, Amount: 5, Counterparty: "Bob", Timestamp: day.AddDate(0, 0, 1)}))

	rec := do(t, h.History, http.MethodGet, "/wallet/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[model.HistoryResponse](t, rec)
	assert.Equal(t, uint64(475), all.Balance)
	require.Len(t, all.Entries, 2)
	assert.Equal(t, "Bob", all.Entries[0].Counterparty)

	rec = do(t, h.History, http.MethodGet, "/wallet/history?direction=sent&counterparty=alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	filtered := decode[model.HistoryResponse](t, rec)
	require.Len(t, filtered.Entries, 1)
	assert.Equal(t, uint64(20), filtered.TotalSent)

	rec = do(t, h.History, http.MethodGet, "/wallet/history?from=2026-03-01&to=2026-03-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[model.HistoryResponse](t, rec).Entries, 1)

	for _, query := range []string{"direction=sideways", "from=yesterday", "from=2026-03-02&to=2026-03-01"} {
		rec = do(t, h.History, http.MethodGet, "/wallet/history?"+query, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestAddress(t *testing.T) {
	h, _ := newWalletHandler(t, &fakeDialogue{}, nil)
	rec := do(t, h.Address, http.MethodGet, "/wallet/address", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, model.ErrorCodeNoIdentity, decode[model.ErrorResponse](t, rec).Code)

	h, _ = newWalletHandler(t, &fakeDialogue{identity: "known"}, nil)
	rec = do(t, h.Address, http.MethodGet, "/wallet/address", "")
	require.Equal(t, http.StatusOK, rec.Code)
	address := decode[model.AddressResponse](t, rec)
	assert.Equal(t, "7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV", address.Address)
	assert.NotEmpty(t, address.QR)
}

func TestContacts(t *testing.T) {
	h, _ := newWalletHandler(t, &fakeDialogue{}, nil)
	rec := do(t, h.Contacts, http.MethodGet, "/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Alice", "Bob"}, decode[model.ContactsResponse](t, rec).Contacts)
}
