package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AlexZinkM/voice-wallet/internal/common"
	"github.com/AlexZinkM/voice-wallet/internal/haptic"
	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/AlexZinkM/voice-wallet/internal/speech"
	"github.com/AlexZinkM/voice-wallet/internal/store"
	"go.uber.org/zap"
)

// ErrStopped is returned by Submit once Run has returned
var ErrStopped = errors.New("dialogue engine stopped")

const inputQueueSize = 16

// Config tunes the runtime timing of the engine
type Config struct {
	ListenSettle time.Duration
	RevealDelay  time.Duration
	SaveDelay    time.Duration
	RetryLimit   int
	FiatCurrency string
	Greeting     string
}

// Deps are the collaborators the engine executes effects against.
// Haptics, Rates and Keystore are optional.
type Deps struct {
	Speech   speech.IO
	Haptics  haptic.Device
	Signer   Signer
	Ledger   Ledger
	Contacts ContactBook
	Rates    RateSource
	Keystore IdentityStore
	Identity model.IdentityHandle
}

// Engine owns the session and serialises every input through a single loop.
// Listening and the timed reveal/save tasks run on their own goroutines and report back as inputs.
type Engine struct {
	cfg     Config
	deps    Deps
	machine Machine
	logger  *zap.Logger
	now     func() time.Time

	inputs chan Input
	done   chan struct{}
	wg     sync.WaitGroup

	mu      sync.RWMutex
	session model.Session
	busy    bool

	listening           atomic.Bool
	unavailableReported bool
}

// NewEngine creates an engine in Idle with deps.Identity loaded
func NewEngine(cfg Config, deps Deps, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Haptics == nil {
		deps.Haptics = haptic.NewPlayer(nil, logger)
	}
	session := model.NewSession()
	session.Identity = deps.Identity

	return &Engine{
		cfg:     cfg,
		deps:    deps,
		machine: Machine{RetryLimit: cfg.RetryLimit},
		logger:  logger,
		now:     time.Now,
		inputs:  make(chan Input, inputQueueSize),
		done:    make(chan struct{}),
		session: session,
	}
}

// Run greets the user and processes inputs until ctx is cancelled. It waits for its
// background goroutines before returning and must be called once.
func (e *Engine) Run(ctx context.Context) error {
	defer func() {
		close(e.done)
		e.wg.Wait()
	}()

	e.logger.Info("dialogue engine started", zap.String("state", string(e.State().State)))
	if e.cfg.Greeting != "" {
		e.speak(ctx, e.cfg.Greeting, false)
	}

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("dialogue engine stopped")
			return nil
		case in := <-e.inputs:
			e.handle(ctx, in)
		}
	}
}

// Submit queues an input for the loop
func (e *Engine) Submit(ctx context.Context, in Input) error {
	select {
	case <-e.done:
		return ErrStopped
	default:
	}
	select {
	case e.inputs <- in:
		return nil
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State is a snapshot of the session safe to expose; it carries no seed words
func (e *Engine) State() model.StateResponse {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s := e.session
	return model.StateResponse{
		State:         s.State,
		Data:          s.Data,
		ImportedWords: len(s.Import.CollectedWords),
		SpellingMode:  s.Import.SpellingMode,
		RevealedWords: s.Creation.RevealedCount,
		HasIdentity:   s.HasIdentity(),
		Listening:     e.listening.Load(),
		Busy:          e.busy,
	}
}

// Identity returns the handle of the loaded wallet, or "" when none is loaded
func (e *Engine) Identity() model.IdentityHandle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.Identity
}

func (e *Engine) handle(ctx context.Context, in Input) {
	switch in.Kind {
	case inputListenFailed:
		e.onListenFailed(ctx, in.Err)
		return
	case InputCreationSaved, InputSecretRevealed:
		e.setBusy(false)
	default:
		if e.isBusy() {
			e.logger.Info("input dropped while a task is running", zap.Stringer("kind", in.Kind))
			return
		}
	}
	e.apply(ctx, in)
}

func (e *Engine) apply(ctx context.Context, in Input) {
	e.mu.Lock()
	prev := e.session.State
	next, effects := e.machine.Step(e.session, in)
	e.session = next
	e.mu.Unlock()

	if prev != next.State {
		e.logger.Info("dialogue transition",
			zap.String("from", string(prev)),
			zap.String("to", string(next.State)),
			zap.Stringer("input", in.Kind))
	}
	for _, eff := range effects {
		e.execute(ctx, eff)
	}
}

func (e *Engine) execute(ctx context.Context, eff model.Effect) {
	switch eff.Kind {
	case model.EffectSpeak:
		e.speak(ctx, eff.Text, eff.Sensitive)
	case model.EffectListen:
		e.listen(ctx)
	case model.EffectHaptic:
		e.deps.Haptics.Trigger(eff.Haptic)
	case model.EffectSpeakBalance:
		e.speakBalance(ctx)
	case model.EffectSpeakHistory:
		e.speakHistory(ctx)
	case model.EffectSpeakContacts:
		e.speakContacts(ctx)
	case model.EffectSpeakAddress:
		e.speakAddress(ctx, eff.Identity)
	case model.EffectCommitSend:
		e.commitSend(ctx, eff)
	case model.EffectCommitContact:
		e.commitContact(ctx, eff.Name)
	case model.EffectGenerateWallet:
		e.generateWallet(ctx)
	case model.EffectImportWallet:
		e.importWallet(ctx, eff.Words)
	case model.EffectRevealSecret:
		e.revealSecret(ctx, eff.Identity)
	case model.EffectFinalizeCreation:
		e.finalizeCreation(ctx, eff.Identity)
	default:
		e.logger.Warn("unknown effect", zap.Stringer("kind", eff.Kind))
	}
}

func (e *Engine) speak(ctx context.Context, text string, sensitive bool) {
	if sensitive {
		e.logger.Debug("speak", zap.String("text", "[redacted]"))
	} else {
		e.logger.Debug("speak", zap.String("text", text))
	}
	if err := e.deps.Speech.Speak(ctx, text); err != nil {
		e.logger.Warn("failed to speak", zap.Error(err))
	}
}

// listen opens the microphone once the settle delay has passed. A second Listen while
// one is pending is a no-op.
func (e *Engine) listen(ctx context.Context) {
	if !e.listening.CompareAndSwap(false, true) {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		text, err := e.awaitTranscript(ctx)
		e.listening.Store(false)
		if ctx.Err() != nil {
			return
		}
		in := Transcript(text)
		if err != nil {
			in = Input{Kind: inputListenFailed, Err: err}
		}
		if err := e.Submit(ctx, in); err != nil {
			e.logger.Debug("transcript discarded", zap.Error(err))
		}
	}()
}

func (e *Engine) awaitTranscript(ctx context.Context) (string, error) {
	if e.cfg.ListenSettle > 0 {
		timer := time.NewTimer(e.cfg.ListenSettle)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return e.deps.Speech.Listen(ctx)
}

func (e *Engine) onListenFailed(ctx context.Context, err error) {
	if errors.Is(err, speech.ErrRecognitionUnavailable) {
		if e.unavailableReported {
			return
		}
		e.unavailableReported = true
		e.logger.Warn("speech recognition unavailable")
		e.speak(ctx, msgRecognitionUnavailable, false)
		e.deps.Haptics.Trigger(model.HapticError)
		return
	}
	e.logger.Info("listen failed", zap.Error(err))
}

func (e *Engine) speakBalance(ctx context.Context) {
	balance, err := e.deps.Ledger.CurrentBalance(ctx)
	if err != nil {
		e.fail(ctx, msgBalanceUnavailable, err)
		return
	}
	text := fmt.Sprintf("Balance: %d USDC", balance)
	if fiat := e.fiatEquivalent(ctx, balance); fiat != "" {
		text += fmt.Sprintf(", about %s %s", fiat, strings.ToUpper(e.cfg.FiatCurrency))
	}
	e.speak(ctx, text, false)
	if b, ok := e.deps.Haptics.(Brailler); ok {
		b.Braille(strconv.FormatUint(balance, 10))
	}
}

func (e *Engine) fiatEquivalent(ctx context.Context, balance uint64) string {
	if e.deps.Rates == nil || e.cfg.FiatCurrency == "" {
		return ""
	}
	rate, err := e.deps.Rates.Rate(ctx, e.cfg.FiatCurrency)
	if err != nil {
		e.logger.Warn("failed to get fiat rate", zap.String("currency", e.cfg.FiatCurrency), zap.Error(err))
		return ""
	}
	fiat, err := common.FiatValue(balance, rate)
	if err != nil {
		e.logger.Warn("failed to convert balance", zap.String("rate", rate), zap.Error(err))
		return ""
	}
	return fiat
}

func (e *Engine) speakHistory(ctx context.Context) {
	last, err := e.deps.Ledger.Latest(ctx)
	if err != nil {
		e.fail(ctx, msgHistoryUnavailable, err)
		return
	}
	switch {
	case last == nil:
		e.speak(ctx, msgNoHistory, false)
	case last.Direction == model.DirectionReceived:
		e.speak(ctx, fmt.Sprintf("Last: Received %d from %s", last.Amount, last.Counterparty), false)
	default:
		e.speak(ctx, fmt.Sprintf("Last: Sent %d to %s", last.Amount, last.Counterparty), false)
	}
}

func (e *Engine) speakContacts(ctx context.Context) {
	names, err := e.deps.Contacts.All(ctx)
	if err != nil {
		e.fail(ctx, msgContactFailed, err)
		return
	}
	if len(names) == 0 {
		e.speak(ctx, msgEmptyWhitelist, false)
		return
	}
	e.speak(ctx, "List: "+strings.Join(names, ", "), false)
}

func (e *Engine) speakAddress(ctx context.Context, id model.IdentityHandle) {
	if id == "" {
		e.speak(ctx, msgNoWallet, false)
		return
	}
	address, err := e.deps.Signer.DeriveAddress(id)
	if err != nil {
		e.fail(ctx, msgAddressUnavailable, err)
		return
	}
	head, tail := common.TruncateAddress(address)
	if tail == "" {
		e.speak(ctx, "Address: "+head, false)
		return
	}
	e.speak(ctx, fmt.Sprintf("Address starts with %s and ends with %s.", head, tail), false)
}

// commitSend signs and records a send. A failure at any step commits nothing.
func (e *Engine) commitSend(ctx context.Context, eff model.Effect) {
	var signature string
	if eff.Identity != "" {
		sig, err := e.deps.Signer.Sign(eff.Identity, transferMessage(eff.Recipient, eff.Amount))
		if err != nil {
			e.fail(ctx, msgSendFailed, err)
			return
		}
		signature = sig
	}

	entry := model.LedgerEntry{
		Direction:    model.DirectionSent,
		Amount:       eff.Amount,
		Counterparty: eff.Recipient,
		Timestamp:    e.now().UTC(),
		Signature:    signature,
	}
	if err := e.deps.Ledger.Transfer(ctx, entry); err != nil {
		if errors.Is(err, store.ErrInsufficientFunds) {
			e.fail(ctx, msgInsufficientBalance, err)
			return
		}
		e.fail(ctx, msgSendFailed, err)
		return
	}

	e.logger.Info("transfer committed",
		zap.Uint64("amount", eff.Amount),
		zap.String("recipient", eff.Recipient),
		zap.Bool("signed", signature != ""))
	e.speak(ctx, sent(eff.Amount), false)
	e.deps.Haptics.Trigger(model.HapticSuccess)
}

func (e *Engine) commitContact(ctx context.Context, name string) {
	if err := e.deps.Contacts.Add(ctx, name); err != nil {
		e.fail(ctx, msgContactFailed, err)
		return
	}
	e.logger.Info("contact added", zap.String("name", name))
	e.speak(ctx, msgAdded, false)
	e.deps.Haptics.Trigger(model.HapticSuccess)
}

func (e *Engine) generateWallet(ctx context.Context) {
	words, id, err := e.deps.Signer.Generate()
	if err != nil {
		e.logger.Error("failed to generate wallet", zap.Error(err))
		e.apply(ctx, Input{Kind: InputWalletGenerated, Failed: true})
		return
	}
	e.apply(ctx, Input{Kind: InputWalletGenerated, Words: words, Identity: id})
}

func (e *Engine) importWallet(ctx context.Context, words []string) {
	id, err := e.deps.Signer.ImportFromWords(words)
	if err != nil {
		e.logger.Warn("failed to import wallet", zap.Error(err))
		e.apply(ctx, Input{Kind: InputWalletImported, Failed: true})
		return
	}
	e.logger.Info("wallet imported", zap.String("identity", string(id)))
	e.apply(ctx, Input{Kind: InputWalletImported, Identity: id})
}

func (e *Engine) revealSecret(ctx context.Context, id model.IdentityHandle) {
	e.logger.Warn("private key reveal authorised", zap.String("identity", string(id)))
	e.startTask(ctx, e.cfg.RevealDelay, func() Input {
		secret, err := e.deps.Signer.RevealSecret(id)
		if err != nil {
			e.logger.Error("failed to reveal secret", zap.Error(err))
			return Input{Kind: InputSecretRevealed, Failed: true}
		}
		return Input{Kind: InputSecretRevealed, Text: secret}
	})
}

func (e *Engine) finalizeCreation(ctx context.Context, id model.IdentityHandle) {
	e.startTask(ctx, e.cfg.SaveDelay, func() Input {
		if e.deps.Keystore == nil {
			return Input{Kind: InputCreationSaved, Identity: id}
		}
		if err := e.deps.Keystore.Save(id); err != nil {
			e.logger.Error("failed to save wallet", zap.Error(err))
			return Input{Kind: InputCreationSaved, Identity: id, Failed: true}
		}
		return Input{Kind: InputCreationSaved, Identity: id}
	})
}

// startTask runs work after delay on its own goroutine; input is dropped until its result arrives
func (e *Engine) startTask(ctx context.Context, delay time.Duration, work func() Input) {
	e.setBusy(true)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if err := e.Submit(ctx, work()); err != nil {
			e.logger.Debug("task result discarded", zap.Error(err))
		}
	}()
}

func (e *Engine) fail(ctx context.Context, message string, err error) {
	e.logger.Warn(message, zap.Error(err))
	e.speak(ctx, message, false)
	e.deps.Haptics.Trigger(model.HapticError)
}

func (e *Engine) isBusy() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.busy
}

func (e *Engine) setBusy(busy bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = busy
}

func transferMessage(recipient string, amount uint64) []byte {
	return []byte(fmt.Sprintf("send %d USDC to %s", amount, recipient))
}
