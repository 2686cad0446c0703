package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/AlexZinkM/voice-wallet/internal/client"
	"github.com/AlexZinkM/voice-wallet/internal/config"
	"github.com/AlexZinkM/voice-wallet/internal/crypto"
	"github.com/AlexZinkM/voice-wallet/internal/dialogue"
	"github.com/AlexZinkM/voice-wallet/internal/haptic"
	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/AlexZinkM/voice-wallet/internal/speech"
	"github.com/AlexZinkM/voice-wallet/internal/store"
	"github.com/AlexZinkM/voice-wallet/solana"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const greeting = "System Online. Blind Wallet Active. Awaiting Command."

type walletLedger interface {
	dialogue.Ledger
	store.EntryReader
	SeedBalance(ctx context.Context, amount uint64) (bool, error)
}

// app is the wired dialogue engine and its collaborators
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	console  *speech.Console
	engine   *dialogue.Engine
	signer   *solana.Signer
	ledger   walletLedger
	contacts dialogue.ContactBook
	rates    dialogue.RateSource
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer, listenTimeout time.Duration) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		console: speech.NewConsole(out, listenTimeout),
		signer:  solana.NewSigner(),
	}

	if err := a.openStore(ctx); err != nil {
		return nil, err
	}

	var keystore dialogue.IdentityStore
	var identity model.IdentityHandle
	if cfg.KeystorePath != "" {
		if err := config.PromptForPassword(); err != nil {
			return nil, err
		}
		ks := crypto.NewKeystore(afero.NewOsFs(), cfg.ScryptN)
		vault := solana.NewVault(a.signer, ks, cfg.KeystorePath, config.GetKeystorePasswordBytes)
		id, err := vault.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load keystore: %w", err)
		}
		keystore = vault
		identity = id
	}

	if identity != "" && cfg.SyncBalance {
		a.syncBalance(ctx, identity)
	}

	if cfg.FiatCurrency != "" {
		a.rates = client.NewCoinGeckoClient("")
	}

	a.engine = dialogue.NewEngine(dialogue.Config{
		ListenSettle: cfg.ListenSettle,
		RevealDelay:  cfg.RevealDelay,
		SaveDelay:    cfg.SaveDelay,
		RetryLimit:   cfg.RetryLimit,
		FiatCurrency: cfg.FiatCurrency,
		Greeting:     greeting,
	}, dialogue.Deps{
		Speech:   a.console,
		Haptics:  haptic.NewPlayer(nil, logger),
		Signer:   a.signer,
		Ledger:   a.ledger,
		Contacts: a.contacts,
		Rates:    a.rates,
		Keystore: keystore,
		Identity: identity,
	}, logger)

	return a, nil
}

// openStore uses sqlite at DB_PATH, or memory when DB_PATH is empty
func (a *app) openStore(ctx context.Context) error {
	if a.cfg.DBPath == "" {
		a.ledger = store.NewMemoryLedger(a.cfg.InitialBalance)
		a.contacts = store.NewMemoryContactBook(a.cfg.Contacts)
		return nil
	}

	db, err := store.Open(a.cfg.DBPath)
	if err != nil {
		return err
	}
	ledger, err := store.NewSQLiteLedger(ctx, db, a.cfg.InitialBalance)
	if err != nil {
		return err
	}
	contacts, err := store.NewSQLiteContactBook(ctx, db, a.cfg.Contacts)
	if err != nil {
		return err
	}
	a.ledger = ledger
	a.contacts = contacts
	return nil
}

func (a *app) syncBalance(ctx context.Context, id model.IdentityHandle) {
	rpcClient, err := client.NewSolanaClient(a.cfg.SolanaRPCURL)
	if err != nil {
		a.logger.Warn("balance sync skipped", zap.Error(err))
		return
	}
	amount, seeded, err := solana.SyncOpeningBalance(ctx, a.signer, id, rpcClient, a.ledger)
	if err != nil {
		a.logger.Warn("balance sync failed", zap.Error(err))
		return
	}
	a.logger.Info("balance sync", zap.Uint64("usdc", amount), zap.Bool("seeded", seeded))
}
