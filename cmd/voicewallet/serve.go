package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AlexZinkM/voice-wallet/docs"
	"github.com/AlexZinkM/voice-wallet/internal/api"
	"github.com/AlexZinkM/voice-wallet/internal/config"
	"github.com/AlexZinkM/voice-wallet/internal/dialogue"
	"github.com/AlexZinkM/voice-wallet/internal/handler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP control surface",
	Long: `Runs the dialogue engine behind an HTTP control surface on PORT.
Speech output goes to stdout. Spoken input arrives only through POST /dialogue/transcript:
a transcript posted while the engine is listening answers that listen, and a listen
nobody answers expires after --listen-timeout. Swagger UI is served at /swagger/.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

type transcriptFeeder interface {
	Feed(line string) bool
}

// listeningDialogue delivers posted transcripts to a pending listen before queueing them
type listeningDialogue struct {
	handler.Dialogue
	feeder transcriptFeeder
}

func (d listeningDialogue) Submit(ctx context.Context, in dialogue.Input) error {
	if in.Kind == dialogue.InputTranscript && d.feeder.Feed(in.Text) {
		return nil
	}
	return d.Dialogue.Submit(ctx, in)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()
	a, err := newApp(ctx, cfg, log, os.Stdout, listenTimeout)
	if err != nil {
		return err
	}

	engine := listeningDialogue{Dialogue: a.engine, feeder: a.console}
	dialogueHandler := handler.NewDialogueHandler(engine, nil, log)
	defer dialogueHandler.Close()
	walletHandler := handler.NewWalletHandler(engine, a.ledger, a.contacts, a.signer, a.rates, cfg.FiatCurrency, log)

	server := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           api.SetupRouter(dialogueHandler, walletHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.engine.Run(gctx)
	})
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
