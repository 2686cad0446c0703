package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/voice-wallet/internal/config"
	"github.com/AlexZinkM/voice-wallet/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var log *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "voicewallet",
	Short: "Voice and gesture operated wallet",
	Long: `An accessibility-first wallet driven by speech, taps and keyboard shortcuts.
Without a subcommand the terminal console is started.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		l, err := logger.New(config.Get().LogLevel)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(keystoreCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
