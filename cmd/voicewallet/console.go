package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/AlexZinkM/voice-wallet/internal/config"
	"github.com/AlexZinkM/voice-wallet/internal/dialogue"
	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var listenTimeout time.Duration

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the dialogue in the terminal",
	Long: `Runs the dialogue with the terminal as microphone and speaker.
While the engine is listening a typed line is heard as speech. Otherwise:
  b h s a w                 keyboard shortcuts
  tap, double, triple, hold gestures
  !<button>                 on-screen buttons, e.g. !listen, !create_wallet, !import_wallet
  any other line            spoken text`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&listenTimeout, "listen-timeout", 15*time.Second, "how long a listen waits for a typed line")
}

var gestureWords = map[string]model.Gesture{
	"tap":    model.GestureSingleTap,
	"double": model.GestureDoubleTap,
	"triple": model.GestureTripleTap,
	"hold":   model.GestureLongPress,
}

func runConsole(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, config.Get(), log, os.Stdout, listenTimeout)
	if err != nil {
		return err
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stdout, "Type !listen to speak, b for balance, Ctrl+C to quit.")
	}

	lines := make(chan string)
	go scanLines(os.Stdin, lines)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.engine.Run(gctx)
	})
	g.Go(func() error {
		defer a.console.Close()
		for {
			select {
			case <-gctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					stop()
					return nil
				}
				a.dispatch(gctx, line)
			}
		}
	})
	return g.Wait()
}

func scanLines(r io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
}

// dispatch hands a typed line to a pending listen, or maps it to an input
func (a *app) dispatch(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if a.console.Listening() && a.console.Feed(line) {
		return
	}

	in, ok := parseLine(line)
	if !ok {
		fmt.Fprintf(os.Stdout, "unknown button %q\n", line)
		return
	}
	if err := a.engine.Submit(ctx, in); err != nil {
		a.logger.Warn("input rejected", zap.Stringer("kind", in.Kind), zap.Error(err))
	}
}

func parseLine(line string) (dialogue.Input, bool) {
	if name, isButton := strings.CutPrefix(line, "!"); isButton {
		button := model.Button(strings.ToLower(name))
		return dialogue.ButtonInput(button), button.Valid()
	}
	if g, isGesture := gestureWords[strings.ToLower(line)]; isGesture {
		return dialogue.GestureInput(g), true
	}
	if utf8.RuneCountInString(line) == 1 {
		r, _ := utf8.DecodeRuneInString(line)
		return dialogue.KeyInput(r), true
	}
	return dialogue.Transcript(line), true
}
