package speech

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Console is a terminal stand-in for text-to-speech and speech recognition.
// Speak prints the utterance; Listen waits for the next line handed to Feed.
type Console struct {
	out     io.Writer
	timeout time.Duration

	mu      sync.Mutex
	waiting chan string
	closed  bool
}

// NewConsole writes utterances to out. A positive timeout makes Listen give up with ErrNoSpeech.
func NewConsole(out io.Writer, timeout time.Duration) *Console {
	return &Console{out: out, timeout: timeout}
}

func (c *Console) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, "<< %s\n", text)
	return err
}

func (c *Console) Listen(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", ErrRecognitionUnavailable
	}
	ch := make(chan string, 1)
	c.waiting = ch
	fmt.Fprintln(c.out, ">> (listening)")
	c.mu.Unlock()

	var expired <-chan time.Time
	if c.timeout > 0 {
		timer := time.NewTimer(c.timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case text := <-ch:
		return text, nil
	case <-expired:
		c.abandon(ch)
		return "", ErrNoSpeech
	case <-ctx.Done():
		c.abandon(ch)
		return "", ctx.Err()
	}
}

// Feed hands a typed line to a pending Listen. It reports false when nobody is listening,
// in which case the caller may treat the line as a key press instead.
func (c *Console) Feed(line string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.waiting == nil {
		return false
	}
	c.waiting <- line
	c.waiting = nil
	return true
}

// Listening reports whether a Listen call is waiting for input
func (c *Console) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiting != nil
}

// Close marks the input side as gone; later Listen calls fail with ErrRecognitionUnavailable
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Console) abandon(ch chan string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.waiting == ch {
		c.waiting = nil
	}
}
