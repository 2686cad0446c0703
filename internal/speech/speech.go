// Package speech defines the speech output/input contract of the voice surface.
package speech

import (
	"context"
	"errors"
)

// ErrRecognitionUnavailable is returned by Listen when speech input is not supported
var ErrRecognitionUnavailable = errors.New("speech recognition unavailable")

// ErrNoSpeech is returned by Listen when nothing was heard before the recognizer gave up
var ErrNoSpeech = errors.New("no speech detected")

// IO speaks and listens. Speak returns once the utterance has finished (or was superseded);
// at most one utterance is active. Listen is single-shot and yields one transcript.
type IO interface {
	Speak(ctx context.Context, text string) error
	Listen(ctx context.Context) (string, error)
}
