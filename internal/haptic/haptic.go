// Package haptic holds vibration patterns and the fire-and-forget haptic device contract.
package haptic

import (
	"github.com/AlexZinkM/voice-wallet/internal/model"
	"go.uber.org/zap"
)

// Device triggers a named vibration pattern. Implementations must not block.
type Device interface {
	Trigger(kind model.HapticKind)
}

// Vibrator is a device that can play raw on/off patterns in milliseconds
type Vibrator interface {
	Vibrate(pattern []int)
}

var patterns = map[model.HapticKind][]int{
	model.HapticSuccess: {50, 50, 50},
	model.HapticError:   {300},
	model.HapticWarning: {100, 50, 100},
	model.HapticClick:   {10},
	model.HapticHover:   {5},
	model.HapticPulse:   {20, 100, 20},
}

// Short pulses count 1-4, a long pulse stands for five.
var digitPatterns = map[rune][]int{
	'1': {50},
	'2': {50, 50},
	'3': {50, 50, 50},
	'4': {50, 50, 50, 50},
	'5': {150},
	'6': {150, 50},
	'7': {150, 50, 50},
	'8': {150, 50, 50, 50},
	'9': {150, 150},
	'0': {150, 150, 150},
}

// fallback for characters without a rhythm
var tickPattern = []int{10}

// Pattern returns the vibration pattern for kind, or nil when unknown
func Pattern(kind model.HapticKind) []int {
	p, ok := patterns[kind]
	if !ok {
		return nil
	}
	return append([]int(nil), p...)
}

// DigitPattern returns the rhythm used to buzz a single digit
func DigitPattern(r rune) []int {
	if p, ok := digitPatterns[r]; ok {
		return append([]int(nil), p...)
	}
	return append([]int(nil), tickPattern...)
}

// Player plays patterns on a Vibrator and logs every trigger
type Player struct {
	vibrator Vibrator
	logger   *zap.Logger
}

// NewPlayer creates a Player. A nil vibrator only logs.
func NewPlayer(vibrator Vibrator, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{vibrator: vibrator, logger: logger}
}

// Trigger plays the pattern for kind; unknown kinds are ignored
func (p *Player) Trigger(kind model.HapticKind) {
	pattern := Pattern(kind)
	if pattern == nil {
		p.logger.Debug("unknown haptic pattern", zap.String("kind", string(kind)))
		return
	}
	p.logger.Debug("haptic", zap.String("kind", string(kind)), zap.Ints("pattern", pattern))
	if p.vibrator != nil {
		p.vibrator.Vibrate(pattern)
	}
}

// Braille buzzes each digit of text in turn
func (p *Player) Braille(text string) {
	for _, r := range text {
		pattern := DigitPattern(r)
		p.logger.Debug("haptic digit", zap.String("digit", string(r)), zap.Ints("pattern", pattern))
		if p.vibrator != nil {
			p.vibrator.Vibrate(pattern)
		}
	}
}
