// Package gesture turns raw pointer-down/pointer-up timing into tap and long-press gestures.
package gesture

import (
	"sync"
	"time"

	"github.com/AlexZinkM/voice-wallet/internal/model"
	"go.uber.org/zap"
)

const (
	LongPressThreshold = 600 * time.Millisecond
	SettleWindow       = 300 * time.Millisecond
)

// Timer is the part of *time.Timer the classifier needs
type Timer interface {
	Stop() bool
}

// Clock schedules the long-press and settle timers
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// SystemClock is the wall clock
var SystemClock Clock = systemClock{}

// Classifier assumes a single active pointer. Each completed gesture sequence emits exactly one
// gesture through the emit callback, which is never called with the classifier lock held.
type Classifier struct {
	mu     sync.Mutex
	clock  Clock
	emit   func(model.Gesture)
	logger *zap.Logger

	pressing    bool
	longPressed bool
	pressedAt   time.Time
	press       uint64
	longTimer   Timer

	tapCount    int
	settle      uint64
	settleTimer Timer
}

// NewClassifier creates a Classifier delivering gestures to emit
func NewClassifier(clock Clock, emit func(model.Gesture), logger *zap.Logger) *Classifier {
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{clock: clock, emit: emit, logger: logger}
}

// PointerDown starts a press and arms the long-press timer
func (c *Classifier) PointerDown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.longTimer != nil {
		c.longTimer.Stop()
	}
	c.pressing = true
	c.longPressed = false
	c.pressedAt = c.clock.Now()
	c.press++
	id := c.press
	c.longTimer = c.clock.AfterFunc(LongPressThreshold, func() { c.fireLongPress(id) })
}

// PointerUp ends a press. Short presses count as taps; the tap count is resolved when the
// settle window elapses, or immediately on the third tap.
func (c *Classifier) PointerUp() {
	c.mu.Lock()
	if !c.pressing {
		c.mu.Unlock()
		return
	}
	c.pressing = false
	if c.longTimer != nil {
		c.longTimer.Stop()
		c.longTimer = nil
	}
	if c.longPressed {
		c.mu.Unlock()
		return
	}

	duration := c.clock.Now().Sub(c.pressedAt)
	if duration > LongPressThreshold {
		// long-press timer lost the race; neither a tap nor a long press
		c.mu.Unlock()
		c.logger.Debug("press too long for a tap", zap.Duration("duration", duration))
		return
	}

	c.tapCount++
	c.settle++
	if c.settleTimer != nil {
		c.settleTimer.Stop()
		c.settleTimer = nil
	}

	if c.tapCount == 3 {
		c.tapCount = 0
		c.mu.Unlock()
		c.deliver(model.GestureTripleTap)
		return
	}

	gen := c.settle
	c.settleTimer = c.clock.AfterFunc(SettleWindow, func() { c.fireSettle(gen) })
	c.mu.Unlock()
}

// Close stops pending timers without emitting
func (c *Classifier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.longTimer != nil {
		c.longTimer.Stop()
		c.longTimer = nil
	}
	if c.settleTimer != nil {
		c.settleTimer.Stop()
		c.settleTimer = nil
	}
	c.press++
	c.settle++
	c.tapCount = 0
	c.pressing = false
}

func (c *Classifier) fireLongPress(id uint64) {
	c.mu.Lock()
	if id != c.press || !c.pressing || c.longPressed {
		c.mu.Unlock()
		return
	}
	c.longPressed = true
	c.longTimer = nil
	c.mu.Unlock()

	c.deliver(model.GestureLongPress)
}

func (c *Classifier) fireSettle(gen uint64) {
	c.mu.Lock()
	if gen != c.settle {
		c.mu.Unlock()
		return
	}
	count := c.tapCount
	c.tapCount = 0
	c.settleTimer = nil
	c.mu.Unlock()

	switch count {
	case 1:
		c.deliver(model.GestureSingleTap)
	case 2:
		c.deliver(model.GestureDoubleTap)
	}
}

func (c *Classifier) deliver(g model.Gesture) {
	c.logger.Debug("gesture classified", zap.String("gesture", string(g)))
	if c.emit != nil {
		c.emit(g)
	}
}
