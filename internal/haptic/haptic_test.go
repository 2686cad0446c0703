package haptic

import (
	"testing"

	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/stretchr/testify/assert"
)

type recordingVibrator struct {
	played [][]int
}

func (v *recordingVibrator) Vibrate(pattern []int) {
	v.played = append(v.played, pattern)
}

func TestPlayerTrigger(t *testing.T) {
	v := &recordingVibrator{}
	p := NewPlayer(v, nil)

	p.Trigger(model.HapticClick)
	p.Trigger(model.HapticWarning)
	p.Trigger(model.HapticKind("rumble"))

	assert.Equal(t, [][]int{{10}, {100, 50, 100}}, v.played)
}

func TestPatternIsACopy(t *testing.T) {
	p := Pattern(model.HapticSuccess)
	p[0] = 999
	assert.Equal(t, []int{50, 50, 50}, Pattern(model.HapticSuccess))
	assert.Nil(t, Pattern(model.HapticKind("unknown")))
}

func TestBraille(t *testing.T) {
	v := &recordingVibrator{}
	p := NewPlayer(v, nil)

	p.Braille("50x")

	assert.Equal(t, [][]int{{150}, {150, 150, 150}, {10}}, v.played)
}

func TestPlayerWithoutVibrator(t *testing.T) {
	p := NewPlayer(nil, nil)
	assert.NotPanics(t, func() {
		p.Trigger(model.HapticError)
		p.Braille("12")
	})
}
