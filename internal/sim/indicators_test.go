package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeliportPad_BlinksWhileSignalled(t *testing.T) {
	var p HeliportPad
	assert.Zero(t, p.Blend())
	assert.Equal(t, MarkingH, p.Marking())

	p.SetManeuverState(SignalTakeoff)
	assert.Equal(t, 1.0, p.Blend())
	assert.Equal(t, MarkingUp, p.Marking())

	p.Update(300) // second half of the 500 ms period
	assert.Zero(t, p.Blend())
	assert.Equal(t, MarkingH, p.Marking())

	p.Update(300)
	p.SetManeuverState(SignalLanding)
	assert.Equal(t, MarkingDown, p.Marking())

	p.SetManeuverState(SignalNormal)
	assert.Zero(t, p.Blend())
}

func TestCornerLight_TakeoffPulse(t *testing.T) {
	var l CornerLight
	l.SetManeuverState(SignalTakeoff)
	assert.InDelta(t, 0.5, l.Intensity(), 1e-9)

	l.Update(125)
	assert.InDelta(t, 1.0, l.Intensity(), 1e-9)

	l.Update(250)
	assert.InDelta(t, 0.0, l.Intensity(), 1e-9)
}

func TestCornerLight_LandingDoubleFlash(t *testing.T) {
	tests := []struct {
		ms   float64
		want float64
	}{
		{0, 1},
		{50, 1},
		{100, 0},
		{175, 1},
		{240, 0},
		{500, 1},
	}
	for _, tt := range tests {
		var l CornerLight
		l.SetManeuverState(SignalLanding)
		l.Update(tt.ms)
		assert.Equal(t, tt.want, l.Intensity(), "at %v ms", tt.ms)
	}
}

func TestCornerLight_Color(t *testing.T) {
	var l CornerLight
	assert.Equal(t, lightInactiveColor, l.Color())

	l.SetManeuverState(SignalLanding)
	c := l.Color()
	for i := range c {
		assert.InDelta(t, lightActiveColor[i], c[i], 1e-6)
	}
}
