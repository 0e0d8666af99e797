package sim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewBuilding_Dimensions(t *testing.T) {
	b := NewBuilding(12, 3, 3, [3]float32{0.137, 0.239, 0.196}, zerolog.Nop())

	assert.Equal(t, 4, b.CentralFloors)
	assert.Equal(t, 4.0, b.ModuleWidth)
	assert.Equal(t, 3.0, b.SideModuleWidth)
	assert.Equal(t, 3.0, b.SideModuleDepth)
	assert.Equal(t, 6.0, b.CentralHeight())
	assert.InDelta(t, 6.76, b.HeliportAltitude(), 1e-9)
	assert.Equal(t, Vec3{X: HeliportX, Y: BuildingSink, Z: HeliportZ}, b.Origin)
}

func TestBuilding_SetManeuverStatePropagates(t *testing.T) {
	var buf bytes.Buffer
	b := NewBuilding(12, 3, 3, [3]float32{}, zerolog.New(&buf))

	b.SetManeuverState(SignalLanding)
	assert.Equal(t, SignalLanding, b.ManeuverState())
	assert.Equal(t, SignalLanding, b.Pad.State())
	for i := range b.Lights {
		assert.Equal(t, SignalLanding, b.Lights[i].State())
	}

	b.SetManeuverState(SignalLanding)
	b.SetManeuverState(SignalNormal)
	assert.Equal(t, 2, strings.Count(buf.String(), "Heliport state changed"))
	assert.Contains(t, buf.String(), `"component":"building"`)
}

func TestBuilding_ContainsPoint(t *testing.T) {
	b := NewBuilding(12, 3, 3, [3]float32{}, zerolog.Nop())

	tests := []struct {
		name    string
		x, y, z float64
		inside  bool
	}{
		{"centre", 0, 3, 0, true},
		{"roof edge", 6, 6, 2, true},
		{"beside", 6.1, 3, 0, false},
		{"above roof", 0, 6.5, 0, false},
		{"below ground", 0, -0.1, 0, false},
		{"behind", 0, 3, -2.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inside, b.ContainsPoint(tt.x, tt.y, tt.z))
		})
	}
}

func TestBuilding_ImplementsSink(t *testing.T) {
	var sink MoveSignalSink = NewBuilding(12, 3, 3, [3]float32{}, zerolog.Nop())
	sink.SetManeuverState(SignalTakeoff)
	assert.Equal(t, SignalTakeoff, sink.(*Building).ManeuverState())
}
