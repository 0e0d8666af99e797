package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFireField_ExtinguishWithin(t *testing.T) {
	ff := NewFireField(DefaultFires)
	require.Equal(t, 3, ff.ActiveCount())

	assert.Equal(t, []int{1}, ff.ExtinguishWithin(-15.5, 0.5, FireHitRadius))
	assert.False(t, ff.Fires[1].Active)
	assert.Equal(t, 2, ff.ActiveCount())

	assert.Empty(t, ff.ExtinguishWithin(-15, 0, FireHitRadius), "already out")
	assert.Empty(t, ff.ExtinguishWithin(0, 0, FireHitRadius))
}

func TestFireField_NilIsEmpty(t *testing.T) {
	var ff *FireField
	assert.Nil(t, ff.ExtinguishWithin(0, 0, 10))
}

func TestFire_InRangeIgnoresAltitude(t *testing.T) {
	f := NewFire(0, 0, 1)
	assert.True(t, f.InRange(1.5, 0, 1.5))
	assert.False(t, f.InRange(1.2, 1.2, 1.5))
}

func TestFlameHeight_Bounds(t *testing.T) {
	for i := 0; i < FlameCount; i++ {
		for _, s := range []float64{0, 0.4, 1.7, 12.3} {
			h := FlameHeight(i, s)
			assert.GreaterOrEqual(t, h, 2.0)
			assert.LessOrEqual(t, h, 2.5)
		}
	}
}

func TestLake_Contains(t *testing.T) {
	l := DefaultLake()
	assert.True(t, l.Contains(LakeX, LakeZ))
	assert.True(t, l.Contains(LakeX+LakeRadius, LakeZ))
	assert.False(t, l.Contains(LakeX+LakeRadius+0.01, LakeZ))
}

func TestNewForest_Deterministic(t *testing.T) {
	a := NewForest(Vec3{}, 5, 4, 20, 20, 99)
	b := NewForest(Vec3{}, 5, 4, 20, 20, 99)
	c := NewForest(Vec3{}, 5, 4, 20, 20, 100)

	require.Len(t, a.Trees, 20)
	assert.Equal(t, a.Trees, b.Trees)
	assert.NotEqual(t, a.Trees, c.Trees)

	for _, tr := range a.Trees {
		assert.InDelta(t, 0, tr.TiltDeg, 5)
		assert.GreaterOrEqual(t, tr.Height, 4.0)
		assert.Less(t, tr.Height, 7.0)
		assert.GreaterOrEqual(t, tr.FoliageLayers(), 2)
		assert.InDelta(t, tr.Height, tr.TrunkHeight()+tr.FoliageHeight(), 1e-9)
		assert.LessOrEqual(t, tr.X, 10.2)
		assert.GreaterOrEqual(t, tr.X, -10.2)
	}
}

func TestNewForest_Empty(t *testing.T) {
	assert.Empty(t, NewForest(Vec3{}, 0, 4, 20, 20, 1).Trees)
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 0.5, wrapAngle(0.5+4*3.141592653589793), 1e-9)
	assert.InDelta(t, 2*3.141592653589793-0.5, wrapAngle(-0.5), 1e-9)
}

func TestEventBus_DeliversByType(t *testing.T) {
	bus := NewEventBus()
	var got []EventType
	bus.Subscribe(EventDropStarted, func(e Event) { got = append(got, e.Type) })

	bus.Emit(Event{Type: EventDropStarted})
	bus.Emit(Event{Type: EventReset})

	assert.Equal(t, []EventType{EventDropStarted}, got)

	var nilBus *EventBus
	assert.NotPanics(t, func() { nilBus.Emit(Event{}) })
}
