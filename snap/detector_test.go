package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tether/scene"
)

func testShapes() []scene.Shape {
	return []scene.Shape{
		{ID: "a", Type: scene.Rectangle, X: 0, Y: 0, Width: 100, Height: 100, Visible: true},
		{ID: "b", Type: scene.Ellipse, X: 200, Y: 0, Width: 100, Height: 100, Visible: true},
		{ID: "hidden", Type: scene.Rectangle, X: 0, Y: 200, Width: 100, Height: 100, Visible: false},
		{ID: "line", Type: scene.Line, X: 0, Y: 400, Width: 100, Height: 0, Visible: true},
	}
}

func TestFindNearestTargetThreshold(t *testing.T) {
	cfg := DefaultConfig()
	shapes := testShapes()

	target := FindNearestTarget(cfg, shapes, Query{Cursor: scene.Point{X: 110, Y: 50}})
	require.NotNil(t, target)
	assert.Equal(t, "a", target.ElementID)
	assert.True(t, target.Precise, "cursor outside the shape binds in edge mode")

	// Beyond the outer threshold nothing captures.
	target = FindNearestTarget(cfg, shapes, Query{Cursor: scene.Point{X: 150, Y: 50}})
	assert.Nil(t, target)
}

func TestFindNearestTargetIgnoresUnconnectable(t *testing.T) {
	cfg := DefaultConfig()
	shapes := testShapes()

	assert.Nil(t, FindNearestTarget(cfg, shapes, Query{Cursor: scene.Point{X: 50, Y: 250}}), "hidden shapes cannot capture")
	assert.Nil(t, FindNearestTarget(cfg, shapes, Query{Cursor: scene.Point{X: 50, Y: 400}}), "line elements cannot capture")
}

func TestFindNearestTargetExclusion(t *testing.T) {
	cfg := DefaultConfig()
	shapes := testShapes()

	target := FindNearestTarget(cfg, shapes, Query{
		Cursor:  scene.Point{X: 50, Y: 50},
		Exclude: map[string]bool{"a": true},
	})
	assert.Nil(t, target)
}

func TestInsideOutranksNearby(t *testing.T) {
	cfg := DefaultConfig()
	// Cursor inside "right" but also within threshold of "left"'s edge.
	shapes := []scene.Shape{
		{ID: "left", Type: scene.Rectangle, X: 0, Y: 0, Width: 100, Height: 100, Visible: true},
		{ID: "right", Type: scene.Rectangle, X: 105, Y: 0, Width: 100, Height: 100, Visible: true},
	}

	target := FindNearestTarget(cfg, shapes, Query{Cursor: scene.Point{X: 110, Y: 50}})
	require.NotNil(t, target)
	assert.Equal(t, "right", target.ElementID, "inside-candidate must beat a merely nearby edge")
}

func TestEdgeVersusCenterMode(t *testing.T) {
	cfg := DefaultConfig()
	shapes := testShapes()

	// Deep inside the 100x100 rectangle: center mode.
	target := FindNearestTarget(cfg, shapes, Query{Cursor: scene.Point{X: 50, Y: 50}})
	require.NotNil(t, target)
	assert.False(t, target.Precise)
	assert.Equal(t, scene.CenterFixedPoint, target.FixedPoint)

	// Just inside the perimeter: edge mode.
	target = FindNearestTarget(cfg, shapes, Query{Cursor: scene.Point{X: 95, Y: 50}})
	require.NotNil(t, target)
	assert.True(t, target.Precise)

	// ForcePrecise overrides everything.
	force := false
	target = FindNearestTarget(cfg, shapes, Query{Cursor: scene.Point{X: 95, Y: 50}, ForcePrecise: &force})
	require.NotNil(t, target)
	assert.False(t, target.Precise)
}

func TestHysteresisStability(t *testing.T) {
	cfg := DefaultConfig()
	shapes := testShapes()
	// For the 100x100 rectangle the effective band is min(20, 0.6*50) = 20,
	// i.e. the boundary sits 20px inside the perimeter at x=80 when probing
	// from the right. Oscillate ±3px around it; the mode must not flap.
	var prev *bool

	modeAt := func(x float64) bool {
		q := Query{Cursor: scene.Point{X: x, Y: 50}, PrevPrecise: prev}
		target := FindNearestTarget(cfg, shapes, q)
		require.NotNil(t, target)
		prev = &target.Precise
		return target.Precise
	}

	first := modeAt(70) // well inside: center mode, no prior state
	assert.False(t, first)

	changes := 0
	for _, x := range []float64{83, 78, 82, 79, 81, 77, 83} {
		if got := modeAt(x); got != first {
			changes++
			first = got
		}
	}
	assert.Zero(t, changes, "sub-hysteresis jitter must not flip the mode")

	// A real move past the margin does flip it.
	assert.True(t, modeAt(90), "moving clearly into the edge band switches to edge mode")
}

func TestCenterModeDirectionFallback(t *testing.T) {
	cfg := DefaultConfig()
	shapes := testShapes()
	toward := scene.Point{X: 400, Y: 50}
	noGap := 0.0

	// Cursor exactly on the center: direction comes from the far endpoint.
	target := FindNearestTarget(cfg, shapes, Query{
		Cursor: scene.Point{X: 50, Y: 50},
		Toward: &toward,
		Gap:    &noGap,
	})
	require.NotNil(t, target)
	require.False(t, target.Precise)
	assert.InDelta(t, 100, target.Position.X, 1e-9, "edge point faces the far endpoint")
	assert.InDelta(t, 50, target.Position.Y, 1e-9)

	// Without a far endpoint the rightward fallback keeps it deterministic.
	target = FindNearestTarget(cfg, shapes, Query{Cursor: scene.Point{X: 50, Y: 50}, Gap: &noGap})
	require.NotNil(t, target)
	assert.InDelta(t, 100, target.Position.X, 1e-9)
}

func TestDefaultGapApplied(t *testing.T) {
	cfg := DefaultConfig()
	shapes := testShapes()
	toward := scene.Point{X: 400, Y: 50}

	// A query without an explicit gap uses the configured default clearance.
	target := FindNearestTarget(cfg, shapes, Query{
		Cursor: scene.Point{X: 50, Y: 50},
		Toward: &toward,
	})
	require.NotNil(t, target)
	require.False(t, target.Precise)
	assert.InDelta(t, 100+cfg.DefaultGap, target.Position.X, 1e-9)

	// An explicit zero gap is respected, not replaced by the default.
	zero := 0.0
	target = FindNearestTarget(cfg, shapes, Query{
		Cursor: scene.Point{X: 50, Y: 50},
		Toward: &toward,
		Gap:    &zero,
	})
	require.NotNil(t, target)
	assert.InDelta(t, 100, target.Position.X, 1e-9)
}
