package geometry

import (
	"testing"

	"tether/scene"
)

func TestComputeFixedPointKnownPositions(t *testing.T) {
	s := scene.Shape{Type: scene.Rectangle, X: 100, Y: 200, Width: 80, Height: 40}

	tests := []struct {
		name  string
		world scene.Point
		want  scene.FixedPoint
	}{
		{"top-left corner", scene.Point{X: 100, Y: 200}, scene.FixedPoint{X: 0, Y: 0}},
		{"center", scene.Point{X: 140, Y: 220}, scene.FixedPoint{X: 0.5, Y: 0.5}},
		{"right edge midpoint", scene.Point{X: 180, Y: 220}, scene.FixedPoint{X: 1, Y: 0.5}},
		{"clamped outside", scene.Point{X: 500, Y: -50}, scene.FixedPoint{X: 1, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFixedPoint(s, tt.world)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFixedPointAffineStability(t *testing.T) {
	// Translating the shape must translate the derived edge point by the
	// same amount: the relative attachment survives the move.
	f := scene.FixedPoint{X: 1, Y: 0.25}
	base := scene.Shape{Type: scene.Rectangle, X: 0, Y: 0, Width: 100, Height: 80}
	p0 := EdgePointFromFixedPoint(base, f, 0)

	moved := base
	moved.X += 250
	moved.Y -= 40
	p1 := EdgePointFromFixedPoint(moved, f, 0)

	want := scene.Point{X: p0.X + 250, Y: p0.Y - 40}
	if !approxEqual(p1, want) {
		t.Errorf("translated edge point %v, want %v", p1, want)
	}

	// Uniform scaling about the origin scales the edge point offsets the
	// same way.
	scaled := base
	scaled.Width *= 2
	scaled.Height *= 2
	p2 := EdgePointFromFixedPoint(scaled, f, 0)
	want = scene.Point{X: p0.X * 2, Y: p0.Y * 2}
	if !approxEqual(p2, want) {
		t.Errorf("scaled edge point %v, want %v", p2, want)
	}
}

func TestFixedPointSurvivesRotation(t *testing.T) {
	// The fixed point of a world position must recompute to the same value
	// after the shape rotates, when the position is rotated with it.
	s := scene.Shape{Type: scene.Rectangle, X: 20, Y: 30, Width: 60, Height: 90}
	world := scene.Point{X: 80, Y: 52.5}
	f := ComputeFixedPoint(s, world)

	rotated := s
	rotated.Rotation = 72
	rotatedWorld := Rotate(world, s.Center(), Radians(72))
	f2 := ComputeFixedPoint(rotated, rotatedWorld)

	if !approxEqual(scene.Point{X: f2.X, Y: f2.Y}, scene.Point{X: f.X, Y: f.Y}) {
		t.Errorf("fixed point drifted under rotation: %v vs %v", f2, f)
	}
}

func TestEdgePointFromCenterFixedPoint(t *testing.T) {
	s := scene.Shape{Type: scene.Ellipse, X: 0, Y: 0, Width: 100, Height: 100}
	p := EdgePointFromFixedPoint(s, scene.CenterFixedPoint, 10)
	if !approxEqual(p, s.Center()) {
		t.Errorf("center fixed point should return the center, got %v", p)
	}
}
