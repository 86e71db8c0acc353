package geometry

import (
	"math"

	"tether/scene"
)

// ComputeFixedPoint maps a world point to a normalized [0,1]×[0,1] position
// on the shape's local bounding box. Points outside the box clamp to its
// boundary, so the result is always a valid attachment.
func ComputeFixedPoint(s scene.Shape, world scene.Point) scene.FixedPoint {
	local := WorldToLocal(s, world)
	fx, fy := 0.5, 0.5
	if s.Width > 0 {
		fx = clamp01(local.X/s.Width + 0.5)
	}
	if s.Height > 0 {
		fy = clamp01(local.Y/s.Height + 0.5)
	}
	return scene.FixedPoint{X: fx, Y: fy}
}

// EdgePointFromFixedPoint converts a fixed point back to a world-space edge
// point. The center fixed point has no direction to derive an edge from, so
// it returns the shape center directly; center bindings resolve their actual
// edge point against an explicit toward point elsewhere.
func EdgePointFromFixedPoint(s scene.Shape, f scene.FixedPoint, gap float64) scene.Point {
	local := scene.Point{
		X: (f.X - 0.5) * s.Width,
		Y: (f.Y - 0.5) * s.Height,
	}
	if local.X == 0 && local.Y == 0 {
		return s.Center()
	}
	return EdgePoint(s, LocalToWorld(s, local), gap)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
