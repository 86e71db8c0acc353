package geometry

import (
	"math"

	"tether/scene"
)

// EdgePoint computes the world point where the ray from the shape's center
// toward the given world point crosses the shape's perimeter, pushed outward
// by gap. If toward coincides with the center there is no defined direction;
// the top edge is used as an explicit fallback.
func EdgePoint(s scene.Shape, toward scene.Point, gap float64) scene.Point {
	local := WorldToLocal(s, toward)
	if local.X == 0 && local.Y == 0 {
		local = scene.Point{X: 0, Y: -1}
	}
	hw := s.Width / 2
	hh := s.Height / 2
	if hw <= 0 && hh <= 0 {
		return s.Center()
	}

	var edge scene.Point
	switch s.Type {
	case scene.Ellipse:
		edge = ellipseEdge(local, hw, hh, gap)
	case scene.Diamond:
		edge = diamondEdge(local, hw, hh, gap)
	case scene.Rectangle, scene.Text, scene.Image, scene.Line, scene.Arrow, scene.FreeDraw:
		edge = boxEdge(local, hw, hh, gap)
	default:
		edge = boxEdge(local, hw, hh, gap)
	}
	return LocalToWorld(s, edge)
}

// boxEdge intersects the ray with an axis-aligned box boundary. The gap is
// applied along the crossed face's normal, not radially.
func boxEdge(local scene.Point, hw, hh, gap float64) scene.Point {
	// Compare the ray slope against the aspect ratio to pick the face.
	vertical := math.Abs(local.Y)*hw >= math.Abs(local.X)*hh
	if vertical && local.Y == 0 {
		vertical = false
	}
	if vertical {
		t := hh / math.Abs(local.Y)
		sy := math.Copysign(1, local.Y)
		return scene.Point{X: local.X * t, Y: sy*hh + sy*gap}
	}
	t := hw / math.Abs(local.X)
	sx := math.Copysign(1, local.X)
	return scene.Point{X: sx*hw + sx*gap, Y: local.Y * t}
}

// ellipseEdge uses the parametric point (hw·cosθ, hh·sinθ) at the ray angle;
// the gap is added radially along the same angle.
func ellipseEdge(local scene.Point, hw, hh, gap float64) scene.Point {
	theta := math.Atan2(local.Y, local.X)
	sin, cos := math.Sincos(theta)
	return scene.Point{
		X: hw*cos + gap*cos,
		Y: hh*sin + gap*sin,
	}
}

// diamondEdge intersects the ray with the |x|/hw + |y|/hh = 1 boundary and
// pushes the result along the quadrant's outward normal.
func diamondEdge(local scene.Point, hw, hh, gap float64) scene.Point {
	if hw <= 0 || hh <= 0 {
		return boxEdge(local, hw, hh, gap)
	}
	theta := math.Atan2(local.Y, local.X)
	sin, cos := math.Sincos(theta)
	denom := math.Abs(cos)/hw + math.Abs(sin)/hh
	if denom == 0 {
		return boxEdge(local, hw, hh, gap)
	}
	t := 1 / denom
	edge := scene.Point{X: t * cos, Y: t * sin}
	if gap != 0 {
		nx := math.Copysign(1, cos) / hw
		ny := math.Copysign(1, sin) / hh
		norm := math.Hypot(nx, ny)
		edge.X += gap * nx / norm
		edge.Y += gap * ny / norm
	}
	return edge
}
