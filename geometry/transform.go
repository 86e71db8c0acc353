// Package geometry provides the rotation-aware coordinate transforms and
// per-shape-type edge math used by snapping, binding and routing.
package geometry

import (
	"math"

	"tether/scene"
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rotate rotates p about center by the given angle in radians.
func Rotate(p, center scene.Point, radians float64) scene.Point {
	sin, cos := math.Sincos(radians)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return scene.Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// WorldToLocal transforms a world point into the shape's local frame: origin
// at the shape center, axes unrotated.
func WorldToLocal(s scene.Shape, p scene.Point) scene.Point {
	c := s.Center()
	r := Rotate(p, c, -Radians(s.Rotation))
	return scene.Point{X: r.X - c.X, Y: r.Y - c.Y}
}

// LocalToWorld is the exact inverse of WorldToLocal.
func LocalToWorld(s scene.Shape, local scene.Point) scene.Point {
	c := s.Center()
	p := scene.Point{X: c.X + local.X, Y: c.Y + local.Y}
	return Rotate(p, c, Radians(s.Rotation))
}

// Contains reports whether a world point is inside the shape, taking
// rotation and the shape type's actual boundary into account.
func Contains(s scene.Shape, p scene.Point) bool {
	return DistanceToShape(s, p) == 0
}

// RotatedAABB returns the axis-aligned bounding box of the shape after
// rotation, as min and max world points.
func RotatedAABB(s scene.Shape) (min, max scene.Point) {
	if s.Rotation == 0 {
		return scene.Point{X: s.X, Y: s.Y}, scene.Point{X: s.X + s.Width, Y: s.Y + s.Height}
	}
	c := s.Center()
	rad := Radians(s.Rotation)
	corners := [4]scene.Point{
		{X: s.X, Y: s.Y},
		{X: s.X + s.Width, Y: s.Y},
		{X: s.X + s.Width, Y: s.Y + s.Height},
		{X: s.X, Y: s.Y + s.Height},
	}
	min = scene.Point{X: math.Inf(1), Y: math.Inf(1)}
	max = scene.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, corner := range corners {
		r := Rotate(corner, c, rad)
		min.X = math.Min(min.X, r.X)
		min.Y = math.Min(min.Y, r.Y)
		max.X = math.Max(max.X, r.X)
		max.Y = math.Max(max.Y, r.Y)
	}
	return min, max
}
