// Package routing finds orthogonal (elbow) connector paths between two world
// points, steering around obstacle shapes via grid search over a coordinate
// lattice.
package routing

import (
	"tether/geometry"
	"tether/scene"
)

// Direction represents a cardinal movement direction.
type Direction int

const (
	DirNone Direction = iota
	North
	East
	South
	West
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "None"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Vector returns the unit vector for the direction.
func (d Direction) Vector() scene.Point {
	switch d {
	case North:
		return scene.Point{X: 0, Y: -1}
	case East:
		return scene.Point{X: 1, Y: 0}
	case South:
		return scene.Point{X: 0, Y: 1}
	case West:
		return scene.Point{X: -1, Y: 0}
	default:
		return scene.Point{}
	}
}

// PreferredDirection picks the cardinal direction from the shape's center
// toward a point, using the axis with the larger component. A perfect
// diagonal resolves to the horizontal axis; a zero vector resolves to East.
// Center-bound elbow ends use this to choose which face to exit through.
func PreferredDirection(s scene.Shape, toward scene.Point) Direction {
	c := s.Center()
	dx := toward.X - c.X
	dy := toward.Y - c.Y
	if geometry.IsHorizontal(dx, dy) {
		if dx >= 0 {
			return East
		}
		return West
	}
	if dy >= 0 {
		return South
	}
	return North
}

// DirectionBetween returns the dominant cardinal direction from a to b,
// with the same tie rules as PreferredDirection.
func DirectionBetween(a, b scene.Point) Direction {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if geometry.IsHorizontal(dx, dy) {
		if dx >= 0 {
			return East
		}
		return West
	}
	if dy >= 0 {
		return South
	}
	return North
}

// FaceCenter returns the midpoint of the face of the shape's bounding box on
// the given side, pushed outward by gap. Elbow bindings attach at face
// centers so the edge point stays consistent with subsequent orthogonal
// routing.
func FaceCenter(s scene.Shape, dir Direction, gap float64) scene.Point {
	c := s.Center()
	switch dir {
	case North:
		return scene.Point{X: c.X, Y: s.Y - gap}
	case South:
		return scene.Point{X: c.X, Y: s.Y + s.Height + gap}
	case West:
		return scene.Point{X: s.X - gap, Y: c.Y}
	case East:
		return scene.Point{X: s.X + s.Width + gap, Y: c.Y}
	default:
		return c
	}
}
