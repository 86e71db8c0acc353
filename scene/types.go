// Package scene contains the fundamental element types shared by the tether
// connector engine. The engine reads scene elements supplied by an external
// store and proposes updates back to it; nothing in this package mutates the
// caller's data.
package scene

import (
	"math"

	"github.com/google/uuid"
)

// Point represents a 2D world-space coordinate.
type Point struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from d to p.
func (p Point) Sub(d Point) Point {
	return Point{X: p.X - d.X, Y: p.Y - d.Y}
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// ShapeType identifies the kind of a scene element.
type ShapeType int

const (
	Rectangle ShapeType = iota
	Ellipse
	Diamond
	Text
	Image
	Line
	Arrow
	FreeDraw
)

// String returns the string representation of a ShapeType.
func (t ShapeType) String() string {
	switch t {
	case Rectangle:
		return "rectangle"
	case Ellipse:
		return "ellipse"
	case Diamond:
		return "diamond"
	case Text:
		return "text"
	case Image:
		return "image"
	case Line:
		return "line"
	case Arrow:
		return "arrow"
	case FreeDraw:
		return "freedraw"
	default:
		return "unknown"
	}
}

// Connectable reports whether a connector endpoint can bind to elements of
// this type. Connectable elements also act as obstacles for elbow routing.
func (t ShapeType) Connectable() bool {
	switch t {
	case Rectangle, Ellipse, Diamond, Text, Image:
		return true
	case Line, Arrow, FreeDraw:
		return false
	default:
		return false
	}
}

// FixedPoint locates a connector endpoint on a shape's local (unrotated)
// bounding box. Both coordinates are normalized to [0,1]; (0,0) is the
// top-left corner and (0.5,0.5) the center.
type FixedPoint struct {
	X, Y float64
}

// CenterFixedPoint is the attachment used by imprecise (center) bindings.
var CenterFixedPoint = FixedPoint{X: 0.5, Y: 0.5}

// IsCenter reports whether the fixed point is the shape center.
func (f FixedPoint) IsCenter() bool {
	return f.X == 0.5 && f.Y == 0.5
}

// BoundElement is a back-reference from a shape to a connector or label
// attached to it. It is the inverse of Binding.ElementID and is kept in sync
// by explicit bidirectional update, never derived.
type BoundElement struct {
	ID   string
	Type ShapeType
}

// Shape is the subset of a scene element the engine needs: spatial fields
// plus the bound-element back-references. Rotation is in degrees, applied
// about the shape's center.
type Shape struct {
	ID            string
	Type          ShapeType
	X, Y          float64
	Width, Height float64
	Rotation      float64
	Visible       bool
	BoundElements []BoundElement
}

// Center returns the center point of the shape.
func (s Shape) Center() Point {
	return Point{X: s.X + s.Width/2, Y: s.Y + s.Height/2}
}

// Connectable reports whether the shape can host a connection endpoint.
func (s Shape) Connectable() bool {
	return s.Type.Connectable()
}

// ContainsAABB checks if a point is inside the shape's axis-aligned bounding
// box, ignoring rotation. Rotation-aware containment lives in the geometry
// package.
func (s Shape) ContainsAABB(p Point) bool {
	return p.X >= s.X && p.X < s.X+s.Width &&
		p.Y >= s.Y && p.Y < s.Y+s.Height
}

// LineType selects how a connector is rendered and routed.
type LineType int

const (
	Sharp LineType = iota
	Curved
	Elbow
)

// String returns the string representation of a LineType.
func (t LineType) String() string {
	switch t {
	case Sharp:
		return "sharp"
	case Curved:
		return "curved"
	case Elbow:
		return "elbow"
	default:
		return "unknown"
	}
}

// Binding attaches one end of a connector to a shape. Precise means "edge
// mode": the endpoint sits at the exact fixed-point-derived edge point.
// Imprecise means "center mode": FixedPoint is the center and the edge point
// is derived dynamically from the direction to the opposite endpoint. Gap is
// the clearance in pixels between the connector tip and the shape edge.
type Binding struct {
	ElementID  string
	FixedPoint FixedPoint
	Precise    bool
	Gap        float64
}

// Connector is a line or arrow element. Points are relative to (X, Y) and
// Points[0] is always the origin (0,0); intermediate points are preserved
// waypoints that binding recomputation never touches.
type Connector struct {
	ID           string
	X, Y         float64
	Points       []Point
	Rotation     float64
	LineType     LineType
	StartBinding *Binding
	EndBinding   *Binding
}

// Origin returns the connector's world-space origin.
func (c Connector) Origin() Point {
	return Point{X: c.X, Y: c.Y}
}

// Start returns the world-space start point.
func (c Connector) Start() Point {
	if len(c.Points) == 0 {
		return c.Origin()
	}
	return c.Origin().Add(c.Points[0])
}

// End returns the world-space end point.
func (c Connector) End() Point {
	if len(c.Points) == 0 {
		return c.Origin()
	}
	return c.Origin().Add(c.Points[len(c.Points)-1])
}

// ConnectorUpdate is a partial-update record proposed by the binding
// resolver. The caller applies it to its store transactionally; the engine
// never writes to the scene itself.
type ConnectorUpdate struct {
	ID            string
	X, Y          float64
	Points        []Point
	Width, Height float64
}

// Index provides shape lookup by element id.
type Index map[string]*Shape

// NewIndex builds an index over a slice of shapes. The index points into the
// given slice; it stays valid as long as the slice is not reallocated.
func NewIndex(shapes []Shape) Index {
	idx := make(Index, len(shapes))
	for i := range shapes {
		idx[shapes[i].ID] = &shapes[i]
	}
	return idx
}

// Lookup returns the shape for an id, or nil if the id is absent. A nil
// result is how dangling bindings surface; callers treat it as unbound.
func (idx Index) Lookup(id string) *Shape {
	if id == "" {
		return nil
	}
	return idx[id]
}

// NewID generates a fresh element id.
func NewID() string {
	return uuid.NewString()
}
