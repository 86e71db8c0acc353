// Package binding recomputes concrete connector endpoints whenever bound
// shapes change, and keeps the shape↔connector back-references in sync.
package binding

import (
	"math"

	"tether/geometry"
	"tether/routing"
	"tether/scene"
)

// RecomputeBoundPoints resolves a connector's start and end points from its
// bindings against the current scene. It returns nil when the connector has
// no live binding (including when every binding dangles on a deleted shape),
// since there is nothing to do.
//
// When both ends are bound, resolution runs exactly two passes: pass one
// computes each precise end directly from its fixed point and each auto end
// against the other end's anchor; pass two re-solves only the auto ends
// against the other end's pass-one result. Intermediate waypoints keep their
// world position.
func RecomputeBoundPoints(conn scene.Connector, idx scene.Index) *scene.ConnectorUpdate {
	startShape := boundShape(conn.StartBinding, idx)
	endShape := boundShape(conn.EndBinding, idx)
	if startShape == nil && endShape == nil {
		return nil
	}

	curStart := conn.Start()
	curEnd := conn.End()
	newStart, newEnd := curStart, curEnd

	switch {
	case startShape != nil && endShape != nil:
		s1 := resolveEnd(conn, *conn.StartBinding, *startShape, anchor(*conn.EndBinding, *endShape))
		e1 := resolveEnd(conn, *conn.EndBinding, *endShape, anchor(*conn.StartBinding, *startShape))
		newStart, newEnd = s1, e1
		if !conn.StartBinding.Precise {
			newStart = resolveEnd(conn, *conn.StartBinding, *startShape, e1)
		}
		if !conn.EndBinding.Precise {
			newEnd = resolveEnd(conn, *conn.EndBinding, *endShape, s1)
		}
	case startShape != nil:
		newStart = resolveEnd(conn, *conn.StartBinding, *startShape, curEnd)
	default:
		newEnd = resolveEnd(conn, *conn.EndBinding, *endShape, curStart)
	}

	return buildUpdate(conn, newStart, newEnd)
}

// ElbowFaceEdgePoint places an edge point at the center of the face an elbow
// connector should exit through, rather than the geometrically nearest
// perimeter point, so the edge point stays consistent with the orthogonal
// route computed afterwards.
func ElbowFaceEdgePoint(s scene.Shape, toward scene.Point, gap float64) scene.Point {
	return routing.FaceCenter(s, routing.PreferredDirection(s, toward), gap)
}

// boundShape resolves a binding to its shape. A dangling binding (element no
// longer in the scene) resolves to nil and the end is treated as unbound.
func boundShape(b *scene.Binding, idx scene.Index) *scene.Shape {
	if b == nil {
		return nil
	}
	return idx.Lookup(b.ElementID)
}

// anchor is the direction-giving point of a bound end: the fixed-point edge
// point when precise, the shape center otherwise.
func anchor(b scene.Binding, s scene.Shape) scene.Point {
	if b.Precise {
		return geometry.EdgePointFromFixedPoint(s, b.FixedPoint, b.Gap)
	}
	return s.Center()
}

// resolveEnd computes the concrete world point for one bound end.
func resolveEnd(conn scene.Connector, b scene.Binding, s scene.Shape, toward scene.Point) scene.Point {
	if b.Precise {
		return geometry.EdgePointFromFixedPoint(s, b.FixedPoint, b.Gap)
	}
	if conn.LineType == scene.Elbow {
		return ElbowFaceEdgePoint(s, toward, b.Gap)
	}
	return geometry.EdgePoint(s, toward, b.Gap)
}

// buildUpdate assembles the partial-update record: the new origin is the
// resolved start point, intermediate waypoints are translated so their world
// positions are unchanged, and width/height derive from the endpoints.
func buildUpdate(conn scene.Connector, newStart, newEnd scene.Point) *scene.ConnectorUpdate {
	origin := conn.Origin()
	n := len(conn.Points)
	if n < 2 {
		n = 2
	}
	points := make([]scene.Point, n)
	for i := 1; i < len(conn.Points)-1; i++ {
		world := origin.Add(conn.Points[i])
		points[i] = world.Sub(newStart)
	}
	points[n-1] = newEnd.Sub(newStart)

	return &scene.ConnectorUpdate{
		ID:     conn.ID,
		X:      newStart.X,
		Y:      newStart.Y,
		Points: points,
		Width:  math.Abs(newEnd.X - newStart.X),
		Height: math.Abs(newEnd.Y - newStart.Y),
	}
}
