package snap

import (
	"math"

	"tether/geometry"
	"tether/scene"
)

// Target is the ephemeral result of snap detection, consumed by the caller
// to build a Binding.
type Target struct {
	ElementID  string
	FixedPoint scene.FixedPoint
	Position   scene.Point
	Precise    bool
}

// Query carries the cursor state for one detection pass.
type Query struct {
	Cursor scene.Point

	// Exclude lists element ids that must not capture the endpoint,
	// typically the connector itself and its label.
	Exclude map[string]bool

	// Toward is the opposite endpoint, used to derive a stable edge
	// direction when the cursor sits on the shape center.
	Toward *scene.Point

	// ForcePrecise overrides edge/center mode selection entirely.
	ForcePrecise *bool

	// PrevPrecise is the mode emitted for the previous cursor position, if
	// any; it drives the hysteresis.
	PrevPrecise *bool

	// Gap is the clearance between the connector tip and the shape edge;
	// nil uses Config.DefaultGap.
	Gap *float64
}

// Scoring offsets: a cursor inside a shape always outranks a cursor merely
// near another shape's edge.
const (
	insideScoreOffset = -1e6
	outsideDistWeight = 1e3
	centerDeadZone    = 2 // L1 px around the center with no stable direction
)

// FindNearestTarget finds the best connectable shape for the cursor and
// decides edge-precise vs. center-auto binding. Returns nil when no shape is
// within the snap threshold.
func FindNearestTarget(cfg Config, shapes []scene.Shape, q Query) *Target {
	best := bestCandidate(cfg, shapes, q)
	if best == nil {
		return nil
	}

	gap := cfg.DefaultGap
	if q.Gap != nil {
		gap = *q.Gap
	}

	precise := decideMode(cfg, *best, q)
	if precise {
		fp := geometry.ComputeFixedPoint(*best, q.Cursor)
		return &Target{
			ElementID:  best.ID,
			FixedPoint: fp,
			Position:   geometry.EdgePointFromFixedPoint(*best, fp, gap),
			Precise:    true,
		}
	}

	return &Target{
		ElementID:  best.ID,
		FixedPoint: scene.CenterFixedPoint,
		Position:   geometry.EdgePoint(*best, centerModeDirection(*best, q), gap),
		Precise:    false,
	}
}

// bestCandidate scans the scene for the winning shape. Inside-candidates
// carry a large negative offset so they always beat outside ones; ties
// within each class break on distance to the shape center.
func bestCandidate(cfg Config, shapes []scene.Shape, q Query) *scene.Shape {
	var best *scene.Shape
	bestScore := math.Inf(1)

	for i := range shapes {
		s := &shapes[i]
		if !s.Visible || !s.Connectable() || q.Exclude[s.ID] {
			continue
		}
		dist := geometry.DistanceToShape(*s, q.Cursor)
		if dist > cfg.EdgeSnapThreshold {
			continue
		}
		centerDist := geometry.DistanceToCenter(*s, q.Cursor)

		var score float64
		if dist == 0 {
			score = insideScoreOffset + centerDist
		} else {
			score = dist*outsideDistWeight + centerDist
		}
		if score < bestScore {
			bestScore = score
			best = s
		}
	}
	return best
}

// decideMode selects edge (precise) vs. center mode for the winning shape.
func decideMode(cfg Config, s scene.Shape, q Query) bool {
	if q.ForcePrecise != nil {
		return *q.ForcePrecise
	}
	if !geometry.Contains(s, q.Cursor) {
		// Outside the shape there is nothing to be imprecise about.
		return true
	}

	// The band scales down for small shapes so a center zone always exists.
	halfMin := math.Min(s.Width, s.Height) / 2
	band := math.Min(cfg.EdgeInnerBand, 0.6*halfMin)

	limit := band
	if q.PrevPrecise != nil {
		if *q.PrevPrecise {
			limit = band + cfg.HysteresisMargin
		} else {
			limit = band - cfg.HysteresisMargin
		}
	}
	return geometry.InnerDistanceToEdge(s, q.Cursor) <= limit
}

// centerModeDirection picks the point the auto edge is computed toward. The
// cursor direction is used unless the cursor is effectively on the center,
// where it is numerically unstable; then the far endpoint, or failing that
// an arbitrary rightward direction, keeps the result deterministic.
func centerModeDirection(s scene.Shape, q Query) scene.Point {
	c := s.Center()
	if geometry.L1Distance(q.Cursor.X, q.Cursor.Y, c.X, c.Y) > centerDeadZone {
		return q.Cursor
	}
	if q.Toward != nil {
		return *q.Toward
	}
	return scene.Point{X: c.X + 1, Y: c.Y}
}
