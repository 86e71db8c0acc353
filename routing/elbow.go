package routing

import (
	"math"
	"sort"

	"tether/scene"
)

// Options are the tunables for elbow routing.
type Options struct {
	Gap      float64 // clearance kept around obstacle shapes
	MinStub  float64 // minimum length of the first/last segment before a turn
	TurnCost float64 // penalty per direction change during search
	MaxNodes int     // search safety limit
	Margin   float64 // how far outside the scene bounds paths may travel
}

// DefaultOptions provides reasonable defaults for elbow routing.
func DefaultOptions() Options {
	return Options{
		Gap:      4,
		MinStub:  0,
		TurnCost: 40,
		MaxNodes: 20000,
		Margin:   40,
	}
}

// ComputeElbowPoints routes an orthogonal path from start to end in world
// space, returning points relative to start (the first point is always the
// origin). startShapeID and endShapeID name the connector's bound targets;
// their interiors are not treated as obstacles and their faces determine the
// preferred exit and entry directions. Every visible connectable shape other
// than the bound targets is an obstacle.
//
// Routing never fails: degenerate inputs and unroutable obstacle
// configurations fall back to a straight two-point line.
func ComputeElbowPoints(start, end scene.Point, startShapeID, endShapeID string, shapes []scene.Shape, opts Options) []scene.Point {
	if start == end {
		return []scene.Point{{}, {}}
	}

	idx := scene.NewIndex(shapes)
	startShape := idx.Lookup(startShapeID)
	endShape := idx.Lookup(endShapeID)

	startDir := exitDirection(startShape, start, end)
	endDir := exitDirection(endShape, end, start)

	stub := opts.MinStub
	stubStart := start.Add(scaled(startDir, stub))
	stubEnd := end.Add(scaled(endDir, stub))

	exclude := map[string]bool{}
	if startShapeID != "" {
		exclude[startShapeID] = true
	}
	if endShapeID != "" {
		exclude[endShapeID] = true
	}
	rects := ObstacleRects(shapes, exclude, opts.Gap)
	blocked := CheckerForRects(rects)

	if blocked(stubStart) || blocked(stubEnd) {
		return straightFallback(start, end)
	}

	lat := buildLattice(rects, opts.Margin, stubStart, stubEnd)
	lat.blocked = blocked

	from, okFrom := lat.indexOf(stubStart)
	to, okTo := lat.indexOf(stubEnd)
	if !okFrom || !okTo {
		return straightFallback(start, end)
	}

	// The segment appended after stubEnd runs opposite to endDir; requiring
	// the search to arrive moving that way keeps the joined path turn-free
	// at the seam.
	goalDir := DirNone
	if endDir != DirNone {
		goalDir = endDir.Opposite()
	}

	// Fast path: an unobstructed straight or L-shaped route skips the grid
	// search entirely.
	path, ok := directRoute(stubStart, stubEnd, startDir, goalDir, rects)
	if !ok {
		var err error
		path, err = lat.findPath(from, to, startDir, goalDir, opts.TurnCost, opts.MaxNodes)
		if err != nil {
			return straightFallback(start, end)
		}
	}

	full := make([]scene.Point, 0, len(path)+2)
	full = append(full, start)
	full = append(full, path...)
	full = append(full, end)
	full = SimplifyElbowPath(full)

	rel := make([]scene.Point, len(full))
	for i, p := range full {
		rel[i] = p.Sub(start)
	}
	return rel
}

// SimplifyElbowPath collapses consecutive duplicate points and merges runs
// of colinear segments, minimizing rendered vertices.
func SimplifyElbowPath(points []scene.Point) []scene.Point {
	if len(points) <= 2 {
		return points
	}

	deduped := points[:1]
	for _, p := range points[1:] {
		if p != deduped[len(deduped)-1] {
			deduped = append(deduped, p)
		}
	}
	if len(deduped) <= 2 {
		return deduped
	}

	simplified := []scene.Point{deduped[0]}
	for i := 1; i < len(deduped)-1; i++ {
		if !aligned(deduped[i-1], deduped[i], deduped[i+1]) {
			simplified = append(simplified, deduped[i])
		}
	}
	return append(simplified, deduped[len(deduped)-1])
}

// aligned checks if three points share a horizontal or vertical line.
func aligned(a, b, c scene.Point) bool {
	if a.Y == b.Y && b.Y == c.Y {
		return true
	}
	return a.X == b.X && b.X == c.X
}

// exitDirection decides which way a path leaves an endpoint. For a bound
// shape the direction is the face the endpoint sits on, or the face toward
// the other end when the endpoint is at the center. Unbound endpoints use
// the dominant axis toward the other end.
func exitDirection(s *scene.Shape, at, other scene.Point) Direction {
	if s == nil {
		return DirectionBetween(at, other)
	}
	c := s.Center()
	if at == c {
		return PreferredDirection(*s, other)
	}
	return PreferredDirection(*s, at)
}

func scaled(d Direction, length float64) scene.Point {
	v := d.Vector()
	return scene.Point{X: v.X * length, Y: v.Y * length}
}

func straightFallback(start, end scene.Point) []scene.Point {
	return []scene.Point{{}, end.Sub(start)}
}

// directRoute tries the trivial routes between the stub points before any
// grid search: a straight segment when the points are aligned, otherwise the
// horizontal-first and vertical-first L shapes. A candidate is usable when
// every segment clears the obstacles and the final move satisfies goalDir.
// The candidate whose first move continues startDir is preferred.
func directRoute(a, b scene.Point, startDir, goalDir Direction, rects []Rect) ([]scene.Point, bool) {
	if a.X == b.X || a.Y == b.Y {
		if goalDir != DirNone && DirectionBetween(a, b) != goalDir {
			return nil, false
		}
		if !segmentClear(rects, a, b) {
			return nil, false
		}
		return []scene.Point{a, b}, true
	}

	hFirst := []scene.Point{a, {X: b.X, Y: a.Y}, b}
	vFirst := []scene.Point{a, {X: a.X, Y: b.Y}, b}
	candidates := [2][]scene.Point{hFirst, vFirst}
	if startDir == North || startDir == South {
		candidates[0], candidates[1] = vFirst, hFirst
	}

	for _, cand := range candidates {
		if goalDir != DirNone && DirectionBetween(cand[1], cand[2]) != goalDir {
			continue
		}
		if segmentClear(rects, cand[0], cand[1]) && segmentClear(rects, cand[1], cand[2]) {
			return cand, true
		}
	}
	return nil, false
}

// segmentClear reports whether an axis-aligned segment avoids the interior
// of every obstacle. Running along an obstacle boundary is allowed.
func segmentClear(rects []Rect, a, b scene.Point) bool {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	for _, r := range rects {
		if x1 > r.MinX && x0 < r.MaxX && y1 > r.MinY && y0 < r.MaxY {
			return false
		}
	}
	return true
}

// buildLattice assembles the candidate coordinates paths may travel along:
// the endpoints, every obstacle edge, midpoints between adjacent coordinates
// (so corridors between obstacles stay reachable), and an outer margin.
func buildLattice(rects []Rect, margin float64, points ...scene.Point) *lattice {
	xs := make([]float64, 0, len(rects)*2+len(points)+2)
	ys := make([]float64, 0, len(rects)*2+len(points)+2)
	for _, p := range points {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	for _, r := range rects {
		xs = append(xs, r.MinX, r.MaxX)
		ys = append(ys, r.MinY, r.MaxY)
	}

	xs = expandCoords(xs, margin)
	ys = expandCoords(ys, margin)
	return &lattice{xs: xs, ys: ys}
}

// expandCoords sorts and dedupes coordinates, inserts midpoints between
// neighbors, and adds a margin coordinate on each side.
func expandCoords(coords []float64, margin float64) []float64 {
	sort.Float64s(coords)
	unique := coords[:0]
	for _, c := range coords {
		if len(unique) == 0 || math.Abs(c-unique[len(unique)-1]) > 1e-9 {
			unique = append(unique, c)
		}
	}

	out := make([]float64, 0, len(unique)*2+1)
	out = append(out, unique[0]-margin)
	for i, c := range unique {
		out = append(out, c)
		if i < len(unique)-1 {
			out = append(out, (c+unique[i+1])/2)
		}
	}
	out = append(out, unique[len(unique)-1]+margin)
	return out
}
