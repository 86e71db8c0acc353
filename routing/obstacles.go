package routing

import (
	"tether/geometry"
	"tether/scene"
)

// Rect is an axis-aligned obstacle rectangle in world space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// ContainsStrict checks if a point is strictly inside the rectangle. Points
// on the boundary are allowed, so paths can run along an obstacle's edge
// without entering it.
func (r Rect) ContainsStrict(p scene.Point) bool {
	return p.X > r.MinX && p.X < r.MaxX &&
		p.Y > r.MinY && p.Y < r.MaxY
}

// Inflate grows the rectangle by pad on every side.
func (r Rect) Inflate(pad float64) Rect {
	return Rect{
		MinX: r.MinX - pad,
		MinY: r.MinY - pad,
		MaxX: r.MaxX + pad,
		MaxY: r.MaxY + pad,
	}
}

// ObstacleChecker reports whether a world point is blocked.
type ObstacleChecker func(scene.Point) bool

// ObstacleRects collects the obstacle rectangles for a scene: every visible
// connectable shape except the excluded ids (the connector's own bound
// targets). Rotated shapes contribute their rotated bounding box. Each rect
// is inflated by pad so paths keep clearance from the shapes they skirt.
func ObstacleRects(shapes []scene.Shape, exclude map[string]bool, pad float64) []Rect {
	rects := make([]Rect, 0, len(shapes))
	for i := range shapes {
		s := &shapes[i]
		if !s.Visible || !s.Connectable() || exclude[s.ID] {
			continue
		}
		min, max := geometry.RotatedAABB(*s)
		rects = append(rects, Rect{MinX: min.X, MinY: min.Y, MaxX: max.X, MaxY: max.Y}.Inflate(pad))
	}
	return rects
}

// CheckerForRects combines obstacle rectangles into a single checker.
func CheckerForRects(rects []Rect) ObstacleChecker {
	return func(p scene.Point) bool {
		for _, r := range rects {
			if r.ContainsStrict(p) {
				return true
			}
		}
		return false
	}
}
