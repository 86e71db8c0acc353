package geometry

import (
	"math"

	"tether/scene"
)

// DistanceToShape returns 0 when the point is inside the shape, otherwise
// the distance from the point to the shape's perimeter. Rectangles use exact
// box distance; ellipses and diamonds use the radial distance along the ray
// from the center, consistent with how EdgePoint places edge points.
func DistanceToShape(s scene.Shape, p scene.Point) float64 {
	local := WorldToLocal(s, p)
	hw := s.Width / 2
	hh := s.Height / 2

	switch s.Type {
	case scene.Ellipse:
		return radialOutsideDistance(local, ellipseRadius(local, hw, hh))
	case scene.Diamond:
		return radialOutsideDistance(local, diamondRadius(local, hw, hh))
	case scene.Rectangle, scene.Text, scene.Image, scene.Line, scene.Arrow, scene.FreeDraw:
		dx := math.Abs(local.X) - hw
		dy := math.Abs(local.Y) - hh
		if dx <= 0 && dy <= 0 {
			return 0
		}
		return math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	default:
		return math.Hypot(local.X, local.Y)
	}
}

// InnerDistanceToEdge returns the distance from an inside point to the
// nearest perimeter point, and 0 for points on or outside the perimeter.
func InnerDistanceToEdge(s scene.Shape, p scene.Point) float64 {
	local := WorldToLocal(s, p)
	hw := s.Width / 2
	hh := s.Height / 2

	switch s.Type {
	case scene.Ellipse:
		return radialInsideDistance(local, ellipseRadius(local, hw, hh))
	case scene.Diamond:
		return radialInsideDistance(local, diamondRadius(local, hw, hh))
	case scene.Rectangle, scene.Text, scene.Image, scene.Line, scene.Arrow, scene.FreeDraw:
		dx := hw - math.Abs(local.X)
		dy := hh - math.Abs(local.Y)
		if dx < 0 || dy < 0 {
			return 0
		}
		return math.Min(dx, dy)
	default:
		return 0
	}
}

// DistanceToCenter returns the distance from a world point to the shape's
// center.
func DistanceToCenter(s scene.Shape, p scene.Point) float64 {
	return s.Center().DistanceTo(p)
}

// ellipseRadius is the boundary radius of the ellipse along the geometric
// ray through local: hw·hh / hypot(hh·cosθ, hw·sinθ). Any point on the
// perimeter measures exactly this radius along its own ray, whatever the
// eccentricity.
func ellipseRadius(local scene.Point, hw, hh float64) float64 {
	if hw <= 0 || hh <= 0 {
		return 0
	}
	theta := math.Atan2(local.Y, local.X)
	sin, cos := math.Sincos(theta)
	return hw * hh / math.Hypot(hh*cos, hw*sin)
}

// diamondRadius is the boundary radius along the ray through local.
func diamondRadius(local scene.Point, hw, hh float64) float64 {
	if hw <= 0 || hh <= 0 {
		return 0
	}
	theta := math.Atan2(local.Y, local.X)
	sin, cos := math.Sincos(theta)
	denom := math.Abs(cos)/hw + math.Abs(sin)/hh
	if denom == 0 {
		return 0
	}
	return 1 / denom
}

func radialOutsideDistance(local scene.Point, boundary float64) float64 {
	r := math.Hypot(local.X, local.Y)
	if r <= boundary {
		return 0
	}
	return r - boundary
}

func radialInsideDistance(local scene.Point, boundary float64) float64 {
	r := math.Hypot(local.X, local.Y)
	if r >= boundary {
		return 0
	}
	return boundary - r
}
