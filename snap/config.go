// Package snap decides which shape a connector endpoint being dragged should
// attach to, and whether the attachment is edge-precise or center-auto.
package snap

// Config holds the snapping tunables. Thresholds are exposed rather than
// hardcoded so hosts and tests can tighten or loosen capture behavior.
type Config struct {
	// EdgeSnapThreshold is the maximum distance from a shape's perimeter at
	// which the shape can still capture an endpoint.
	EdgeSnapThreshold float64

	// EdgeInnerBand is the width of the zone just inside the perimeter that
	// selects edge mode; deeper inside the shape selects center mode.
	EdgeInnerBand float64

	// HysteresisMargin widens or narrows the inner band depending on the
	// previous mode, so cursor jitter on the boundary cannot flap the mode.
	HysteresisMargin float64

	// DefaultGap is the clearance between a connector tip and the shape
	// edge when the caller does not specify one.
	DefaultGap float64
}

// DefaultConfig returns sensible snapping defaults.
func DefaultConfig() Config {
	return Config{
		EdgeSnapThreshold: 24,
		EdgeInnerBand:     20,
		HysteresisMargin:  6,
		DefaultGap:        4,
	}
}
