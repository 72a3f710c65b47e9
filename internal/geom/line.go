package geom

import "math"

// Line is a canonical mirror-axis candidate: an undirected line through
// Anchor at Angle radians. Angle is always normalized into [0, π)
// because an axis and its opposite direction are the same line.
type Line struct {
	Angle  float64 `json:"angle"`
	Anchor Point   `json:"anchor"`
}

// NewLine constructs a Line with the angle normalized into [0, π).
func NewLine(angle float64, anchor Point) Line {
	return Line{Angle: NormalizeAxisAngle(angle), Anchor: anchor}
}

// NormalizeAxisAngle maps an arbitrary direction angle onto the
// canonical axis range [0, π).
func NormalizeAxisAngle(a float64) float64 {
	a = math.Mod(a, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	if a == math.Pi { // Mod can land exactly on π for tiny negatives
		a = 0
	}
	return a
}

// AxisAngleDiff returns the smallest angular difference between two
// axis angles, accounting for the wrap at π. The result is in [0, π/2].
func AxisAngleDiff(a, b float64) float64 {
	d := math.Abs(NormalizeAxisAngle(a) - NormalizeAxisAngle(b))
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}

// SameAxis reports whether l and m describe the same axis direction
// within angleEps. Anchors are not compared; the analyzer only ever
// constructs lines anchored at the centroid.
func (l Line) SameAxis(m Line, angleEps float64) bool {
	return AxisAngleDiff(l.Angle, m.Angle) <= angleEps
}

// Direction returns the unit direction vector of the line.
func (l Line) Direction() (dx, dy float64) {
	sin, cos := math.Sincos(l.Angle)
	return cos, sin
}

// Endpoints returns the two points on the line at distance radius
// either side of the anchor. Used by the visualizers to draw a finite
// segment for an infinite axis.
func (l Line) Endpoints(radius float64) (Point, Point) {
	dx, dy := l.Direction()
	a := Point{X: l.Anchor.X + dx*radius, Y: l.Anchor.Y + dy*radius}
	b := Point{X: l.Anchor.X - dx*radius, Y: l.Anchor.Y - dy*radius}
	return a, b
}
