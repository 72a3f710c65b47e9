// Package geom provides the planar geometry primitives used by the
// symmetry analyzer: immutable 2D points, canonical axis lines, and
// ordered point sets with tolerance-aware set comparison.
//
// All tolerances are explicit parameters. There is no package-level
// epsilon, so the same primitives behave identically under different
// tolerance regimes.
package geom

import (
	"fmt"
	"math"
)

// CoordinateError reports a non-finite coordinate supplied to a
// geometric constructor or operation.
type CoordinateError struct {
	X, Y float64
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("non-finite coordinate (%v, %v)", e.X, e.Y)
}

// Point is an immutable 2D coordinate. Construct via NewPoint so that
// non-finite inputs are rejected up front rather than propagating NaNs
// through the analysis.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint validates and constructs a Point. Both coordinates must be
// finite.
func NewPoint(x, y float64) (Point, error) {
	if !isFinite(x) || !isFinite(y) {
		return Point{}, &CoordinateError{X: x, Y: y}
	}
	return Point{X: x, Y: y}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Coincident reports whether p and q are within eps of each other.
func (p Point) Coincident(q Point, eps float64) bool {
	return p.DistanceTo(q) <= eps
}

// AngleFrom returns the polar angle of p as seen from origin o, in
// [0, 2π).
func (p Point) AngleFrom(o Point) float64 {
	a := math.Atan2(p.Y-o.Y, p.X-o.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Reflect returns the mirror image of p across line l. The reflection
// is analytic: the vector from the line's anchor to p is decomposed
// into components parallel and perpendicular to the line direction,
// and the perpendicular component is negated.
func (p Point) Reflect(l Line) Point {
	dx, dy := l.Direction()
	vx := p.X - l.Anchor.X
	vy := p.Y - l.Anchor.Y
	par := vx*dx + vy*dy  // component along the line
	perp := vx*dy - vy*dx // signed component across the line
	return Point{
		X: l.Anchor.X + par*dx - perp*dy,
		Y: l.Anchor.Y + par*dy + perp*dx,
	}
}

// Rotate returns p rotated by angle radians (counter-clockwise) about
// the point around.
func (p Point) Rotate(angle float64, around Point) Point {
	sin, cos := math.Sincos(angle)
	vx := p.X - around.X
	vy := p.Y - around.Y
	return Point{
		X: around.X + vx*cos - vy*sin,
		Y: around.Y + vx*sin + vy*cos,
	}
}
