// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code
// duplication across test files: basic assertions plus shape
// generators for symmetry tests.
package testutil

import (
	"math"
	"testing"

	"github.com/mirrorfield/symmetry.report/internal/geom"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertInDelta fails unless got is within delta of want.
func AssertInDelta(t *testing.T, got, want, delta float64) {
	t.Helper()
	if math.Abs(got-want) > delta {
		t.Errorf("got %v, want %v (±%v)", got, want, delta)
	}
}

// RegularPolygon returns the k vertices of a regular k-gon with the
// given circumradius, centered on the origin and rotated by rot
// radians.
func RegularPolygon(k int, radius, rot float64) []geom.Point {
	pts := make([]geom.Point, k)
	for i := 0; i < k; i++ {
		a := rot + 2*math.Pi*float64(i)/float64(k)
		pts[i] = geom.Point{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return pts
}

// MustPointSet builds a PointSet or fails the test.
func MustPointSet(t *testing.T, pts []geom.Point) *geom.PointSet {
	t.Helper()
	ps, err := geom.NewPointSet(pts)
	if err != nil {
		t.Fatalf("failed to build point set: %v", err)
	}
	return ps
}
