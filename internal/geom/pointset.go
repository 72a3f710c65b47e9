package geom

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptyPointSet is returned when an operation requires at least one
// point and the set has none.
var ErrEmptyPointSet = errors.New("point set is empty")

// PointSet is an ordered, immutable collection of points with cached
// aggregate geometry. Transformations return new sets.
type PointSet struct {
	pts      []Point
	centroid Point
	radius   float64
}

// NewPointSet validates the input points and builds a PointSet. The
// centroid and radius are computed once at construction. An empty
// input returns ErrEmptyPointSet; a non-finite coordinate returns a
// *CoordinateError.
func NewPointSet(pts []Point) (*PointSet, error) {
	if len(pts) == 0 {
		return nil, ErrEmptyPointSet
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return nil, &CoordinateError{X: p.X, Y: p.Y}
		}
		xs[i] = p.X
		ys[i] = p.Y
	}
	own := make([]Point, len(pts))
	copy(own, pts)
	s := &PointSet{
		pts:      own,
		centroid: Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)},
	}
	for _, p := range own {
		if d := p.DistanceTo(s.centroid); d > s.radius {
			s.radius = d
		}
	}
	return s, nil
}

// NewPointSetFromCoords builds a PointSet from raw coordinate pairs,
// validating each through NewPoint.
func NewPointSetFromCoords(coords [][2]float64) (*PointSet, error) {
	pts := make([]Point, 0, len(coords))
	for _, c := range coords {
		p, err := NewPoint(c[0], c[1])
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return NewPointSet(pts)
}

// Len returns the number of points in the set.
func (s *PointSet) Len() int { return len(s.pts) }

// Points returns a copy of the ordered points.
func (s *PointSet) Points() []Point {
	out := make([]Point, len(s.pts))
	copy(out, s.pts)
	return out
}

// At returns the point at index i.
func (s *PointSet) At(i int) Point { return s.pts[i] }

// Centroid returns the arithmetic mean position of the set.
func (s *PointSet) Centroid() Point { return s.centroid }

// Radius returns the maximum distance from the centroid to any point.
func (s *PointSet) Radius() float64 { return s.radius }

// Collapsed reports whether every point lies within eps of the
// centroid, i.e. the set is a single effective location.
func (s *PointSet) Collapsed(eps float64) bool {
	return s.radius <= eps
}

// ReflectAll returns a new PointSet with every point reflected across
// l. Length and ordering are preserved position-for-position.
func (s *PointSet) ReflectAll(l Line) *PointSet {
	out := make([]Point, len(s.pts))
	for i, p := range s.pts {
		out[i] = p.Reflect(l)
	}
	// Construction cannot fail: reflection of finite points is finite.
	r, _ := NewPointSet(out)
	return r
}

// RadiusGroup is a bucket of points whose distances to the centroid
// agree within the grouping epsilon. Groups are ordered by descending
// distance.
type RadiusGroup struct {
	Distance float64
	Points   []Point
}

// RadiusGroups partitions the set by distance-to-centroid, chaining
// consecutive distances that agree within eps into one group. Only
// points in the same group can be mirror images of each other across
// an axis through the centroid, which is what makes the grouping
// useful for candidate pruning.
func (s *PointSet) RadiusGroups(eps float64) []RadiusGroup {
	type rp struct {
		d float64
		p Point
	}
	rps := make([]rp, len(s.pts))
	for i, p := range s.pts {
		rps[i] = rp{d: p.DistanceTo(s.centroid), p: p}
	}
	sort.SliceStable(rps, func(i, j int) bool { return rps[i].d > rps[j].d })

	var groups []RadiusGroup
	for _, e := range rps {
		if n := len(groups); n > 0 && groups[n-1].Distance-e.d <= eps {
			groups[n-1].Points = append(groups[n-1].Points, e.p)
			continue
		}
		groups = append(groups, RadiusGroup{Distance: e.d, Points: []Point{e.p}})
	}
	return groups
}

// polarKey is one entry of the radius signature: a point expressed as
// (distance, angle) about the reference point.
type polarKey struct {
	r     float64
	theta float64
	pt    Point
}

// polarSignature orders the points canonically about ref: primary key
// ascending distance, secondary key ascending angle within each
// distance band. Angles within a band whose wrap-around neighbour at
// 2π would sort them apart are canonicalized to negative values first,
// so a point just above angle 0 and its mirror just below 2π occupy
// the same rank.
func polarSignature(pts []Point, ref Point, eps float64) []polarKey {
	keys := make([]polarKey, len(pts))
	for i, p := range pts {
		keys[i] = polarKey{r: p.DistanceTo(ref), theta: p.AngleFrom(ref), pt: p}
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].r < keys[j].r })

	// Walk distance bands and sort each by canonical angle.
	for lo := 0; lo < len(keys); {
		hi := lo + 1
		for hi < len(keys) && keys[hi].r-keys[hi-1].r <= eps {
			hi++
		}
		band := keys[lo:hi]
		angTol := math.Pi
		if r := band[len(band)-1].r; r > eps {
			angTol = eps / r
		}
		for i := range band {
			if band[i].theta >= 2*math.Pi-angTol {
				band[i].theta -= 2 * math.Pi
			}
		}
		sort.SliceStable(band, func(i, j int) bool { return band[i].theta < band[j].theta })
		lo = hi
	}
	return keys
}

// EqualsAsSet reports whether there is a bijection between s and other
// under which every matched pair is coincident within eps. The check
// uses the radius signature about s's centroid: both sets are sorted
// by (distance, angle) and compared rank by rank, which is valid
// because reflection about a line through the centroid preserves
// distance-to-centroid. Coincident clusters are handled as multisets
// by the stable band sort.
func (s *PointSet) EqualsAsSet(other *PointSet, eps float64) bool {
	if other == nil || len(s.pts) != len(other.pts) {
		return false
	}
	ref := s.centroid
	a := polarSignature(s.pts, ref, eps)
	b := polarSignature(other.pts, ref, eps)
	for i := range a {
		if a[i].r <= eps && b[i].r <= eps {
			// Both effectively at the reference point.
			continue
		}
		if math.Abs(a[i].r-b[i].r) > eps {
			return false
		}
		if a[i].pt.DistanceTo(b[i].pt) > eps {
			return false
		}
	}
	return true
}
