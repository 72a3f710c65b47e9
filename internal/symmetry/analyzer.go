// Package symmetry implements mirror-axis detection for finite planar
// point sets. Given a point set and a pair of tolerances it enumerates
// every line across which reflecting the set reproduces the set.
//
// The search space is pruned by the centroid invariant: reflection is
// an isometry and the centroid is invariant under any isometry that
// maps the set onto itself, so every valid axis passes through the
// centroid and is fully described by a single angle in [0, π).
package symmetry

import (
	"math"
	"sort"
	"sync"

	"github.com/mirrorfield/symmetry.report/internal/geom"
)

// Config carries the analyzer tolerances. Both epsilons are required;
// Validate rejects zero, negative, and non-finite values.
type Config struct {
	// PointEpsilon is the maximum distance at which two points count
	// as the same location, in the units of the input coordinates.
	PointEpsilon float64

	// AngleEpsilon is the maximum angular difference, in radians, at
	// which two candidate axes count as the same line (mod π).
	AngleEpsilon float64

	// Workers bounds the number of goroutines used for candidate
	// verification. Zero or one runs serially. Parallelism does not
	// affect results; accepted axes are always assembled in angle
	// order.
	Workers int
}

// Validate checks that both tolerances are positive finite values.
func (c Config) Validate() error {
	check := func(field string, v float64) error {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return &ConfigError{Field: field, Reason: "must be finite"}
		case v <= 0:
			return &ConfigError{Field: field, Reason: "must be positive (missing values are not defaulted)"}
		}
		return nil
	}
	if err := check("point_epsilon", c.PointEpsilon); err != nil {
		return err
	}
	if err := check("angle_epsilon", c.AngleEpsilon); err != nil {
		return err
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "workers", Reason: "must be non-negative"}
	}
	return nil
}

// Result is the outcome of an analysis. It is a tagged variant: either
// the degenerate infinite-symmetry marker (the set collapses to one
// effective location, so every line through it is an axis) or a finite
// list of verified axes sorted ascending by angle. Callers must check
// Infinite before iterating Lines.
type Result struct {
	Infinite bool        `json:"infinite"`
	Lines    []geom.Line `json:"lines"`
}

// Analyzer finds the mirror axes of point sets under a fixed Config.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer validates cfg and returns an Analyzer.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg}, nil
}

// FindSymmetryLines validates cfg and analyzes ps in one call.
func FindSymmetryLines(ps *geom.PointSet, cfg Config) (Result, error) {
	a, err := NewAnalyzer(cfg)
	if err != nil {
		return Result{}, err
	}
	return a.FindSymmetryLines(ps)
}

// FindSymmetryLines returns every verified mirror axis of ps, sorted
// ascending by angle, or the infinite-symmetry marker for a collapsed
// set. An empty or nil set returns geom.ErrEmptyPointSet.
func (a *Analyzer) FindSymmetryLines(ps *geom.PointSet) (Result, error) {
	if ps == nil || ps.Len() == 0 {
		return Result{}, geom.ErrEmptyPointSet
	}
	if ps.Collapsed(a.cfg.PointEpsilon) {
		return Result{Infinite: true}, nil
	}

	candidates := a.dedupeAngles(a.candidateAngles(ps))
	accepted, tested := a.verifyCandidates(ps, candidates)
	accepted = a.inferClosure(ps, accepted, tested)

	sort.Float64s(accepted)
	lines := make([]geom.Line, len(accepted))
	for i, ang := range accepted {
		lines[i] = geom.NewLine(ang, ps.Centroid())
	}
	return Result{Lines: lines}, nil
}

// candidateAngles generates the raw axis candidates: the ray from the
// centroid through each off-centroid point, and the perpendicular
// bisector direction for each pair of points at equal distance from
// the centroid. Any true axis must be one of these, because each point
// is either fixed by the reflection (it lies on the axis) or swapped
// with a partner at the same radius.
func (a *Analyzer) candidateAngles(ps *geom.PointSet) []float64 {
	c := ps.Centroid()
	eps := a.cfg.PointEpsilon

	var angles []float64
	for _, p := range ps.Points() {
		if p.Coincident(c, eps) {
			continue
		}
		angles = append(angles, geom.NormalizeAxisAngle(p.AngleFrom(c)))
	}

	for _, g := range ps.RadiusGroups(eps) {
		if g.Distance <= eps || len(g.Points) < 2 {
			continue
		}
		for i := 0; i < len(g.Points); i++ {
			for j := i + 1; j < len(g.Points); j++ {
				pi, pj := g.Points[i], g.Points[j]
				mid := geom.Point{X: (pi.X + pj.X) / 2, Y: (pi.Y + pj.Y) / 2}
				if mid.Coincident(c, eps) {
					// Diametrically opposite pair: the bisector through
					// the centroid is perpendicular to the chord.
					chord := math.Atan2(pj.Y-pi.Y, pj.X-pi.X)
					angles = append(angles, geom.NormalizeAxisAngle(chord+math.Pi/2))
					continue
				}
				angles = append(angles, geom.NormalizeAxisAngle(mid.AngleFrom(c)))
			}
		}
	}
	return angles
}

// dedupeAngles clusters candidate angles within AngleEpsilon (mod π)
// and keeps the smallest angle of each cluster as representative. The
// first and last clusters are additionally checked against each other
// across the wrap at π.
func (a *Analyzer) dedupeAngles(angles []float64) []float64 {
	if len(angles) == 0 {
		return nil
	}
	sort.Float64s(angles)
	reps := []float64{angles[0]}
	last := angles[0]
	for _, ang := range angles[1:] {
		if ang-last <= a.cfg.AngleEpsilon {
			last = ang
			continue
		}
		reps = append(reps, ang)
		last = ang
	}
	// Merge the wrap-around pair: an angle just below π is the same
	// axis as one just above 0.
	if len(reps) > 1 && math.Pi-last+reps[0] <= a.cfg.AngleEpsilon {
		reps = reps[:len(reps)-1]
	}
	return reps
}

// verifyCandidates reflects the set across each candidate axis and
// keeps the candidates under which the reflected set equals the
// original. Verification is independent per candidate, so it fans out
// across Workers goroutines when configured; the returned slices are
// in candidate order regardless of scheduling.
func (a *Analyzer) verifyCandidates(ps *geom.PointSet, candidates []float64) (accepted, tested []float64) {
	ok := make([]bool, len(candidates))

	workers := a.cfg.Workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers <= 1 {
		for i, ang := range candidates {
			ok[i] = a.isSymmetryAxis(ps, ang)
		}
	} else {
		var wg sync.WaitGroup
		next := make(chan int)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range next {
					ok[i] = a.isSymmetryAxis(ps, candidates[i])
				}
			}()
		}
		for i := range candidates {
			next <- i
		}
		close(next)
		wg.Wait()
	}

	for i, ang := range candidates {
		if ok[i] {
			accepted = append(accepted, ang)
		}
	}
	return accepted, append([]float64(nil), candidates...)
}

// isSymmetryAxis reports whether the axis through the centroid at ang
// maps the set onto itself within PointEpsilon.
func (a *Analyzer) isSymmetryAxis(ps *geom.PointSet, ang float64) bool {
	line := geom.NewLine(ang, ps.Centroid())
	return ps.EqualsAsSet(ps.ReflectAll(line), a.cfg.PointEpsilon)
}

// inferClosure extends the accepted axes with axes implied by the
// group structure: the composition of reflections across two axes at
// angles p and q is a rotation by 2(q-p), so 2q-p and 2p-q are also
// axes whenever the set is symmetric under that rotation. Inferred
// angles are still verified before acceptance; the inference only
// steers which extra angles get tested.
func (a *Analyzer) inferClosure(ps *geom.PointSet, accepted, tested []float64) []float64 {
	const maxRounds = 16
	for round := 0; round < maxRounds; round++ {
		var fresh []float64
		for i := 0; i < len(accepted); i++ {
			for j := 0; j < len(accepted); j++ {
				if i == j {
					continue
				}
				inferred := geom.NormalizeAxisAngle(2*accepted[j] - accepted[i])
				if angleSeen(tested, inferred, a.cfg.AngleEpsilon) {
					continue
				}
				tested = append(tested, inferred)
				if a.isSymmetryAxis(ps, inferred) {
					fresh = append(fresh, inferred)
				}
			}
		}
		if len(fresh) == 0 {
			return accepted
		}
		accepted = append(accepted, fresh...)
	}
	return accepted
}

// angleSeen reports whether ang lies within angleEps (mod π) of any
// angle already in list.
func angleSeen(list []float64, ang, angleEps float64) bool {
	for _, v := range list {
		if geom.AxisAngleDiff(v, ang) <= angleEps {
			return true
		}
	}
	return false
}
