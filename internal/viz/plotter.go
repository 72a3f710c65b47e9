// Package viz renders point sets and their detected mirror axes for
// debugging and reporting: static PNG plots via gonum/plot and
// interactive HTML scatter charts via go-echarts. It consumes analyzer
// results and never feeds back into the analysis.
package viz

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mirrorfield/symmetry.report/internal/geom"
	"github.com/mirrorfield/symmetry.report/internal/symmetry"
)

// PlotOptions controls PNG rendering.
type PlotOptions struct {
	Title           string
	IncludeCentroid bool
	// GroupEpsilon buckets points into radius groups for coloring.
	// Zero disables grouping and draws all points in one color.
	GroupEpsilon float64
}

// SavePNG renders the point set and axes to a PNG file at path. Axis
// segments are drawn through the centroid out to 1.1× the set radius
// so they always clear the outermost points.
func SavePNG(ps *geom.PointSet, res symmetry.Result, opts PlotOptions, path string) error {
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("Point set (n=%d, axes=%d)", ps.Len(), len(res.Lines))
	}
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	if opts.GroupEpsilon > 0 {
		groups := ps.RadiusGroups(opts.GroupEpsilon)
		colors := generateColors(len(groups))
		for i, g := range groups {
			xys := make(plotter.XYs, len(g.Points))
			for j, pt := range g.Points {
				xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
			}
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return fmt.Errorf("failed to build scatter for group %d: %w", i, err)
			}
			sc.GlyphStyle.Color = colors[i]
			sc.GlyphStyle.Radius = vg.Points(3)
			p.Add(sc)
			p.Legend.Add(fmt.Sprintf("r=%.3f", g.Distance), sc)
		}
	} else {
		xys := make(plotter.XYs, ps.Len())
		for i, pt := range ps.Points() {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("failed to build scatter: %w", err)
		}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
	}

	if opts.IncludeCentroid {
		c := ps.Centroid()
		sc, err := plotter.NewScatter(plotter.XYs{{X: c.X, Y: c.Y}})
		if err != nil {
			return fmt.Errorf("failed to build centroid marker: %w", err)
		}
		sc.GlyphStyle.Color = color.Black
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
		p.Legend.Add("centroid", sc)
	}

	reach := ps.Radius() * 1.1
	if reach == 0 {
		reach = 1
	}
	for i, l := range res.Lines {
		a, b := l.Endpoints(reach)
		ln, err := plotter.NewLine(plotter.XYs{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}})
		if err != nil {
			return fmt.Errorf("failed to build axis line %d: %w", i, err)
		}
		ln.Width = vg.Points(1)
		p.Add(ln)
		p.Legend.Add(fmt.Sprintf("axis %.1f°", l.Angle*180/math.Pi), ln)
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// generateColors returns n visually distinct colors by walking the hue
// wheel.
func generateColors(n int) []color.Color {
	out := make([]color.Color, n)
	for i := 0; i < n; i++ {
		h := float64(i) / float64(max(n, 1))
		out[i] = hsvToRGB(h*360, 0.75, 0.85)
	}
	return out
}

func hsvToRGB(h, s, v float64) color.Color {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}
