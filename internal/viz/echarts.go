package viz

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mirrorfield/symmetry.report/internal/geom"
	"github.com/mirrorfield/symmetry.report/internal/symmetry"
)

// RenderHTML writes an interactive scatter chart of the point set with
// its detected axes overlaid as line series. Points carry their radius
// group index as a third dimension so the visual map colors mirror
// partners identically.
func RenderHTML(w io.Writer, title string, ps *geom.PointSet, res symmetry.Result, groupEps float64) error {
	groups := ps.RadiusGroups(groupEps)

	data := make([]opts.ScatterData, 0, ps.Len())
	maxAbs := 0.0
	for gi, g := range groups {
		for _, pt := range g.Points {
			if math.Abs(pt.X) > maxAbs {
				maxAbs = math.Abs(pt.X)
			}
			if math.Abs(pt.Y) > maxAbs {
				maxAbs = math.Abs(pt.Y)
			}
			data = append(data, opts.ScatterData{Value: []interface{}{pt.X, pt.Y, gi}})
		}
	}

	// Add a small padding so points at the edges are visible.
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	subtitle := fmt.Sprintf("n=%d axes=%d", ps.Len(), len(res.Lines))
	if res.Infinite {
		subtitle = fmt.Sprintf("n=%d infinite symmetry", ps.Len())
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(max(len(groups)-1, 1)),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#b5de2b", "#fde725"}},
		}),
	)
	scatter.AddSeries("points", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	reach := ps.Radius() * 1.1
	if reach == 0 {
		reach = 1
	}
	for _, l := range res.Lines {
		a, b := l.Endpoints(reach)
		line := charts.NewLine()
		line.AddSeries(
			fmt.Sprintf("axis %.1f°", l.Angle*180/math.Pi),
			[]opts.LineData{
				{Value: []interface{}{a.X, a.Y}},
				{Value: []interface{}{b.X, b.Y}},
			},
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		)
		scatter.Overlap(line)
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
