package viz

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mirrorfield/symmetry.report/internal/geom"
	"github.com/mirrorfield/symmetry.report/internal/symmetry"
	"github.com/mirrorfield/symmetry.report/internal/testutil"
)

func squareResult(t *testing.T) (*geom.PointSet, symmetry.Result) {
	t.Helper()
	ps := testutil.MustPointSet(t, testutil.RegularPolygon(4, 1, 0))
	res, err := symmetry.FindSymmetryLines(ps, symmetry.Config{PointEpsilon: 1e-6, AngleEpsilon: 1e-6})
	testutil.AssertNoError(t, err)
	return ps, res
}

func TestSavePNG(t *testing.T) {
	ps, res := squareResult(t)
	path := filepath.Join(t.TempDir(), "square.png")

	opts := PlotOptions{IncludeCentroid: true, GroupEpsilon: 1e-6}
	testutil.AssertNoError(t, SavePNG(ps, res, opts, path))

	info, err := os.Stat(path)
	testutil.AssertNoError(t, err)
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestSavePNGWithoutGrouping(t *testing.T) {
	ps, res := squareResult(t)
	path := filepath.Join(t.TempDir(), "plain.png")
	testutil.AssertNoError(t, SavePNG(ps, res, PlotOptions{}, path))
}

func TestRenderHTML(t *testing.T) {
	ps, res := squareResult(t)

	var buf bytes.Buffer
	testutil.AssertNoError(t, RenderHTML(&buf, "square", ps, res, 1e-6))

	html := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("echarts")) {
		t.Error("output does not look like an echarts page")
	}
	for _, want := range []string{"square", "axis"} {
		if !contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderHTMLInfinite(t *testing.T) {
	ps := testutil.MustPointSet(t, []geom.Point{{X: 5, Y: 5}, {X: 5, Y: 5}})
	res := symmetry.Result{Infinite: true}

	var buf bytes.Buffer
	testutil.AssertNoError(t, RenderHTML(&buf, "degenerate", ps, res, 1e-6))
	if !contains(buf.String(), "infinite symmetry") {
		t.Error("subtitle should flag infinite symmetry")
	}
}

func contains(s, sub string) bool {
	return bytes.Contains([]byte(s), []byte(sub))
}
