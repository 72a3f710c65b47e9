// Package importer reads planar point data from CSV sources. Each row
// is an x,y coordinate pair; blank lines are skipped and rows with
// fewer than two fields are rejected. The importer only produces the
// raw point sequence; set construction and validation live in geom.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mirrorfield/symmetry.report/internal/geom"
)

// ReadPoints decodes x,y rows from r.
func ReadPoints(r io.Reader) ([]geom.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row width validated manually
	cr.TrimLeadingSpace = true

	var pts []geom.Point
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: missing x,y coordinates in %q", line, row)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid x %q: %w", line, row[0], err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid y %q: %w", line, row[1], err)
		}
		p, err := geom.NewPoint(x, y)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// ReadFile reads points from the CSV file at path.
func ReadFile(path string) ([]geom.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open points file: %w", err)
	}
	defer f.Close()

	pts, err := ReadPoints(f)
	if err != nil {
		return nil, fmt.Errorf("failed to extract coordinates from %s: %w", path, err)
	}
	return pts, nil
}

// LoadPointSet reads the CSV file at path and wraps it into a
// PointSet. An empty file surfaces geom.ErrEmptyPointSet.
func LoadPointSet(path string) (*geom.PointSet, error) {
	pts, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return geom.NewPointSet(pts)
}
