// Command axes runs a batch symmetry analysis over a point dataset
// from a CSV file or the SQLite dataset store, printing the detected
// mirror axes and optionally rendering a PNG plot.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/mirrorfield/symmetry.report/internal/config"
	"github.com/mirrorfield/symmetry.report/internal/geom"
	"github.com/mirrorfield/symmetry.report/internal/importer"
	"github.com/mirrorfield/symmetry.report/internal/pointdb"
	"github.com/mirrorfield/symmetry.report/internal/symmetry"
	"github.com/mirrorfield/symmetry.report/internal/viz"
)

var (
	inputFile  = flag.String("input", "", "Path to a CSV file of x,y points")
	dbFile     = flag.String("db", "", "Path to the SQLite dataset store (use with -dataset)")
	dataset    = flag.String("dataset", "", "Name of a stored dataset to analyze")
	configFile = flag.String("config", "", "Path to a JSON tolerance config")
	pointEps   = flag.Float64("point-eps", 0, "Point coincidence tolerance (overrides config)")
	angleEps   = flag.Float64("angle-eps", 0, "Axis merge tolerance in radians (overrides config)")
	workers    = flag.Int("workers", 0, "Verification worker count (0 = serial)")
	plotFile   = flag.String("plot", "", "Optional PNG output path")
)

func loadConfig() (symmetry.Config, error) {
	cfg := symmetry.Config{Workers: *workers}
	if *configFile != "" {
		tc, err := config.LoadToleranceConfig(*configFile)
		if err != nil {
			return symmetry.Config{}, err
		}
		cfg, err = tc.AnalyzerConfig()
		if err != nil {
			return symmetry.Config{}, err
		}
	}
	if *pointEps > 0 {
		cfg.PointEpsilon = *pointEps
	}
	if *angleEps > 0 {
		cfg.AngleEpsilon = *angleEps
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	return cfg, cfg.Validate()
}

func loadPoints() (*geom.PointSet, error) {
	switch {
	case *inputFile != "":
		return importer.LoadPointSet(*inputFile)
	case *dataset != "":
		if *dbFile == "" {
			return nil, fmt.Errorf("-dataset requires -db")
		}
		db, err := pointdb.Open(*dbFile)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.LoadDataset(*dataset)
	default:
		return nil, fmt.Errorf("one of -input or -dataset is required")
	}
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ps, err := loadPoints()
	if err != nil {
		log.Fatalf("failed to load points: %v", err)
	}

	res, err := symmetry.FindSymmetryLines(ps, cfg)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	c := ps.Centroid()
	fmt.Printf("points: %d  centroid: (%.6f, %.6f)\n", ps.Len(), c.X, c.Y)
	if res.Infinite {
		fmt.Println("infinite symmetry: the set collapses to a single location; every line through it is an axis")
	} else if len(res.Lines) == 0 {
		fmt.Println("no symmetry lines found")
	} else {
		fmt.Printf("symmetry lines: %d\n", len(res.Lines))
		for i, l := range res.Lines {
			fmt.Printf("  %2d: %8.3f° (%.6f rad)\n", i+1, l.Angle*180/math.Pi, l.Angle)
		}
	}

	if *plotFile != "" {
		opts := viz.PlotOptions{IncludeCentroid: true, GroupEpsilon: cfg.PointEpsilon}
		if err := viz.SavePNG(ps, res, opts, *plotFile); err != nil {
			log.Fatalf("failed to write plot: %v", err)
		}
		fmt.Fprintf(os.Stderr, "wrote plot to %s\n", *plotFile)
	}
}
