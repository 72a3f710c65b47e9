// Command genpoints writes CSV point fixtures for exercising the
// analyzer: regular polygons with optional rotation, jitter, and an
// extra center point.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
)

var (
	sides    = flag.Int("sides", 4, "Number of polygon vertices")
	radius   = flag.Float64("radius", 1.0, "Circumradius of the polygon")
	rotation = flag.Float64("rotate", 0, "Rotation of the whole shape in degrees")
	jitter   = flag.Float64("jitter", 0, "Uniform per-coordinate noise amplitude")
	center   = flag.Bool("center", false, "Include the center point")
	seed     = flag.Int64("seed", 1, "Noise RNG seed")
	out      = flag.String("out", "", "Output CSV path (default stdout)")
)

func main() {
	flag.Parse()

	if *sides < 1 {
		log.Fatalf("invalid -sides %d: must be at least 1", *sides)
	}

	rng := rand.New(rand.NewSource(*seed))
	rot := *rotation * math.Pi / 180

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()
		w = f
	}

	cw := csv.NewWriter(w)
	writeRow := func(x, y float64) {
		if err := cw.Write([]string{
			strconv.FormatFloat(x, 'g', -1, 64),
			strconv.FormatFloat(y, 'g', -1, 64),
		}); err != nil {
			log.Fatalf("failed to write row: %v", err)
		}
	}

	count := 0
	for i := 0; i < *sides; i++ {
		a := rot + 2*math.Pi*float64(i)/float64(*sides)
		x := *radius * math.Cos(a)
		y := *radius * math.Sin(a)
		if *jitter > 0 {
			x += (rng.Float64()*2 - 1) * *jitter
			y += (rng.Float64()*2 - 1) * *jitter
		}
		writeRow(x, y)
		count++
	}
	if *center {
		writeRow(0, 0)
		count++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Fatalf("failed to flush output: %v", err)
	}
	if *out != "" {
		fmt.Fprintf(os.Stderr, "wrote %d points to %s\n", count, *out)
	}
}
