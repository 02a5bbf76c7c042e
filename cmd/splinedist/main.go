// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// splinedist tabulates a basis-spline density over its domain and
// optionally renders it to a PNG.
//
// Usage:
//
//	splinedist -variant logy -df 8 -min 1 -max 100 -coefs 0,0.5,1,1,0.5,0,0,0 [-powerlaw -2.3] [-plot out.png]
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sharanbngr/gwinferno/dists"
	"github.com/sharanbngr/gwinferno/splines"
)

func main() {
	var (
		variant  = flag.String("variant", "logy", "spline variant: mspline, bspline, logx, logy, logxlogy")
		df       = flag.Int("df", 8, "degrees of freedom")
		order    = flag.Int("order", 4, "spline order (4 = cubic)")
		min      = flag.Float64("min", 0, "domain lower bound")
		max      = flag.Float64("max", 1, "domain upper bound")
		coefsArg = flag.String("coefs", "", "comma-separated coefficients, one per degree of freedom")
		points   = flag.Int("points", 100, "number of output points")
		plAlpha  = flag.Float64("powerlaw", 0, "multiply by a power-law baseline with this index (0 disables)")
		plotFile = flag.String("plot", "", "write a PNG of the density to this file")
	)
	flag.Parse()

	coefs, err := parseCoefs(*coefsArg, *df)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := splines.Config{
		KnotConfig: splines.KnotConfig{DF: *df, Order: *order, Min: *min, Max: *max},
		Normalize:  true,
	}
	basis, err := newBasis(*variant, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	grid := floats.Span(make([]float64, *points), *min, *max)
	dens := basis.Eval(grid, coefs)

	if *plAlpha != 0 {
		shape := dists.PowerlawShape{Alpha: *plAlpha, Low: *min, High: *max}
		floats.Mul(dens, shape.PDFEach(grid))
		floats.Scale(1/integrate.Trapezoidal(grid, dens), dens)
	}

	for i, x := range grid {
		fmt.Printf("%.6g %.6g\n", x, dens[i])
	}

	if *plotFile != "" {
		if err := savePlot(grid, dens, *plotFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func parseCoefs(s string, df int) ([]float64, error) {
	if s == "" {
		// Flat perturbation.
		coefs := make([]float64, df)
		for i := range coefs {
			coefs[i] = 1
		}
		return coefs, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != df {
		return nil, fmt.Errorf("splinedist: %d coefficients for %d degrees of freedom", len(parts), df)
	}
	coefs := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("splinedist: bad coefficient %q: %v", p, err)
		}
		coefs[i] = v
	}
	return coefs, nil
}

func newBasis(variant string, cfg splines.Config) (splines.Basis, error) {
	switch variant {
	case "mspline":
		return splines.NewMSpline(cfg)
	case "bspline":
		return splines.NewBSpline(cfg)
	case "logx":
		return splines.NewLogXBSpline(cfg)
	case "logy":
		return splines.NewLogYBSpline(cfg)
	case "logxlogy":
		return splines.NewLogXLogYBSpline(cfg)
	}
	return nil, fmt.Errorf("splinedist: unknown variant %q", variant)
}

func savePlot(xs, ys []float64, file string) error {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	p := plot.New()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "density"
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(6*vg.Inch, 4*vg.Inch, file)
}
