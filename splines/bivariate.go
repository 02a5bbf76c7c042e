// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splines

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
)

// BivariateConfig describes a rectangular 2-D spline basis over the outer
// product of an X basis and a Y basis.
type BivariateConfig struct {
	// XDF and YDF are the degrees of freedom per axis.
	XDF, YDF int

	// XOrder and YOrder default to 4 (cubic) when zero.
	XOrder, YOrder int

	// Domain bounds per axis.
	XMin, XMax float64
	YMin, YMax float64

	// Normalize enables double-trapezoidal normalization over the mesh.
	Normalize bool

	// GridPoints sets the per-axis resolution of the normalization
	// mesh. If zero, 750 points per axis are used.
	GridPoints int
}

// RectBivariateSpline is a 2-D basis spline with basis functions
// Bx_i(x)*By_j(y) and exponentiated projection: the coefficient matrix is
// an unconstrained log-density surface. Normalization integrates over a
// fixed mesh, Y first and then X.
type RectBivariateSpline struct {
	x, y      *BSpline
	normalize bool

	gridX, gridY []float64
	gridXB       *mat.Dense // (XDF, |gridX|)
	gridYB       *mat.Dense // (YDF, |gridY|)
}

// NewRectBivariateSpline constructs a bivariate B-spline basis. The mesh
// design matrices are kept in factored per-axis form; the full
// (XDF*YDF, |mesh|) outer product is never materialized for the
// normalization grid.
func NewRectBivariateSpline(cfg BivariateConfig) (*RectBivariateSpline, error) {
	x, err := NewBSpline(Config{KnotConfig: KnotConfig{
		DF: cfg.XDF, Order: cfg.XOrder, Min: cfg.XMin, Max: cfg.XMax,
	}})
	if err != nil {
		return nil, err
	}
	y, err := NewBSpline(Config{KnotConfig: KnotConfig{
		DF: cfg.YDF, Order: cfg.YOrder, Min: cfg.YMin, Max: cfg.YMax,
	}})
	if err != nil {
		return nil, err
	}
	s := &RectBivariateSpline{x: x, y: y, normalize: cfg.Normalize}
	if cfg.Normalize {
		n := cfg.GridPoints
		if n == 0 {
			n = 750
		}
		s.gridX = floats.Span(make([]float64, n), cfg.XMin, cfg.XMax)
		s.gridY = floats.Span(make([]float64, n), cfg.YMin, cfg.YMax)
		s.gridXB = x.Bases(s.gridX)
		s.gridYB = y.Bases(s.gridY)
	}
	return s, nil
}

// XDF returns the X-axis degrees of freedom.
func (s *RectBivariateSpline) XDF() int { return s.x.DF() }

// YDF returns the Y-axis degrees of freedom.
func (s *RectBivariateSpline) YDF() int { return s.y.DF() }

// Bases evaluates the outer-product design matrix at paired points
// (xs[j], ys[j]). The result has shape (XDF*YDF, len(xs)) with row
// i*YDF+k holding Bx_i*By_k, matching the row-major coefficient layout
// expected by Project.
func (s *RectBivariateSpline) Bases(xs, ys []float64) *mat.Dense {
	if len(xs) != len(ys) {
		panic("splines: bivariate query points have mismatched lengths")
	}
	bx := s.x.Bases(xs)
	by := s.y.Bases(ys)
	xdf, ydf := s.x.DF(), s.y.DF()
	dm := mat.NewDense(xdf*ydf, len(xs), nil)
	for i := 0; i < xdf; i++ {
		xrow := bx.RawRowView(i)
		for k := 0; k < ydf; k++ {
			yrow := by.RawRowView(k)
			out := dm.RawRowView(i*ydf + k)
			floats.MulTo(out, xrow, yrow)
		}
	}
	return dm
}

// Norm returns the reciprocal of the double trapezoidal integral of
// exp(projection) over the mesh, or 1 if normalization is disabled. The
// log-density on the mesh is computed as Bx^T C By, two dense products.
func (s *RectBivariateSpline) Norm(coefs []float64) float64 {
	s.checkCoefs(coefs)
	if !s.normalize {
		return 1
	}
	xdf, ydf := s.x.DF(), s.y.DF()
	c := mat.NewDense(xdf, ydf, coefs)
	var cy, logDens mat.Dense
	cy.Mul(c, s.gridYB)             // (xdf, ny)
	logDens.Mul(s.gridXB.T(), &cy)  // (nx, ny)
	inner := make([]float64, len(s.gridX))
	row := make([]float64, len(s.gridY))
	for a := range s.gridX {
		mat.Row(row, a, &logDens)
		for b, v := range row {
			row[b] = math.Exp(v)
		}
		inner[a] = integrate.Trapezoidal(s.gridY, row)
	}
	return 1 / integrate.Trapezoidal(s.gridX, inner)
}

// Project exponentiates the combination of the design-matrix rows with a
// row-major (XDF, YDF) coefficient matrix flattened to a vector, scaled by
// Norm(coefs).
func (s *RectBivariateSpline) Project(dm *mat.Dense, coefs []float64) []float64 {
	s.checkCoefs(coefs)
	return expCombination(dm, coefs, s.Norm(coefs))
}

// Eval evaluates the normalized density at paired points (xs[j], ys[j]).
func (s *RectBivariateSpline) Eval(xs, ys, coefs []float64) []float64 {
	return s.Project(s.Bases(xs, ys), coefs)
}

func (s *RectBivariateSpline) checkCoefs(coefs []float64) {
	if len(coefs) != s.x.DF()*s.y.DF() {
		panic("splines: coefficient matrix size does not match degrees of freedom")
	}
}
