// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splines

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
)

// BSpline is a basis spline with the canonical unit-height basis
// normalization: each M-spline basis is rescaled by its support width over
// the order, which restores the partition-of-unity property on the
// interior of the domain.
type BSpline struct {
	kv        *KnotVector
	scale     []float64 // (knots[i+order]-knots[i])/order per basis
	normalize bool
	grid      []float64
	gridB     *mat.Dense
}

// NewBSpline constructs a B-spline basis. With cfg.Normalize set, Norm
// integrates the projected curve over a trapezoidal grid; this is
// recomputed per coefficient vector since the integral depends on the
// coefficients.
func NewBSpline(cfg Config) (*BSpline, error) {
	kv, err := NewKnotVector(cfg.KnotConfig)
	if err != nil {
		return nil, err
	}
	s := &BSpline{kv: kv, normalize: cfg.Normalize}
	s.scale = make([]float64, kv.df)
	for i := range s.scale {
		s.scale[i] = kv.Span(i, kv.order) / float64(kv.order)
	}
	if cfg.Normalize {
		s.grid = floats.Span(make([]float64, cfg.gridPoints(1000)), kv.min, kv.max)
		s.gridB = s.Bases(s.grid)
	}
	return s, nil
}

// DF returns the number of basis functions.
func (s *BSpline) DF() int { return s.kv.df }

// Knots returns the underlying knot vector.
func (s *BSpline) Knots() *KnotVector { return s.kv }

// Bases evaluates the B-spline design matrix at xs, shape (DF, len(xs)).
func (s *BSpline) Bases(xs []float64) *mat.Dense {
	dm := s.kv.mbases(xs)
	for i, c := range s.scale {
		row := dm.RawRowView(i)
		floats.Scale(c, row)
	}
	return dm
}

// Norm returns the reciprocal of the trapezoidal integral of the
// projected curve over the normalization grid, or 1 if normalization is
// disabled.
func (s *BSpline) Norm(coefs []float64) float64 {
	s.checkCoefs(coefs)
	if !s.normalize {
		return 1
	}
	return 1 / integrate.Trapezoidal(s.grid, linearCombination(s.gridB, coefs, 1))
}

// Project returns the linear combination of the design-matrix rows scaled
// by Norm(coefs).
func (s *BSpline) Project(dm *mat.Dense, coefs []float64) []float64 {
	s.checkCoefs(coefs)
	return linearCombination(dm, coefs, s.Norm(coefs))
}

// Eval evaluates the spline at xs given coefs.
func (s *BSpline) Eval(xs, coefs []float64) []float64 {
	return s.Project(s.Bases(xs), coefs)
}

func (s *BSpline) checkCoefs(coefs []float64) {
	if len(coefs) != s.kv.df {
		panic("splines: coefficient vector length does not match degrees of freedom")
	}
}

// LogXBSpline is a B-spline over the natural log of the domain: query
// points are logged before evaluation, so LogXBSpline.Bases(x) equals an
// ordinary BSpline.Bases(log x) over the logged knots. Projection stays
// linear in the coefficients; the normalization grid lives on the linear
// axis.
type LogXBSpline struct {
	inner     *BSpline
	normalize bool
	grid      []float64
	gridB     *mat.Dense
}

// NewLogXBSpline constructs a log-domain B-spline. cfg bounds and any
// explicit knots are given on the linear axis and logged internally, so
// Min must be positive.
func NewLogXBSpline(cfg Config) (*LogXBSpline, error) {
	icfg := cfg
	icfg.KnotConfig = cfg.KnotConfig.Log()
	icfg.Normalize = false
	inner, err := NewBSpline(icfg)
	if err != nil {
		return nil, err
	}
	s := &LogXBSpline{inner: inner, normalize: cfg.Normalize}
	if cfg.Normalize {
		s.grid = floats.Span(make([]float64, cfg.gridPoints(1000)), cfg.Min, cfg.Max)
		s.gridB = s.Bases(s.grid)
	}
	return s, nil
}

// DF returns the number of basis functions.
func (s *LogXBSpline) DF() int { return s.inner.DF() }

// Knots returns the knot vector over the logged coordinate.
func (s *LogXBSpline) Knots() *KnotVector { return s.inner.Knots() }

// Bases evaluates the design matrix at log(xs).
func (s *LogXBSpline) Bases(xs []float64) *mat.Dense {
	return s.inner.Bases(logEach(xs))
}

// Norm integrates the projected curve over the linear-axis grid.
func (s *LogXBSpline) Norm(coefs []float64) float64 {
	s.inner.checkCoefs(coefs)
	if !s.normalize {
		return 1
	}
	return 1 / integrate.Trapezoidal(s.grid, linearCombination(s.gridB, coefs, 1))
}

// Project returns the linear combination of the design-matrix rows scaled
// by Norm(coefs).
func (s *LogXBSpline) Project(dm *mat.Dense, coefs []float64) []float64 {
	s.inner.checkCoefs(coefs)
	return linearCombination(dm, coefs, s.Norm(coefs))
}

// Eval evaluates the spline at xs given coefs.
func (s *LogXBSpline) Eval(xs, coefs []float64) []float64 {
	return s.Project(s.Bases(xs), coefs)
}

// LogYBSpline is a B-spline whose projection is exponentiated: the spline
// represents a log density, coefficients are unconstrained reals, and
// exp guarantees positivity. Normalization integrates the exponentiated
// curve and must be recomputed for every coefficient vector.
type LogYBSpline struct {
	inner     *BSpline
	normalize bool
	grid      []float64
	gridB     *mat.Dense
}

// NewLogYBSpline constructs a log-range B-spline.
func NewLogYBSpline(cfg Config) (*LogYBSpline, error) {
	icfg := cfg
	icfg.Normalize = false
	inner, err := NewBSpline(icfg)
	if err != nil {
		return nil, err
	}
	s := &LogYBSpline{inner: inner, normalize: cfg.Normalize}
	if cfg.Normalize {
		s.grid = floats.Span(make([]float64, cfg.gridPoints(1000)), cfg.Min, cfg.Max)
		s.gridB = inner.Bases(s.grid)
	}
	return s, nil
}

// DF returns the number of basis functions.
func (s *LogYBSpline) DF() int { return s.inner.DF() }

// Knots returns the underlying knot vector.
func (s *LogYBSpline) Knots() *KnotVector { return s.inner.Knots() }

// Bases evaluates the B-spline design matrix at xs.
func (s *LogYBSpline) Bases(xs []float64) *mat.Dense { return s.inner.Bases(xs) }

// Norm returns the reciprocal of the trapezoidal integral of
// exp(projection) over the grid.
func (s *LogYBSpline) Norm(coefs []float64) float64 {
	s.inner.checkCoefs(coefs)
	if !s.normalize {
		return 1
	}
	return 1 / integrate.Trapezoidal(s.grid, expCombination(s.gridB, coefs, 1))
}

// Project exponentiates the linear combination of the design-matrix rows
// and scales by Norm(coefs).
func (s *LogYBSpline) Project(dm *mat.Dense, coefs []float64) []float64 {
	s.inner.checkCoefs(coefs)
	return expCombination(dm, coefs, s.Norm(coefs))
}

// Eval evaluates the normalized density at xs given coefs.
func (s *LogYBSpline) Eval(xs, coefs []float64) []float64 {
	return s.Project(s.Bases(xs), coefs)
}

// LogXLogYBSpline combines the log-domain and log-range transforms: bases
// are evaluated at log(x) and the projection is exponentiated, so the
// spline is a log-log density perturbation. The normalization grid lives
// on the linear axis with a finer default resolution.
type LogXLogYBSpline struct {
	inner     *BSpline
	normalize bool
	grid      []float64
	gridB     *mat.Dense
}

// NewLogXLogYBSpline constructs a log-log B-spline. cfg bounds are given
// on the linear axis; Min must be positive.
func NewLogXLogYBSpline(cfg Config) (*LogXLogYBSpline, error) {
	icfg := cfg
	icfg.KnotConfig = cfg.KnotConfig.Log()
	icfg.Normalize = false
	inner, err := NewBSpline(icfg)
	if err != nil {
		return nil, err
	}
	s := &LogXLogYBSpline{inner: inner, normalize: cfg.Normalize}
	if cfg.Normalize {
		s.grid = floats.Span(make([]float64, cfg.gridPoints(1500)), cfg.Min, cfg.Max)
		s.gridB = s.Bases(s.grid)
	}
	return s, nil
}

// DF returns the number of basis functions.
func (s *LogXLogYBSpline) DF() int { return s.inner.DF() }

// Knots returns the knot vector over the logged coordinate.
func (s *LogXLogYBSpline) Knots() *KnotVector { return s.inner.Knots() }

// Bases evaluates the design matrix at log(xs).
func (s *LogXLogYBSpline) Bases(xs []float64) *mat.Dense {
	return s.inner.Bases(logEach(xs))
}

// Norm returns the reciprocal of the trapezoidal integral of
// exp(projection) over the linear-axis grid.
func (s *LogXLogYBSpline) Norm(coefs []float64) float64 {
	s.inner.checkCoefs(coefs)
	if !s.normalize {
		return 1
	}
	return 1 / integrate.Trapezoidal(s.grid, expCombination(s.gridB, coefs, 1))
}

// Project exponentiates the linear combination of the design-matrix rows
// and scales by Norm(coefs).
func (s *LogXLogYBSpline) Project(dm *mat.Dense, coefs []float64) []float64 {
	s.inner.checkCoefs(coefs)
	return expCombination(dm, coefs, s.Norm(coefs))
}

// Eval evaluates the normalized density at xs given coefs.
func (s *LogXLogYBSpline) Eval(xs, coefs []float64) []float64 {
	return s.Project(s.Bases(xs), coefs)
}

var (
	_ Basis = (*MSpline)(nil)
	_ Basis = (*BSpline)(nil)
	_ Basis = (*LogXBSpline)(nil)
	_ Basis = (*LogYBSpline)(nil)
	_ Basis = (*LogXLogYBSpline)(nil)
)
