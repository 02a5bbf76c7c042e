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

// A Basis is a spline basis with a fixed knot vector. It evaluates design
// matrices at query points and projects coefficient vectors onto density
// values. Implementations are immutable after construction; all methods
// are safe to call concurrently.
type Basis interface {
	// DF returns the number of basis functions, which is also the
	// required coefficient vector length.
	DF() int

	// Knots returns the underlying knot vector.
	Knots() *KnotVector

	// Bases evaluates every basis function at every query point,
	// returning the design matrix with shape (DF, len(xs)).
	Bases(xs []float64) *mat.Dense

	// Project combines the rows of a design matrix with a coefficient
	// vector, including the variant's normalization. The result has one
	// value per design-matrix column.
	Project(dm *mat.Dense, coefs []float64) []float64

	// Norm returns the normalization factor for a coefficient vector,
	// or exactly 1 if normalization is disabled.
	Norm(coefs []float64) float64

	// Eval is shorthand for Project(Bases(xs), coefs).
	Eval(xs, coefs []float64) []float64
}

// evalColumn fills out[:t.df] with the order-k M-spline basis values at x.
// scratch must have length DF+Order-1.
//
// This is a bottom-up formulation of the Cox-de Boor recursion: level m is
// computed in place from level m-1, so the shared sub-bases are evaluated
// once each instead of once per top-level basis function.
func (t *KnotVector) evalColumn(x float64, scratch []float64) {
	// Order 1: unit-integral indicator on each knot interval.
	for i := 0; i < len(scratch); i++ {
		span := t.knots[i+1] - t.knots[i]
		if span >= knotTol && x >= t.knots[i] && x < t.knots[i+1] {
			scratch[i] = 1 / span
		} else {
			scratch[i] = 0
		}
	}
	for m := 2; m <= t.order; m++ {
		fm := float64(m)
		for i := 0; i < len(t.knots)-m; i++ {
			span := t.knots[i+m] - t.knots[i]
			if span < knotTol {
				scratch[i] = 0
				continue
			}
			v := (x-t.knots[i])*scratch[i] + (t.knots[i+m]-x)*scratch[i+1]
			scratch[i] = v * fm / ((fm - 1) * span)
		}
	}
}

// mbases evaluates the full M-spline design matrix, shape (DF, len(xs)).
func (t *KnotVector) mbases(xs []float64) *mat.Dense {
	dm := mat.NewDense(t.df, len(xs), nil)
	scratch := make([]float64, t.Len()-1)
	for j, x := range xs {
		t.evalColumn(x, scratch)
		for i := 0; i < t.df; i++ {
			dm.Set(i, j, scratch[i])
		}
	}
	return dm
}

// BasisFunc evaluates the single M-spline basis function i at every point
// in xs. Basis i has support [knots[i], knots[i+Order]) and unit integral.
func (t *KnotVector) BasisFunc(i int, xs []float64) []float64 {
	out := make([]float64, len(xs))
	scratch := make([]float64, t.Len()-1)
	for j, x := range xs {
		t.evalColumn(x, scratch)
		out[j] = scratch[i]
	}
	return out
}

// linearCombination returns dm^T coefs scaled by factor.
func linearCombination(dm *mat.Dense, coefs []float64, factor float64) []float64 {
	_, n := dm.Dims()
	out := mat.NewVecDense(n, nil)
	out.MulVec(dm.T(), mat.NewVecDense(len(coefs), coefs))
	res := out.RawVector().Data
	if factor != 1 {
		floats.Scale(factor, res)
	}
	return res
}

// expCombination returns exp(dm^T coefs) scaled elementwise by factor.
func expCombination(dm *mat.Dense, coefs []float64, factor float64) []float64 {
	res := linearCombination(dm, coefs, 1)
	for i, v := range res {
		res[i] = factor * math.Exp(v)
	}
	return res
}

// Config describes a univariate spline basis. KnotConfig must describe a
// valid knot vector; the remaining fields have usable zero values.
type Config struct {
	KnotConfig

	// Normalize enables numerical normalization of projected densities.
	// When false, Norm always returns 1 and the spline is a raw
	// perturbation used as a building block inside a larger model that
	// normalizes once globally.
	Normalize bool

	// GridPoints sets the resolution of the normalization grid. If
	// zero, the variant's default is used (1000 points, or 1500 for the
	// log-log variant).
	GridPoints int
}

func (cfg Config) gridPoints(def int) int {
	if cfg.GridPoints == 0 {
		return def
	}
	return cfg.GridPoints
}

// MSpline is a basis spline with unit-integral (M-spline) basis functions.
// Projection sum-normalizes the coefficients, so the coefficient vector is
// a weight simplex and the projected curve is a density perturbation
// multiplier in probability space.
type MSpline struct {
	kv        *KnotVector
	normalize bool
	vols      []float64 // integral of each basis over [min, max]
}

// NewMSpline constructs an M-spline basis. With cfg.Normalize set, the
// per-basis volumes are integrated once over a trapezoidal grid and reused
// for every Norm call.
func NewMSpline(cfg Config) (*MSpline, error) {
	kv, err := NewKnotVector(cfg.KnotConfig)
	if err != nil {
		return nil, err
	}
	s := &MSpline{kv: kv, normalize: cfg.Normalize}
	if cfg.Normalize {
		grid := floats.Span(make([]float64, cfg.gridPoints(1000)), kv.min, kv.max)
		gb := kv.mbases(grid)
		s.vols = make([]float64, kv.df)
		for i := range s.vols {
			s.vols[i] = integrate.Trapezoidal(grid, mat.Row(nil, i, gb))
		}
	}
	return s, nil
}

// DF returns the number of basis functions.
func (s *MSpline) DF() int { return s.kv.df }

// Knots returns the underlying knot vector.
func (s *MSpline) Knots() *KnotVector { return s.kv }

// Bases evaluates the M-spline design matrix at xs.
func (s *MSpline) Bases(xs []float64) *mat.Dense { return s.kv.mbases(xs) }

// Norm returns 1 / sum(vols * coefs). Because each basis has unit
// integral, this is exact for any linear combination; no per-coefficient
// quadrature is needed.
func (s *MSpline) Norm(coefs []float64) float64 {
	s.checkCoefs(coefs)
	if !s.normalize {
		return 1
	}
	return 1 / floats.Dot(s.vols, coefs)
}

// Project sum-normalizes coefs and returns the normalized linear
// combination of the design-matrix rows. The caller's slice is not
// modified.
func (s *MSpline) Project(dm *mat.Dense, coefs []float64) []float64 {
	s.checkCoefs(coefs)
	cn := append([]float64(nil), coefs...)
	floats.Scale(1/floats.Sum(cn), cn)
	return linearCombination(dm, cn, s.Norm(cn))
}

// Eval evaluates the normalized spline at xs given coefs.
func (s *MSpline) Eval(xs, coefs []float64) []float64 {
	return s.Project(s.Bases(xs), coefs)
}

func (s *MSpline) checkCoefs(coefs []float64) {
	if len(coefs) != s.kv.df {
		panic("splines: coefficient vector length does not match degrees of freedom")
	}
}
