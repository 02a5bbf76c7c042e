// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splines

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// knotTol is the span length below which a basis function is treated as
// degenerate and evaluates to zero everywhere.
const knotTol = 1e-6

// KnotConfig describes how to construct a knot vector. DF, Min, and Max
// must be set; everything else has a usable zero value.
type KnotConfig struct {
	// DF is the number of basis functions (degrees of freedom).
	DF int

	// Order is the spline order, one more than the polynomial degree of
	// each piece. If zero, it defaults to 4 (cubic).
	Order int

	// Min and Max bound the spline domain. Min must be less than Max.
	Min, Max float64

	// Knots optionally gives the full knot sequence, for non-uniform
	// placement. When set it is used as-is and must be non-decreasing
	// with length DF+Order.
	Knots []float64

	// InteriorKnots optionally gives the interior knot positions on
	// [Min, Max], including both endpoints. Ignored when Knots is set.
	InteriorKnots []float64

	// Clamped repeats the boundary value Order-1 times on each side
	// instead of extending the knots past the bounds by one interior
	// spacing. Extension is the default: it avoids basis functions
	// stacking up at the endpoints.
	Clamped bool
}

// Log returns a copy of the config with the domain and any explicit knots
// passed through the natural log, for splines over a logged coordinate.
func (cfg KnotConfig) Log() KnotConfig {
	out := cfg
	out.Min, out.Max = math.Log(cfg.Min), math.Log(cfg.Max)
	if cfg.Knots != nil {
		out.Knots = logEach(cfg.Knots)
	}
	if cfg.InteriorKnots != nil {
		out.InteriorKnots = logEach(cfg.InteriorKnots)
	}
	return out
}

func logEach(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Log(x)
	}
	return out
}

// A KnotVector is a non-decreasing sequence of DF+Order breakpoints
// defining the piecewise-polynomial segments of a spline. It is immutable
// once constructed.
type KnotVector struct {
	knots    []float64
	df       int
	order    int
	min, max float64
}

// NewKnotVector builds a knot vector from cfg. When no knots are given,
// DF-Order+2 uniformly spaced interior knots cover [Min, Max] and Order-1
// exterior knots are added on each side, either extended past the bounds
// at the interior spacing or, in clamped mode, repeated at the boundary
// value. The constructed vector always has exactly DF+Order knots; any
// configuration that cannot satisfy that is an error.
func NewKnotVector(cfg KnotConfig) (*KnotVector, error) {
	order := cfg.Order
	if order == 0 {
		order = 4
	}
	if order < 1 {
		return nil, fmt.Errorf("splines: order %d out of range", cfg.Order)
	}
	if cfg.DF < order {
		return nil, fmt.Errorf("splines: %d degrees of freedom below order %d", cfg.DF, order)
	}
	if !(cfg.Min < cfg.Max) {
		return nil, fmt.Errorf("splines: domain [%v, %v] is empty", cfg.Min, cfg.Max)
	}

	var knots []float64
	if cfg.Knots != nil {
		knots = append([]float64(nil), cfg.Knots...)
	} else {
		interior := cfg.InteriorKnots
		if interior == nil {
			interior = make([]float64, cfg.DF-order+2)
			floats.Span(interior, cfg.Min, cfg.Max)
		}
		if len(interior) < 2 {
			return nil, fmt.Errorf("splines: need at least 2 interior knots, have %d", len(interior))
		}
		dx := interior[1] - interior[0]
		knots = make([]float64, 0, len(interior)+2*(order-1))
		for j := order - 1; j >= 1; j-- {
			if cfg.Clamped {
				knots = append(knots, cfg.Min)
			} else {
				knots = append(knots, cfg.Min-float64(j)*dx)
			}
		}
		knots = append(knots, interior...)
		for j := 1; j <= order-1; j++ {
			if cfg.Clamped {
				knots = append(knots, cfg.Max)
			} else {
				knots = append(knots, cfg.Max+float64(j)*dx)
			}
		}
	}

	if len(knots) != cfg.DF+order {
		return nil, fmt.Errorf("splines: %d knots for %d degrees of freedom at order %d, want %d",
			len(knots), cfg.DF, order, cfg.DF+order)
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return nil, fmt.Errorf("splines: knots decrease at index %d (%v > %v)", i, knots[i-1], knots[i])
		}
	}

	return &KnotVector{knots: knots, df: cfg.DF, order: order, min: cfg.Min, max: cfg.Max}, nil
}

// DF returns the number of basis functions.
func (t *KnotVector) DF() int { return t.df }

// Order returns the spline order.
func (t *KnotVector) Order() int { return t.order }

// Len returns the number of knots, always DF()+Order().
func (t *KnotVector) Len() int { return len(t.knots) }

// At returns the i'th knot.
func (t *KnotVector) At(i int) float64 { return t.knots[i] }

// Bounds returns the domain the knots were constructed over.
func (t *KnotVector) Bounds() (min, max float64) { return t.min, t.max }

// Span returns knots[i+k] - knots[i], the support width of basis i at
// order k.
func (t *KnotVector) Span(i, k int) float64 { return t.knots[i+k] - t.knots[i] }
