// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package models implements population density models for compact-binary
// source parameters: power-law mass and mass-ratio distributions
// perturbed by basis splines, and a power-law-in-(1+z) redshift evolution
// model, all normalized by trapezoidal integration over fixed grids.
package models // import "github.com/sharanbngr/gwinferno/models"

import "math"

// Smoothing is a window that tapers a mass density to zero at a lower
// cutoff: 0 for m <= mmin, 1 for m >= mmin+deltaM, and a smooth rise
//
//	1 / (exp(deltaM/s + deltaM/(s-deltaM)) + 1),  s = m - mmin
//
// in between. The formula divides by zero at the edges of the rise; any
// NaN or Inf it produces is replaced by 1 before the cutoff is applied.
func Smoothing(ms []float64, mmin, deltaM float64) []float64 {
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = smoothingAt(m, mmin, deltaM)
	}
	return out
}

func smoothingAt(m, mmin, deltaM float64) float64 {
	if m <= mmin {
		return 0
	}
	s := m - mmin
	if s >= deltaM {
		return 1
	}
	w := 1 / (math.Exp(deltaM/s+deltaM/(s-deltaM)) + 1)
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 1
	}
	return w
}
