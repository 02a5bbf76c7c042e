// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splines

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

func TestBivariateBasesShape(t *testing.T) {
	s, err := NewRectBivariateSpline(BivariateConfig{
		XDF: 5, YDF: 4, XMin: 0, XMax: 1, YMin: 0, YMax: 2,
	})
	require.NoError(t, err)
	xs := []float64{0.1, 0.5, 0.9}
	ys := []float64{0.2, 1.0, 1.8}
	dm := s.Bases(xs, ys)
	r, c := dm.Dims()
	require.Equal(t, 20, r)
	require.Equal(t, 3, c)

	// Row i*YDF+j is the product of the per-axis bases.
	bx := mustBSpline(t, Config{KnotConfig: KnotConfig{DF: 5, Min: 0, Max: 1}}).Bases(xs)
	by := mustBSpline(t, Config{KnotConfig: KnotConfig{DF: 4, Min: 0, Max: 2}}).Bases(ys)
	for i := 0; i < 5; i++ {
		for j := 0; j < 4; j++ {
			for p := range xs {
				require.InDelta(t, bx.At(i, p)*by.At(j, p), dm.At(i*4+j, p), 1e-12)
			}
		}
	}
}

func mustBSpline(t *testing.T, cfg Config) *BSpline {
	t.Helper()
	s, err := NewBSpline(cfg)
	require.NoError(t, err)
	return s
}

func TestBivariateMismatchedPointsPanics(t *testing.T) {
	s, err := NewRectBivariateSpline(BivariateConfig{
		XDF: 4, YDF: 4, XMin: 0, XMax: 1, YMin: 0, YMax: 1,
	})
	require.NoError(t, err)
	require.Panics(t, func() { s.Bases([]float64{0.1, 0.2}, []float64{0.3}) })
}

func TestBivariateZeroCoefsUniform(t *testing.T) {
	// exp(0) is flat, so the normalized density is 1/area everywhere.
	s, err := NewRectBivariateSpline(BivariateConfig{
		XDF: 5, YDF: 4, XMin: 0, XMax: 1, YMin: 0, YMax: 2,
		Normalize: true, GridPoints: 101,
	})
	require.NoError(t, err)
	coefs := make([]float64, 20)
	dens := s.Eval([]float64{0.3, 0.7}, []float64{0.5, 1.5}, coefs)
	for _, v := range dens {
		require.InDelta(t, 0.5, v, 1e-9)
	}
}

func TestBivariateNormalizationRoundTrip(t *testing.T) {
	const n = 151
	s, err := NewRectBivariateSpline(BivariateConfig{
		XDF: 5, YDF: 4, XMin: 0, XMax: 1, YMin: 0, YMax: 2,
		Normalize: true, GridPoints: n,
	})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(5))
	coefs := make([]float64, 20)
	for i := range coefs {
		coefs[i] = rng.Float64() - 0.5
	}

	// Evaluate the normalized density over the full mesh and integrate
	// it back, Y first and then X.
	gx := floats.Span(make([]float64, n), 0, 1)
	gy := floats.Span(make([]float64, n), 0, 2)
	inner := make([]float64, n)
	xrep := make([]float64, n)
	for a, x := range gx {
		for b := range xrep {
			xrep[b] = x
		}
		inner[a] = integrate.Trapezoidal(gy, s.Eval(xrep, gy, coefs))
	}
	require.InDelta(t, 1, integrate.Trapezoidal(gx, inner), 1e-3)
}
