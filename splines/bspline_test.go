// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splines

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

func TestLogDomainEquivalence(t *testing.T) {
	cfg := Config{KnotConfig: KnotConfig{DF: 10, Min: 1, Max: 100}}
	logx, err := NewLogXBSpline(cfg)
	require.NoError(t, err)

	lcfg := cfg
	lcfg.KnotConfig = cfg.KnotConfig.Log()
	lin, err := NewBSpline(lcfg)
	require.NoError(t, err)

	xs := []float64{1, 2.5, 10, 42, 99.9}
	logged := make([]float64, len(xs))
	for i, x := range xs {
		logged[i] = math.Log(x)
	}
	got := logx.Bases(xs)
	want := lin.Bases(logged)
	for i := 0; i < 10; i++ {
		for j := range xs {
			require.InDelta(t, want.At(i, j), got.At(i, j), 1e-12)
		}
	}
}

func TestLogKnotScenario(t *testing.T) {
	// Cubic B-spline, 10 degrees of freedom over (1, 100) with 8
	// log-spaced interior knots.
	s, err := NewLogXBSpline(Config{KnotConfig: KnotConfig{DF: 10, Order: 4, Min: 1, Max: 100}})
	require.NoError(t, err)
	xs := []float64{1, 10, 50, 100}
	dm := s.Bases(xs)
	r, c := dm.Dims()
	require.Equal(t, 10, r)
	require.Equal(t, 4, c)
	for j := range xs {
		sum := 0.0
		for i := 0; i < r; i++ {
			require.GreaterOrEqual(t, dm.At(i, j), 0.0)
			sum += dm.At(i, j)
		}
		if xs[j] < 100 {
			require.InDelta(t, 1, sum, 1e-6, "x=%v", xs[j])
		}
	}
}

func TestBSplineNormalizationRoundTrip(t *testing.T) {
	s, err := NewBSpline(Config{
		KnotConfig: KnotConfig{DF: 8, Min: 0, Max: 1},
		Normalize:  true,
	})
	require.NoError(t, err)
	coefs := []float64{0.2, 1, 0.7, 2, 1.4, 0.3, 0.8, 1.1}
	grid := floats.Span(make([]float64, 901), 0, 1)
	dens := s.Eval(grid, coefs)
	require.InDelta(t, 1, integrate.Trapezoidal(grid, dens), 1e-3)
}

func TestLogYNormalizationRoundTrip(t *testing.T) {
	s, err := NewLogYBSpline(Config{
		KnotConfig: KnotConfig{DF: 8, Min: 0, Max: 1},
		Normalize:  true,
	})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(3))
	coefs := make([]float64, 8)
	for i := range coefs {
		coefs[i] = 2*rng.Float64() - 1
	}
	grid := floats.Span(make([]float64, 813), 0, 1)
	dens := s.Eval(grid, coefs)
	for _, v := range dens {
		require.Greater(t, v, 0.0, "exp projection must be positive")
	}
	require.InDelta(t, 1, integrate.Trapezoidal(grid, dens), 1e-3)
}

func TestLogXLogYNormalizationRoundTrip(t *testing.T) {
	s, err := NewLogXLogYBSpline(Config{
		KnotConfig: KnotConfig{DF: 8, Min: 0.1, Max: 1},
		Normalize:  true,
	})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(4))
	coefs := make([]float64, 8)
	for i := range coefs {
		coefs[i] = 2*rng.Float64() - 1
	}
	grid := floats.Span(make([]float64, 1207), 0.1, 1)
	dens := s.Eval(grid, coefs)
	require.InDelta(t, 1, integrate.Trapezoidal(grid, dens), 1e-3)
}

func TestNormDisabledIsOne(t *testing.T) {
	cfg := Config{KnotConfig: KnotConfig{DF: 6, Min: 1, Max: 10}}
	coefs := []float64{1, -2, 0.5, 3, -1, 2}

	b, err := NewBSpline(cfg)
	require.NoError(t, err)
	require.Equal(t, 1.0, b.Norm(coefs))

	lx, err := NewLogXBSpline(cfg)
	require.NoError(t, err)
	require.Equal(t, 1.0, lx.Norm(coefs))

	ly, err := NewLogYBSpline(cfg)
	require.NoError(t, err)
	require.Equal(t, 1.0, ly.Norm(coefs))

	lxy, err := NewLogXLogYBSpline(cfg)
	require.NoError(t, err)
	require.Equal(t, 1.0, lxy.Norm(coefs))
}

func TestUnnormalizedProjectionIsLinear(t *testing.T) {
	// Without normalization the B-spline projection is a plain linear
	// combination, so doubling the coefficients doubles the result.
	s, err := NewBSpline(Config{KnotConfig: KnotConfig{DF: 6, Min: 0, Max: 1}})
	require.NoError(t, err)
	coefs := []float64{1, 2, 0.5, 1.5, 1, 0.25}
	double := floats.ScaleTo(make([]float64, len(coefs)), 2, coefs)
	xs := []float64{0.1, 0.42, 0.9}
	one := s.Eval(xs, coefs)
	two := s.Eval(xs, double)
	for i := range xs {
		require.InDelta(t, 2*one[i], two[i], 1e-12)
	}
}
