// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/sharanbngr/gwinferno/dists"
	"github.com/sharanbngr/gwinferno/splines"
)

func logUniform(rng *rand.Rand, n int, low, high float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Exp(math.Log(low) + rng.Float64()*(math.Log(high)-math.Log(low)))
	}
	return out
}

func TestPowerlawSplineMassNormalized(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	m, err := NewPowerlawSplineMass(8, logUniform(rng, 50, 3, 100), logUniform(rng, 40, 3, 100), MassConfig{})
	require.NoError(t, err)

	cs := make([]float64, 8)
	for i := range cs {
		cs[i] = rng.Float64() - 0.5
	}
	dens := m.Primary(splines.RoleNormGrid, 2.5, 3, 100, cs)
	grid := floats.Span(make([]float64, 1000), 3, 100)
	require.InDelta(t, 1, integrate.Trapezoidal(grid, dens), 1e-9)
}

func TestPowerlawSplineMassZeroCoefs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m1PE := logUniform(rng, 30, 3, 100)
	m, err := NewPowerlawSplineMass(8, m1PE, m1PE, MassConfig{})
	require.NoError(t, err)

	// With no perturbation the model is the bare truncated power law.
	alpha := 2.5
	grid := floats.Span(make([]float64, 1000), 3, 100)
	norm := integrate.Trapezoidal(grid, dists.PowerlawEach(grid, -alpha, 3, 100, 0))
	dens := m.Primary(splines.RolePE, alpha, 3, 100, make([]float64, 8))
	for i, mm := range m1PE {
		require.InDelta(t, dists.Powerlaw(mm, -alpha, 3, 100, 0)/norm, dens[i], 1e-12)
	}
}

func TestPowerlawSplineMassSmoothingTaper(t *testing.T) {
	samples := []float64{3.05, 3.2, 50, 90}
	plain, err := NewPowerlawSplineMass(8, samples, samples, MassConfig{})
	require.NoError(t, err)
	tapered, err := NewPowerlawSplineMass(8, samples, samples, MassConfig{DeltaM: 2})
	require.NoError(t, err)

	cs := make([]float64, 8)
	dp := plain.Primary(splines.RolePE, 2.5, 3, 100, cs)
	dt := tapered.Primary(splines.RolePE, 2.5, 3, 100, cs)
	// Just above the cutoff the window suppresses the density.
	require.Less(t, dt[0], dp[0])
	require.Less(t, dt[1], dp[1])
	// Well above the taper both are finite and positive.
	require.Greater(t, dt[2], 0.0)
}

func TestMassRatioPowerlaw(t *testing.T) {
	m, err := NewPowerlawSplineMass(8, []float64{30}, []float64{30}, MassConfig{})
	require.NoError(t, err)
	// M2Min defaults to MMin=3, so for m1=30 the ratio support is
	// [0.1, 1].
	qs := m.Ratio([]float64{0.05, 0.1, 0.5, 1}, []float64{30, 30, 30, 30}, 2)
	require.Equal(t, 0.0, qs[0])
	require.InDelta(t, 0.01, qs[1], 1e-12)
	require.InDelta(t, 0.25, qs[2], 1e-12)
	require.InDelta(t, 1.0, qs[3], 1e-12)

	require.Panics(t, func() { m.Ratio([]float64{0.5}, []float64{30, 40}, 2) })
}
