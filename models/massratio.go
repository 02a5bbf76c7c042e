// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/sharanbngr/gwinferno/dists"
	"github.com/sharanbngr/gwinferno/splines"
)

// MassRatioConfig configures the jointly spline-perturbed (m1, q) model.
type MassRatioConfig struct {
	// MMin and MMax bound the primary-mass domain. Defaults: 2 and 100.
	MMin, MMax float64

	// Order is the spline order for both axes. Defaults to 4.
	Order int

	// MassGridPoints and RatioGridPoints set the joint normalization
	// mesh resolution. Defaults: 1000 and 500.
	MassGridPoints, RatioGridPoints int
}

func (cfg *MassRatioConfig) applyDefaults() {
	if cfg.MMin == 0 {
		cfg.MMin = 2
	}
	if cfg.MMax == 0 {
		cfg.MMax = 100
	}
	if cfg.Order == 0 {
		cfg.Order = 4
	}
	if cfg.MassGridPoints == 0 {
		cfg.MassGridPoints = 1000
	}
	if cfg.RatioGridPoints == 0 {
		cfg.RatioGridPoints = 500
	}
}

// SplineMassRatio models both the primary mass and the mass ratio as
// spline-perturbed power laws with a single joint normalization: the
// product density is integrated over a fixed (m, q) mesh, q first and
// then m. The mass spline lives in log mass over [MMin, MMax]; the ratio
// spline is linear over [0, 1].
type SplineMassRatio struct {
	mmin, mmax float64

	ms, qs []float64

	mspline *splines.LogXBSpline
	qspline *splines.BSpline

	mdesigns, qdesigns *splines.DesignSet
	msamples, qsamples map[splines.Role][]float64
}

// NewSplineMassRatio builds the model for fixed paired (m1, q) sample
// sets. nknots and qknots are the per-axis degrees of freedom.
func NewSplineMassRatio(nknots, qknots int, m1PE, qPE, m1Inj, qInj []float64, cfg MassRatioConfig) (*SplineMassRatio, error) {
	cfg.applyDefaults()
	if len(m1PE) != len(qPE) || len(m1Inj) != len(qInj) {
		panic("models: mass and ratio samples have mismatched lengths")
	}
	mspline, err := splines.NewLogXBSpline(splines.Config{KnotConfig: splines.KnotConfig{
		DF: nknots, Order: cfg.Order, Min: cfg.MMin, Max: cfg.MMax,
	}})
	if err != nil {
		return nil, err
	}
	qspline, err := splines.NewBSpline(splines.Config{KnotConfig: splines.KnotConfig{
		DF: qknots, Order: cfg.Order, Min: 0, Max: 1,
	}})
	if err != nil {
		return nil, err
	}
	m := &SplineMassRatio{
		mmin:    cfg.MMin,
		mmax:    cfg.MMax,
		ms:      floats.Span(make([]float64, cfg.MassGridPoints), cfg.MMin, cfg.MMax),
		qs:      floats.Span(make([]float64, cfg.RatioGridPoints), cfg.MMin/cfg.MMax, 1),
		mspline: mspline,
		qspline: qspline,
	}
	m.msamples = map[splines.Role][]float64{
		splines.RolePE:        append([]float64(nil), m1PE...),
		splines.RoleInjection: append([]float64(nil), m1Inj...),
		splines.RoleNormGrid:  m.ms,
	}
	m.qsamples = map[splines.Role][]float64{
		splines.RolePE:        append([]float64(nil), qPE...),
		splines.RoleInjection: append([]float64(nil), qInj...),
		splines.RoleNormGrid:  m.qs,
	}
	m.mdesigns = splines.NewDesignSet(mspline, m.msamples)
	m.qdesigns = splines.NewDesignSet(qspline, m.qsamples)
	return m, nil
}

func expEach(xs []float64) []float64 {
	for i, x := range xs {
		xs[i] = math.Exp(x)
	}
	return xs
}

// Primary returns the unnormalized primary-mass density at a role's
// stored samples.
func (m *SplineMassRatio) Primary(role splines.Role, alpha, mmin, mmax float64, cs []float64) []float64 {
	p := dists.PowerlawEach(m.msamples[role], -alpha, mmin, mmax, 0)
	floats.Mul(p, expEach(m.mspline.Project(m.mdesigns.Matrix(role), cs)))
	return p
}

// Ratio returns the unnormalized mass-ratio density at a role's stored
// samples, with the lower power-law bound mmin/m1 varying per sample.
func (m *SplineMassRatio) Ratio(role splines.Role, beta, mmin float64, vs []float64) []float64 {
	qs, m1s := m.qsamples[role], m.msamples[role]
	pert := expEach(m.qspline.Project(m.qdesigns.Matrix(role), vs))
	out := make([]float64, len(qs))
	for i, q := range qs {
		out[i] = dists.Powerlaw(q, beta, mmin/m1s[i], 1, 0) * pert[i]
	}
	return out
}

// Norm integrates the joint unnormalized density over the (m, q) mesh by
// double trapezoid, q first and then m. The mesh never materializes the
// outer-product design tensor: the two perturbations are evaluated on
// their own axes and combined per mesh column.
func (m *SplineMassRatio) Norm(alpha, mmin, mmax, beta float64, cs, vs []float64) float64 {
	pm := dists.PowerlawEach(m.ms, -alpha, mmin, mmax, 0)
	floats.Mul(pm, expEach(m.mspline.Project(m.mdesigns.Matrix(splines.RoleNormGrid), cs)))
	pertQ := expEach(m.qspline.Project(m.qdesigns.Matrix(splines.RoleNormGrid), vs))

	col := make([]float64, len(m.qs))
	inner := make([]float64, len(m.ms))
	for b, mb := range m.ms {
		low := mmin / mb
		for a, q := range m.qs {
			col[a] = dists.Powerlaw(q, beta, low, 1, 0) * pertQ[a]
		}
		inner[b] = pm[b] * integrate.Trapezoidal(m.qs, col)
	}
	return integrate.Trapezoidal(m.ms, inner)
}

// Joint returns the normalized joint (m1, q) density at a role's stored
// samples.
func (m *SplineMassRatio) Joint(role splines.Role, alpha, mmin, mmax, beta float64, cs, vs []float64) []float64 {
	p := m.Primary(role, alpha, mmin, mmax, cs)
	floats.Mul(p, m.Ratio(role, beta, mmin, vs))
	floats.Scale(1/m.Norm(alpha, mmin, mmax, beta, cs, vs), p)
	return p
}
