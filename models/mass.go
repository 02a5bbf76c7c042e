// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/sharanbngr/gwinferno/dists"
	"github.com/sharanbngr/gwinferno/splines"
)

// MassConfig configures a primary-mass population model. Zero values take
// the documented defaults.
type MassConfig struct {
	// MMin and MMax bound the primary-mass domain and the knot
	// placement. Defaults: 3 and 100.
	MMin, MMax float64

	// M2Min is the minimum secondary mass, which sets the lower bound
	// of the mass-ratio power law. Defaults to MMin.
	M2Min float64

	// Order is the spline order. Defaults to 4 (cubic).
	Order int

	// DeltaM is the width of the low-mass smoothing taper. Zero
	// disables the taper.
	DeltaM float64

	// GridPoints is the normalization-grid resolution. Defaults to 1000.
	GridPoints int
}

func (cfg *MassConfig) applyDefaults() {
	if cfg.MMin == 0 {
		cfg.MMin = 3
	}
	if cfg.MMax == 0 {
		cfg.MMax = 100
	}
	if cfg.M2Min == 0 {
		cfg.M2Min = cfg.MMin
	}
	if cfg.Order == 0 {
		cfg.Order = 4
	}
	if cfg.GridPoints == 0 {
		cfg.GridPoints = 1000
	}
}

// PowerlawSplineMass models the primary-mass distribution as a truncated
// power law times an exponentiated B-spline perturbation in log mass,
// optionally tapered at the low-mass cutoff, with the mass-ratio
// distribution a plain power law. The spline knots are log-spaced over
// [MMin, MMax] with proper boundary extension; design matrices for the
// sample sets and the normalization grid are built once at construction.
type PowerlawSplineMass struct {
	mmin, mmax float64
	m2min      float64
	deltaM     float64

	ms      []float64
	spline  *splines.LogXBSpline
	designs *splines.DesignSet
	samples map[splines.Role][]float64
}

// NewPowerlawSplineMass builds the model for fixed primary-mass sample
// sets. nknots is the spline's degrees of freedom.
func NewPowerlawSplineMass(nknots int, m1PE, m1Inj []float64, cfg MassConfig) (*PowerlawSplineMass, error) {
	cfg.applyDefaults()
	spline, err := splines.NewLogXBSpline(splines.Config{KnotConfig: splines.KnotConfig{
		DF: nknots, Order: cfg.Order, Min: cfg.MMin, Max: cfg.MMax,
	}})
	if err != nil {
		return nil, err
	}
	m := &PowerlawSplineMass{
		mmin:   cfg.MMin,
		mmax:   cfg.MMax,
		m2min:  cfg.M2Min,
		deltaM: cfg.DeltaM,
		ms:     floats.Span(make([]float64, cfg.GridPoints), cfg.MMin, cfg.MMax),
		spline: spline,
	}
	m.samples = map[splines.Role][]float64{
		splines.RolePE:        append([]float64(nil), m1PE...),
		splines.RoleInjection: append([]float64(nil), m1Inj...),
		splines.RoleNormGrid:  m.ms,
	}
	m.designs = splines.NewDesignSet(spline, m.samples)
	return m, nil
}

// perturbation returns exp(spline projection) for a role.
func (m *PowerlawSplineMass) perturbation(role splines.Role, cs []float64) []float64 {
	return expEach(m.spline.Project(m.designs.Matrix(role), cs))
}

// baseline returns the power-law shape, tapered when DeltaM is set, at a
// role's stored masses.
func (m *PowerlawSplineMass) baseline(role splines.Role, alpha, mmin, mmax float64) []float64 {
	ms := m.samples[role]
	p := dists.PowerlawEach(ms, -alpha, mmin, mmax, 0)
	if m.deltaM > 0 {
		floats.Mul(p, Smoothing(ms, mmin, m.deltaM))
	}
	return p
}

// NormPrimary returns the trapezoidal integral of the unnormalized
// primary-mass density over the fixed mass grid for the given
// hyperparameters. It is recomputed per call since the perturbation
// depends on the coefficients.
func (m *PowerlawSplineMass) NormPrimary(alpha, mmin, mmax float64, cs []float64) float64 {
	p := m.baseline(splines.RoleNormGrid, alpha, mmin, mmax)
	floats.Mul(p, m.perturbation(splines.RoleNormGrid, cs))
	return integrate.Trapezoidal(m.ms, p)
}

// Primary returns the normalized primary-mass density at a role's stored
// samples: powerlaw(-alpha) on [mmin, mmax] times the spline perturbation,
// divided by NormPrimary.
func (m *PowerlawSplineMass) Primary(role splines.Role, alpha, mmin, mmax float64, cs []float64) []float64 {
	p := m.baseline(role, alpha, mmin, mmax)
	floats.Mul(p, m.perturbation(role, cs))
	floats.Scale(1/m.NormPrimary(alpha, mmin, mmax, cs), p)
	return p
}

// Ratio returns the mass-ratio density powerlaw(beta) on [M2Min/m1, 1]
// for paired (q, m1) samples.
func (m *PowerlawSplineMass) Ratio(qs, m1s []float64, beta float64) []float64 {
	if len(qs) != len(m1s) {
		panic("models: mass-ratio samples have mismatched lengths")
	}
	out := make([]float64, len(qs))
	for i, q := range qs {
		out[i] = dists.Powerlaw(q, beta, m.m2min/m1s[i], 1, 0)
	}
	return out
}

// Joint returns the joint (m1, q) density at a role's stored primary
// masses paired with the given mass ratios.
func (m *PowerlawSplineMass) Joint(role splines.Role, qs []float64, alpha, mmin, mmax, beta float64, cs []float64) []float64 {
	p := m.Primary(role, alpha, mmin, mmax, cs)
	floats.Mul(p, m.Ratio(qs, m.samples[role], beta))
	return p
}
