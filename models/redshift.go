// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/sharanbngr/gwinferno/cosmo"
	"github.com/sharanbngr/gwinferno/splines"
)

// redshiftFloor is the lower edge of the redshift grid; the merger-rate
// density diverges nowhere but dVc/dz vanishes at z=0, so the grid starts
// just above it.
const redshiftFloor = 1e-3

// RedshiftConfig configures the redshift evolution models.
type RedshiftConfig struct {
	// ZMax is the upper edge of the redshift domain; the density is 0
	// above it. Defaults to 2.3.
	ZMax float64

	// GridPoints is the normalization-grid resolution. Defaults to 1000.
	GridPoints int

	// Cosmology supplies dVc/dz. If nil, Planck15 tabulated past the
	// largest sample redshift is used.
	Cosmology *cosmo.Cosmology
}

func (cfg *RedshiftConfig) applyDefaults(zPE, zInj []float64) {
	if cfg.ZMax == 0 {
		cfg.ZMax = 2.3
	}
	if cfg.GridPoints == 0 {
		cfg.GridPoints = 1000
	}
	if cfg.Cosmology == nil {
		zTop := cfg.ZMax
		for _, zs := range [][]float64{zPE, zInj} {
			if len(zs) > 0 {
				zTop = math.Max(zTop, floats.Max(zs))
			}
		}
		cfg.Cosmology = cosmo.Planck15(zTop + 0.1)
	}
}

// PowerlawRedshift models the redshift distribution of detected mergers
// as dVc/dz * (1+z)^(lambda-1), normalized by trapezoidal integration
// over a fixed redshift grid and cut to zero above ZMax. The comoving
// volume factors at the sample sets and the grid are precomputed at
// construction.
type PowerlawRedshift struct {
	zmin, zmax float64
	zs         []float64
	dVdcGrid   []float64

	samples map[splines.Role][]float64
	dVdcs   map[splines.Role][]float64
}

// NewPowerlawRedshift builds the baseline model for fixed redshift sample
// sets.
func NewPowerlawRedshift(zPE, zInj []float64, cfg RedshiftConfig) *PowerlawRedshift {
	cfg.applyDefaults(zPE, zInj)
	m := &PowerlawRedshift{
		zmin: redshiftFloor,
		zmax: cfg.ZMax,
		zs:   floats.Span(make([]float64, cfg.GridPoints), redshiftFloor, cfg.ZMax),
	}
	m.dVdcGrid = cfg.Cosmology.DiffComovingVolumeEach(m.zs)
	m.samples = map[splines.Role][]float64{
		splines.RolePE:        append([]float64(nil), zPE...),
		splines.RoleInjection: append([]float64(nil), zInj...),
		splines.RoleNormGrid:  m.zs,
	}
	m.dVdcs = map[splines.Role][]float64{
		splines.RolePE:        cfg.Cosmology.DiffComovingVolumeEach(zPE),
		splines.RoleInjection: cfg.Cosmology.DiffComovingVolumeEach(zInj),
		splines.RoleNormGrid:  m.dVdcGrid,
	}
	return m
}

// Bounds returns the redshift domain [zmin, zmax].
func (m *PowerlawRedshift) Bounds() (zmin, zmax float64) { return m.zmin, m.zmax }

// Grid returns the fixed normalization grid.
func (m *PowerlawRedshift) Grid() []float64 { return m.zs }

// Normalization integrates the unnormalized density over the grid.
func (m *PowerlawRedshift) Normalization(lamb float64) float64 {
	pz := make([]float64, len(m.zs))
	for i, z := range m.zs {
		pz[i] = m.dVdcGrid[i] * math.Pow(1+z, lamb-1)
	}
	return integrate.Trapezoidal(m.zs, pz)
}

// Eval returns the normalized density at a role's stored redshifts, zero
// above ZMax.
func (m *PowerlawRedshift) Eval(role splines.Role, lamb float64) []float64 {
	zs, dVdc := m.samples[role], m.dVdcs[role]
	norm := m.Normalization(lamb)
	out := make([]float64, len(zs))
	for i, z := range zs {
		if z > m.zmax {
			continue
		}
		out[i] = dVdc[i] * math.Pow(1+z, lamb-1) / norm
	}
	return out
}

// PowerlawSplineRedshift extends the baseline with an exponentiated
// log-domain B-spline perturbation: dVc/dz * (1+z)^(lambda-1) *
// exp(spline(z)). With all coefficients zero it reduces exactly to the
// baseline.
type PowerlawSplineRedshift struct {
	base    *PowerlawRedshift
	spline  *splines.LogXBSpline
	designs *splines.DesignSet
}

// NewPowerlawSplineRedshift builds the perturbed model for fixed redshift
// sample sets. nknots is the spline's degrees of freedom.
func NewPowerlawSplineRedshift(nknots int, zPE, zInj []float64, cfg RedshiftConfig) (*PowerlawSplineRedshift, error) {
	base := NewPowerlawRedshift(zPE, zInj, cfg)
	spline, err := splines.NewLogXBSpline(splines.Config{KnotConfig: splines.KnotConfig{
		DF: nknots, Min: base.zmin, Max: base.zmax,
	}})
	if err != nil {
		return nil, err
	}
	return &PowerlawSplineRedshift{
		base:    base,
		spline:  spline,
		designs: splines.NewDesignSet(spline, base.samples),
	}, nil
}

// Baseline returns the unperturbed model sharing this model's grids.
func (m *PowerlawSplineRedshift) Baseline() *PowerlawRedshift { return m.base }

// perturbation returns exp(spline projection) for a role.
func (m *PowerlawSplineRedshift) perturbation(role splines.Role, cs []float64) []float64 {
	return expEach(m.spline.Project(m.designs.Matrix(role), cs))
}

// Normalization integrates the perturbed density over the grid. It is
// recomputed per coefficient vector.
func (m *PowerlawSplineRedshift) Normalization(lamb float64, cs []float64) float64 {
	pz := make([]float64, len(m.base.zs))
	pert := m.perturbation(splines.RoleNormGrid, cs)
	for i, z := range m.base.zs {
		pz[i] = m.base.dVdcGrid[i] * math.Pow(1+z, lamb-1) * pert[i]
	}
	return integrate.Trapezoidal(m.base.zs, pz)
}

// Eval returns the normalized perturbed density at a role's stored
// redshifts, zero above ZMax.
func (m *PowerlawSplineRedshift) Eval(role splines.Role, lamb float64, cs []float64) []float64 {
	zs, dVdc := m.base.samples[role], m.base.dVdcs[role]
	pert := m.perturbation(role, cs)
	norm := m.Normalization(lamb, cs)
	out := make([]float64, len(zs))
	for i, z := range zs {
		if z > m.base.zmax {
			continue
		}
		out[i] = dVdc[i] * math.Pow(1+z, lamb-1) * pert[i] / norm
	}
	return out
}
