// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cosmo provides the flat Lambda-CDM quantities the redshift
// population models need, chiefly the differential comoving volume
// dVc/dz evaluated at arbitrary redshifts.
package cosmo // import "github.com/sharanbngr/gwinferno/cosmo"

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// cLight is the speed of light in km/s.
const cLight = 299792.458

// distTablePoints is the resolution of the comoving-distance table.
const distTablePoints = 2048

// Cosmology is a flat Lambda-CDM cosmology with a precomputed comoving
// distance table. It is immutable after construction and safe for
// concurrent use.
type Cosmology struct {
	h0     float64 // km/s/Mpc
	omegaM float64
	zmax   float64
	chi    interp.AkimaSpline // comoving distance in Mpc over [0, zmax]
}

// New constructs a cosmology with Hubble constant h0 (km/s/Mpc) and
// matter density omegaM, tabulating comoving distance out to zmax.
func New(h0, omegaM, zmax float64) (*Cosmology, error) {
	if h0 <= 0 || omegaM <= 0 || omegaM >= 1 {
		return nil, fmt.Errorf("cosmo: bad parameters H0=%v OmegaM=%v", h0, omegaM)
	}
	if zmax <= 0 {
		return nil, fmt.Errorf("cosmo: zmax %v must be positive", zmax)
	}
	c := &Cosmology{h0: h0, omegaM: omegaM, zmax: zmax}

	// Tabulate chi(z) = (c/H0) * int_0^z dz'/E(z') by cumulative
	// trapezoid on a fine grid, then fit an interpolant.
	zs := floats.Span(make([]float64, distTablePoints), 0, zmax)
	chis := make([]float64, len(zs))
	hubble := cLight / h0
	prev := 1.0 // 1/E(0)
	for i := 1; i < len(zs); i++ {
		cur := 1 / c.E(zs[i])
		chis[i] = chis[i-1] + 0.5*(prev+cur)*(zs[i]-zs[i-1])*hubble
		prev = cur
	}
	if err := c.chi.Fit(zs, chis); err != nil {
		return nil, fmt.Errorf("cosmo: fitting distance table: %v", err)
	}
	return c, nil
}

// Planck15 returns a cosmology with the Planck 2015 parameters
// (H0 = 67.74 km/s/Mpc, OmegaM = 0.3089) tabulated out to zmax.
func Planck15(zmax float64) *Cosmology {
	c, err := New(67.74, 0.3089, zmax)
	if err != nil {
		panic(err)
	}
	return c
}

// E returns the dimensionless Hubble rate
// sqrt(OmegaM*(1+z)^3 + OmegaL), with OmegaL = 1 - OmegaM.
func (c *Cosmology) E(z float64) float64 {
	zp := 1 + z
	return math.Sqrt(c.omegaM*zp*zp*zp + (1 - c.omegaM))
}

// ComovingDistance returns the comoving distance to z in Mpc. z must be
// within [0, zmax].
func (c *Cosmology) ComovingDistance(z float64) float64 {
	return c.chi.Predict(z)
}

// DiffComovingVolume returns dVc/dz at z in Gpc^3 per unit redshift,
// integrated over the full sky:
//
//	dVc/dz = 4*pi * (c/H0) * chi(z)^2 / E(z)
func (c *Cosmology) DiffComovingVolume(z float64) float64 {
	chi := c.ComovingDistance(z)
	mpc3 := 4 * math.Pi * (cLight / c.h0) * chi * chi / c.E(z)
	return mpc3 * 1e-9
}

// DiffComovingVolumeEach returns DiffComovingVolume for each redshift.
func (c *Cosmology) DiffComovingVolumeEach(zs []float64) []float64 {
	out := make([]float64, len(zs))
	for i, z := range zs {
		out[i] = c.DiffComovingVolume(z)
	}
	return out
}
