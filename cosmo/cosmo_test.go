// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cosmo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHubbleRate(t *testing.T) {
	c := Planck15(3)
	require.InDelta(t, 1, c.E(0), 1e-12)
	require.Greater(t, c.E(1), c.E(0.5))
}

func TestComovingDistance(t *testing.T) {
	c := Planck15(3)
	require.InDelta(t, 0, c.ComovingDistance(0), 1e-6)
	// Reference values from a fine direct quadrature of the Planck15
	// parameters (Mpc).
	require.InDelta(t, 1945.65, c.ComovingDistance(0.5), 1.0)
	require.InDelta(t, 3396.21, c.ComovingDistance(1.0), 1.0)
	require.InDelta(t, 5312.38, c.ComovingDistance(2.0), 1.0)
	// Monotone in z.
	prev := 0.0
	for _, z := range []float64{0.1, 0.4, 0.9, 1.6, 2.5} {
		chi := c.ComovingDistance(z)
		require.Greater(t, chi, prev)
		prev = chi
	}
}

func TestDiffComovingVolume(t *testing.T) {
	c := Planck15(3)
	// Gpc^3 per unit redshift, full sky.
	require.InDelta(t, 159.90, c.DiffComovingVolume(0.5), 0.5)
	require.InDelta(t, 360.72, c.DiffComovingVolume(1.0), 0.5)
	require.InDelta(t, 522.26, c.DiffComovingVolume(2.0), 0.5)

	each := c.DiffComovingVolumeEach([]float64{0.5, 1.0, 2.0})
	require.InDelta(t, c.DiffComovingVolume(1.0), each[1], 1e-12)
}

func TestNewErrors(t *testing.T) {
	_, err := New(0, 0.3, 2)
	require.Error(t, err)
	_, err = New(67, 1.2, 2)
	require.Error(t, err)
	_, err = New(67, 0.3, 0)
	require.Error(t, err)
}
