// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splines

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDesignSetMatchesDirectEvaluation(t *testing.T) {
	s, err := NewBSpline(Config{KnotConfig: KnotConfig{DF: 6, Min: 0, Max: 1}})
	require.NoError(t, err)

	pe := []float64{0.1, 0.3, 0.5}
	inj := []float64{0.2, 0.4, 0.6, 0.8}
	grid := []float64{0, 0.25, 0.5, 0.75, 1}
	set := NewDesignSet(s, map[Role][]float64{
		RolePE:        pe,
		RoleInjection: inj,
		RoleNormGrid:  grid,
	})

	require.True(t, mat.Equal(s.Bases(pe), set.Matrix(RolePE)))
	require.True(t, mat.Equal(s.Bases(inj), set.Matrix(RoleInjection)))
	require.True(t, mat.Equal(s.Bases(grid), set.Matrix(RoleNormGrid)))
}

func TestDesignSetMissingRolePanics(t *testing.T) {
	s, err := NewBSpline(Config{KnotConfig: KnotConfig{DF: 6, Min: 0, Max: 1}})
	require.NoError(t, err)
	set := NewDesignSet(s, map[Role][]float64{RolePE: {0.5}})
	require.True(t, set.Has(RolePE))
	require.False(t, set.Has(RoleInjection))
	require.Panics(t, func() { set.Matrix(RoleInjection) })
}

func TestRoleString(t *testing.T) {
	require.Equal(t, "pe", RolePE.String())
	require.Equal(t, "injection", RoleInjection.String())
	require.Equal(t, "norm-grid", RoleNormGrid.String())
}
