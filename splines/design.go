// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splines

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Role identifies a fixed query-point set whose design matrix a model
// precomputes at construction. Recomputing the O(DF*Order) basis
// evaluation for the same points on every likelihood call is the dominant
// cost in an inference loop, so models evaluate each role once and reuse
// the matrix for their lifetime.
type Role int

const (
	// RolePE marks parameter-estimation posterior samples.
	RolePE Role = iota

	// RoleInjection marks found-injection samples.
	RoleInjection

	// RoleNormGrid marks the fixed normalization grid.
	RoleNormGrid
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RolePE:
		return "pe"
	case RoleInjection:
		return "injection"
	case RoleNormGrid:
		return "norm-grid"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// A DesignSet holds the design matrices for a model's fixed point sets.
// It is populated once at construction and read-only afterward; it does
// not grow and is safe for concurrent readers.
type DesignSet struct {
	mats map[Role]*mat.Dense
}

// NewDesignSet evaluates b at every point set in points and retains the
// resulting matrices.
func NewDesignSet(b Basis, points map[Role][]float64) *DesignSet {
	mats := make(map[Role]*mat.Dense, len(points))
	for role, xs := range points {
		mats[role] = b.Bases(xs)
	}
	return &DesignSet{mats: mats}
}

// Matrix returns the design matrix for role. It panics if the role was
// not provided at construction; the set of roles a model needs is fixed
// when the model is built.
func (s *DesignSet) Matrix(role Role) *mat.Dense {
	dm, ok := s.mats[role]
	if !ok {
		panic(fmt.Sprintf("splines: no design matrix for role %v", role))
	}
	return dm
}

// Has reports whether a design matrix exists for role.
func (s *DesignSet) Has(role Role) bool {
	_, ok := s.mats[role]
	return ok
}
