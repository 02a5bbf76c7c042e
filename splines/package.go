// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package splines implements basis-spline density models: knot-vector
// construction, M-spline and B-spline basis evaluation via the Cox-de Boor
// recursion, precomputed design matrices, and projection of coefficient
// vectors onto numerically normalized probability densities.
//
// A spline instance is built once with a fixed knot vector, order, and
// normalization grid, and then queried many times with varying coefficient
// vectors. All types are immutable after construction and safe for
// concurrent use.
package splines // import "github.com/sharanbngr/gwinferno/splines"
