// Copyright 2026 The gwinferno Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dists provides the truncated parametric probability densities
// that population models compose with spline perturbations: power law,
// truncated normal, scaled beta, and the logistic taper units.
//
// All densities return an explicit floor value (0 by default) outside
// their support instead of propagating NaN, so downstream likelihood
// evaluations see consistent finite values.
package dists // import "github.com/sharanbngr/gwinferno/dists"

import "math"

// A Shape is a univariate probability density over a fixed parameter
// tuple, in scalar and slice forms.
type Shape interface {
	// PDF returns the density at x.
	PDF(x float64) float64

	// PDFEach returns PDF(xs[i]) for each i.
	PDFEach(xs []float64) []float64
}

// Powerlaw returns x^alpha for x in [low, high] and floor outside.
func Powerlaw(x, alpha, low, high, floor float64) float64 {
	if x < low || x > high {
		return floor
	}
	return math.Pow(x, alpha)
}

// PowerlawEach returns Powerlaw for each point in xs.
func PowerlawEach(xs []float64, alpha, low, high, floor float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Powerlaw(x, alpha, low, high, floor)
	}
	return out
}

// TruncNorm returns the density of a normal distribution with mean mu and
// standard deviation sigma truncated to [low, high], or 0 outside. With
// logScale set, the kernel is normal in log(x) (a truncated lognormal)
// and the truncation bounds enter through their logs.
func TruncNorm(x, mu, sigma, low, high float64, logScale bool) float64 {
	if x < low || x > high {
		return 0
	}
	var prob, contNorm, lo, hi float64
	if logScale {
		prob = math.Exp(-(math.Log(x) - mu) * (math.Log(x) - mu) / (2 * sigma * sigma))
		contNorm = 1 / (x * sigma * math.Sqrt(2*math.Pi))
		lo, hi = math.Log(low), math.Log(high)
	} else {
		prob = math.Exp(-(x - mu) * (x - mu) / (2 * sigma * sigma))
		contNorm = 1 / (sigma * math.Sqrt(2*math.Pi))
		lo, hi = low, high
	}
	leftTail := 0.5 * (1 + math.Erf((lo-mu)/(sigma*math.Sqrt2)))
	rightTail := 0.5 * (1 + math.Erf((hi-mu)/(sigma*math.Sqrt2)))
	return prob * contNorm / (rightTail - leftTail)
}

// TruncNormEach returns TruncNorm for each point in xs.
func TruncNormEach(xs []float64, mu, sigma, low, high float64, logScale bool) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = TruncNorm(x, mu, sigma, low, high, logScale)
	}
	return out
}

// LnBeta returns the log of the beta function B(alpha, beta).
func LnBeta(alpha, beta float64) float64 {
	la, _ := math.Lgamma(alpha)
	lb, _ := math.Lgamma(beta)
	lab, _ := math.Lgamma(alpha + beta)
	return la + lb - lab
}

// Beta returns the density of a beta distribution with shape parameters
// alpha and beta rescaled to support [0, scale], and floor outside that
// support.
func Beta(x, alpha, beta, scale, floor float64) float64 {
	if x < 0 || x > scale {
		return floor
	}
	lnb := (alpha-1)*math.Log(x) + (beta-1)*math.Log(scale-x) - (alpha+beta-1)*math.Log(scale)
	return math.Exp(lnb - LnBeta(alpha, beta))
}

// BetaEach returns Beta for each point in xs.
func BetaEach(xs []float64, alpha, beta, scale, floor float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Beta(x, alpha, beta, scale, floor)
	}
	return out
}

// LogisticUnit is a soft truncation window centered at x0. sgn selects
// the side (+1 truncates above x0, -1 below) and sc sets the sharpness.
func LogisticUnit(x, x0, sgn, sc float64) float64 {
	return 1 / (1 + math.Exp(sgn*sc*(x-x0)))
}

// LogLogisticUnit returns log(LogisticUnit(x, x0, -1, 4)) in a form that
// stays finite for large |x - x0|.
func LogLogisticUnit(x, x0 float64) float64 {
	diff := x - x0
	if diff > 0 {
		return -math.Log1p(math.Exp(-4 * diff))
	}
	return 4*diff - math.Log1p(math.Exp(4*diff))
}

// PowerlawLogit returns x^alpha softly truncated above high by a logistic
// window with sharpness falloff. The truncation convention here is
// right-sided; treat this density as provisional until its intended
// truncation direction is settled upstream.
func PowerlawLogit(x, alpha, high, falloff float64) float64 {
	return math.Pow(x, alpha) * LogisticUnit(x, high, 1, falloff)
}

// PowerlawLogitEach returns PowerlawLogit for each point in xs.
func PowerlawLogitEach(xs []float64, alpha, high, falloff float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = PowerlawLogit(x, alpha, high, falloff)
	}
	return out
}

// PowerlawShape is a truncated power law as a Shape.
type PowerlawShape struct {
	Alpha     float64
	Low, High float64
	Floor     float64
}

// PDF returns the density at x.
func (p PowerlawShape) PDF(x float64) float64 {
	return Powerlaw(x, p.Alpha, p.Low, p.High, p.Floor)
}

// PDFEach returns PDF(xs[i]) for each i.
func (p PowerlawShape) PDFEach(xs []float64) []float64 {
	return PowerlawEach(xs, p.Alpha, p.Low, p.High, p.Floor)
}

// TruncNormShape is a truncated normal as a Shape.
type TruncNormShape struct {
	Mu, Sigma float64
	Low, High float64
	LogScale  bool
}

// PDF returns the density at x.
func (t TruncNormShape) PDF(x float64) float64 {
	return TruncNorm(x, t.Mu, t.Sigma, t.Low, t.High, t.LogScale)
}

// PDFEach returns PDF(xs[i]) for each i.
func (t TruncNormShape) PDFEach(xs []float64) []float64 {
	return TruncNormEach(xs, t.Mu, t.Sigma, t.Low, t.High, t.LogScale)
}

// BetaShape is a scaled beta distribution as a Shape.
type BetaShape struct {
	Alpha, B float64
	Scale    float64
	Floor    float64
}

// PDF returns the density at x.
func (b BetaShape) PDF(x float64) float64 {
	return Beta(x, b.Alpha, b.B, b.Scale, b.Floor)
}

// PDFEach returns PDF(xs[i]) for each i.
func (b BetaShape) PDFEach(xs []float64) []float64 {
	return BetaEach(xs, b.Alpha, b.B, b.Scale, b.Floor)
}

var (
	_ Shape = PowerlawShape{}
	_ Shape = TruncNormShape{}
	_ Shape = BetaShape{}
)
