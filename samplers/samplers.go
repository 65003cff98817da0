// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package samplers implements the random-variate generators used by the unit
// distribution families: Bernoulli, Gaussian, one-hot multinomial,
// exponential (plain and truncated to [0,1]) and an approximate Gamma.
//
// Randomness follows the GoMLX convention: every sampler takes the random
// number generator state as a graph node and returns the advanced state along
// with the sample — see graph.RandomUniform. Create the initial state with
// graph.RngStateFromSeed or graph.RngState.
//
// Samplers do not validate their parameter domains: a non-positive rate or
// shape yields whatever the arithmetic yields (typically NaN). Constraining
// parameters is the caller's responsibility.
package samplers

import (
	"github.com/gomlx/gomlx/pkg/core/dtypes"
	. "github.com/gomlx/gomlx/pkg/core/graph"
)

// Bernoulli draws an independent {0, 1} sample per entry of p, with
// P(1) = p. The sample has p's shape and dtype.
func Bernoulli(rngState, p *Node) (newRngState, sample *Node) {
	var u *Node
	newRngState, u = RandomUniform(rngState, p.Shape())
	sample = ConvertDType(LessThan(u, p), p.DType())
	return
}

// Gaussian draws mean + sqrt(variance)·Z per entry, Z ~ N(0, 1). The mean
// and variance nodes must have the same shape.
func Gaussian(rngState, mean, variance *Node) (newRngState, sample *Node) {
	var z *Node
	newRngState, z = RandomNormal(rngState, mean.Shape())
	sample = Add(mean, Mul(Sqrt(variance), z))
	return
}

// Multinomial draws one state per categorical distribution on the last axis
// of p and returns it one-hot encoded, same shape and dtype as p. Exactly one
// entry per last-axis row is 1.
//
// It uses the Gumbel-argmax trick: argmax(log(p) + G) with G standard Gumbel
// noise is a draw from the categorical distribution p.
func Multinomial(rngState, p *Node) (newRngState, sample *Node) {
	var u *Node
	newRngState, u = RandomUniform(rngState, p.Shape())
	u = Max(u, ConstAs(u, 1e-10))
	gumbel := Neg(Log(Neg(Log(u))))
	states := p.Shape().Dimensions[p.Rank()-1]
	// log(0) = -Inf drops zero-probability states from the argmax.
	choice := ArgMax(Add(Log(p), gumbel), -1, dtypes.Int32)
	sample = OneHot(choice, states, p.DType())
	return
}

// Exponential draws from the exponential distribution with the given rate,
// support [0, ∞), via the inverse CDF -log(1-U)/rate.
func Exponential(rngState, rate *Node) (newRngState, sample *Node) {
	var u *Node
	newRngState, u = RandomUniform(rngState, rate.Shape())
	sample = Div(Neg(Log1p(Neg(u))), rate)
	return
}

// TruncatedExponential draws from the exponential distribution with the given
// rate truncated to the support [0, 1], via the inverse of the truncated CDF:
// -log(1 - U·(1-exp(-rate)))/rate.
func TruncatedExponential(rngState, rate *Node) (newRngState, sample *Node) {
	var u *Node
	newRngState, u = RandomUniform(rngState, rate.Shape())
	truncatedMass := OneMinus(Exp(Neg(rate)))
	sample = Div(Neg(Log1p(Neg(Mul(u, truncatedMass)))), rate)
	return
}

// TruncatedExponentialMean returns the mean of the exponential distribution
// with the given rate truncated to [0, 1]: 1/rate - 1/(exp(rate)-1).
// Deterministic, no RNG state involved.
func TruncatedExponentialMean(rate *Node) *Node {
	one := ConstAs(rate, 1)
	return Sub(Div(one, rate), Div(one, AddScalar(Exp(rate), -1)))
}

// GammaApprox draws approximate Gamma(shape, scale) variates using the
// Wilson-Hilferty transform: Gamma(shape, 1) ≈ shape·(1 - 1/(9·shape) +
// Z/(3·sqrt(shape)))³ with Z ~ N(0, 1), rectified at zero. One normal draw
// per variate, purely elementwise — fast, and accurate for shape ⪆ 1. The
// shape and scale nodes must have the same dimensions.
func GammaApprox(rngState, shape, scale *Node) (newRngState, sample *Node) {
	var z *Node
	newRngState, z = RandomNormal(rngState, shape.Shape())
	cubeRoot := AddScalar(
		Sub(Div(z, MulScalar(Sqrt(shape), 3)),
			Div(ConstAs(shape, 1), MulScalar(shape, 9))),
		1)
	sample = Mul(Mul(shape, scale), PowScalar(cubeRoot, 3))
	sample = Max(sample, ZerosLike(sample))
	return
}
