// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package units

import (
	"github.com/gomlx/gomlx/pkg/core/graph"
	. "github.com/gomlx/gomlx/pkg/support/exceptions"

	"github.com/gomlx/gorbm/samplers"
)

// Gaussian is a layer of unit-variance Gaussian units with mean a.
//
// Its precision proxy (a²/2) exists for energy-function bookkeeping: the
// external energy computation reads it, the sampling path here does not.
type Gaussian struct {
	base

	// Precision is the square-half proxy, named "<name>_precision".
	Precision *Proxy
}

var (
	_ Sampler     = (*Gaussian)(nil)
	_ MeanFielder = (*Gaussian)(nil)
)

// NewGaussian creates a fixed unit-variance Gaussian unit layer and its
// precision proxy.
func NewGaussian(model Resolver, name string) *Gaussian {
	u := &Gaussian{base: base{name: name, model: model}}
	u.Precision = newProxy(u, squareHalf, proxyName(name, "_precision"))
	u.proxies = []*Proxy{u.Precision}
	return u
}

// SampleFromActivation draws N(a, 1).
func (u *Gaussian) SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	a := vmap.ActivationOf(u)
	return samplers.Gaussian(rngState, a, graph.OnesLike(a))
}

// MeanFieldFromActivation returns a, the Gaussian mean.
func (u *Gaussian) MeanFieldFromActivation(vmap VMap) *graph.Node {
	return vmap.ActivationOf(u)
}

// LearntPrecisionGaussian is a Gaussian layer whose precision is part of the
// energy, carried by a square proxy as a second activation channel: with own
// activation a1 and proxy activation a2, the distribution is
// N(a1/(-2·a2), 1/(-2·a2)).
//
// a2 must be strictly negative for the distribution to be valid. This is not
// guarded here: constraining it is the surrounding parameterization's
// responsibility, and an invalid a2 yields NaNs from the sampler.
type LearntPrecisionGaussian struct {
	base

	// Precision is the square proxy, named "<name>_precision".
	Precision *Proxy
}

var (
	_ Sampler     = (*LearntPrecisionGaussian)(nil)
	_ MeanFielder = (*LearntPrecisionGaussian)(nil)
)

// NewLearntPrecisionGaussian creates a learnt-precision Gaussian unit layer
// and its precision proxy. The model is required only by the Sample
// shortcut.
func NewLearntPrecisionGaussian(model Resolver, name string) *LearntPrecisionGaussian {
	u := &LearntPrecisionGaussian{base: base{name: name, model: model}}
	u.Precision = newProxy(u, square, proxyName(name, "_precision"))
	u.proxies = []*Proxy{u.Precision}
	return u
}

// SampleFromActivation draws N(a1/(-2·a2), 1/(-2·a2)) with both channels
// read from vmap.
func (u *LearntPrecisionGaussian) SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	a1 := vmap.ActivationOf(u)
	a2 := vmap.ActivationOf(u.Precision)
	minusTwoA2 := graph.MulScalar(a2, -2)
	mean := graph.Div(a1, minusTwoA2)
	variance := graph.Div(graph.OnesLike(a2), minusTwoA2)
	return samplers.Gaussian(rngState, mean, variance)
}

// MeanFieldFromActivation returns the distribution mean a1/(-2·a2).
func (u *LearntPrecisionGaussian) MeanFieldFromActivation(vmap VMap) *graph.Node {
	a1 := vmap.ActivationOf(u)
	a2 := vmap.ActivationOf(u.Precision)
	return graph.Div(a1, graph.MulScalar(a2, -2))
}

// Sample resolves both activation channels through the owning model and
// delegates to SampleFromActivation with an inline two-entry VMap — it
// deliberately bypasses vmap for its own keys. This layer is usually the
// output of a conditional distribution rather than one sampled in lockstep
// with siblings, so its activations are cheapest to resolve on demand.
func (u *LearntPrecisionGaussian) Sample(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	if u.model == nil {
		Panicf("units: %q has no owning model to resolve activations -- use SampleFromActivation with a pre-populated VMap", u.Name())
	}
	a1 := u.model.Activation(u, vmap)
	a2 := u.model.Activation(u.Precision, vmap)
	return u.SampleFromActivation(rngState, VMap{u: a1, u.Precision: a2})
}
