// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package units

import (
	"github.com/gomlx/gomlx/pkg/core/graph"
	. "github.com/gomlx/gomlx/pkg/support/exceptions"

	"github.com/gomlx/gorbm/samplers"
)

// Gamma is a layer of two-parameter Gamma units using an approximate sampler
// for speed. The second parameter rides on a log proxy: with own activation
// a1 and proxy activation a2, the distribution is
// Gamma(shape = a2+1, scale = -1/a1).
//
// The activations must satisfy a1 < 0 and a2 > -1 for the distribution to be
// valid. Neither is guarded here; the recommended way to satisfy the a2
// constraint is a fixed-bias parameter on the log proxy, so that the
// remaining activation only needs to be positive.
type Gamma struct {
	base

	// Log is the log-transform proxy, named "<name>_log".
	Log *Proxy
}

var (
	_ Sampler     = (*Gamma)(nil)
	_ MeanFielder = (*Gamma)(nil)
)

// NewGamma creates a Gamma unit layer and its log proxy. The model is
// required only by the Sample shortcut.
func NewGamma(model Resolver, name string) *Gamma {
	u := &Gamma{base: base{name: name, model: model}}
	u.Log = newProxy(u, logarithm, proxyName(name, "_log"))
	u.proxies = []*Proxy{u.Log}
	return u
}

func (u *Gamma) shapeAndScale(vmap VMap) (shape, scale *graph.Node) {
	a1 := vmap.ActivationOf(u)
	a2 := vmap.ActivationOf(u.Log)
	shape = graph.AddScalar(a2, 1)
	scale = graph.Neg(graph.Div(graph.OnesLike(a1), a1))
	return
}

// SampleFromActivation draws approximate Gamma(a2+1, -1/a1) variates with
// both channels read from vmap.
func (u *Gamma) SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	shape, scale := u.shapeAndScale(vmap)
	return samplers.GammaApprox(rngState, shape, scale)
}

// MeanFieldFromActivation returns the distribution mean (a2+1)·(-1/a1).
func (u *Gamma) MeanFieldFromActivation(vmap VMap) *graph.Node {
	shape, scale := u.shapeAndScale(vmap)
	return graph.Mul(shape, scale)
}

// Sample resolves both activation channels through the owning model and
// delegates to SampleFromActivation with an inline two-entry VMap, bypassing
// vmap for its own keys — the same shortcut as
// LearntPrecisionGaussian.Sample.
func (u *Gamma) Sample(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	if u.model == nil {
		Panicf("units: %q has no owning model to resolve activations -- use SampleFromActivation with a pre-populated VMap", u.Name())
	}
	a1 := u.model.Activation(u, vmap)
	a2 := u.model.Activation(u.Log, vmap)
	return u.SampleFromActivation(rngState, VMap{u: a1, u.Log: a2})
}
