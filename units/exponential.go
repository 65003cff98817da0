// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package units

import (
	"github.com/gomlx/gomlx/pkg/core/graph"

	"github.com/gomlx/gorbm/samplers"
)

// TruncatedExponential is a layer of exponential units truncated to the
// support [0, 1], with rate -a. The activation must be strictly negative;
// this is not guarded — a non-negative activation yields NaNs from the
// sampler.
type TruncatedExponential struct{ base }

var (
	_ Sampler     = (*TruncatedExponential)(nil)
	_ MeanFielder = (*TruncatedExponential)(nil)
)

// NewTruncatedExponential creates a truncated-exponential unit layer.
func NewTruncatedExponential(model Resolver, name string) *TruncatedExponential {
	return &TruncatedExponential{base{name: name, model: model}}
}

// SampleFromActivation draws from the exponential with rate -a truncated to
// [0, 1].
func (u *TruncatedExponential) SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	return samplers.TruncatedExponential(rngState, graph.Neg(vmap.ActivationOf(u)))
}

// MeanFieldFromActivation returns the truncated distribution's closed-form
// mean.
func (u *TruncatedExponential) MeanFieldFromActivation(vmap VMap) *graph.Node {
	return samplers.TruncatedExponentialMean(graph.Neg(vmap.ActivationOf(u)))
}

// Exponential is a layer of exponential units on [0, ∞) with rate -a. The
// activation must be strictly negative; not guarded, as for
// TruncatedExponential.
type Exponential struct{ base }

var (
	_ Sampler     = (*Exponential)(nil)
	_ MeanFielder = (*Exponential)(nil)
)

// NewExponential creates an exponential unit layer.
func NewExponential(model Resolver, name string) *Exponential {
	return &Exponential{base{name: name, model: model}}
}

// SampleFromActivation draws from the exponential with rate -a.
func (u *Exponential) SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	return samplers.Exponential(rngState, graph.Neg(vmap.ActivationOf(u)))
}

// MeanFieldFromActivation returns the distribution mean 1/(-a).
func (u *Exponential) MeanFieldFromActivation(vmap VMap) *graph.Node {
	a := vmap.ActivationOf(u)
	return graph.Div(graph.OnesLike(a), graph.Neg(a))
}
