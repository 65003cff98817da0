// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package units

import (
	"github.com/gomlx/gomlx/pkg/core/graph"

	"github.com/gomlx/gorbm/activations"
	"github.com/gomlx/gorbm/samplers"
)

// Binary is a layer of independent Bernoulli units: P(1) = sigmoid(a).
type Binary struct{ base }

var (
	_ Sampler      = (*Binary)(nil)
	_ MeanFielder  = (*Binary)(nil)
	_ FreeEnergier = (*Binary)(nil)
)

// NewBinary creates a binary unit layer. The model may be nil for units only
// ever driven through pre-populated VMaps.
func NewBinary(model Resolver, name string) *Binary {
	return &Binary{base{name: name, model: model}}
}

// SampleFromActivation draws Bernoulli(sigmoid(a)).
func (u *Binary) SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	p := activations.Sigmoid(vmap.ActivationOf(u))
	return samplers.Bernoulli(rngState, p)
}

// MeanFieldFromActivation returns sigmoid(a), the Bernoulli mean.
func (u *Binary) MeanFieldFromActivation(vmap VMap) *graph.Node {
	return activations.Sigmoid(vmap.ActivationOf(u))
}

// FreeEnergyTermFromActivation returns -softplus(a) summed over every axis
// but the batch axis.
func (u *Binary) FreeEnergyTermFromActivation(vmap VMap) *graph.Node {
	s := graph.Neg(activations.Softplus(vmap.ActivationOf(u)))
	return reduceUnitAxes(s)
}

// SymmetricBinary is a Bernoulli layer whose energy includes both x and
// (1-x), via a one-minus proxy. Symmetrizing the energy lets the surrounding
// parameterization satisfy validity constraints with much weaker bounds.
// The effective logit is the unit's activation minus the flipped proxy's
// activation.
type SymmetricBinary struct {
	base

	// Flipped is the one-minus proxy, named "<name>_flipped".
	Flipped *Proxy
}

var (
	_ Sampler      = (*SymmetricBinary)(nil)
	_ MeanFielder  = (*SymmetricBinary)(nil)
	_ FreeEnergier = (*SymmetricBinary)(nil)
)

// NewSymmetricBinary creates a symmetric binary unit layer and its flipped
// proxy.
func NewSymmetricBinary(model Resolver, name string) *SymmetricBinary {
	u := &SymmetricBinary{base: base{name: name, model: model}}
	u.Flipped = newProxy(u, oneMinus, proxyName(name, "_flipped"))
	u.proxies = []*Proxy{u.Flipped}
	return u
}

func (u *SymmetricBinary) logit(vmap VMap) *graph.Node {
	return graph.Sub(vmap.ActivationOf(u), vmap.ActivationOf(u.Flipped))
}

// SampleFromActivation draws Bernoulli(sigmoid(a - a_flipped)).
func (u *SymmetricBinary) SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	return samplers.Bernoulli(rngState, activations.Sigmoid(u.logit(vmap)))
}

// MeanFieldFromActivation returns sigmoid(a - a_flipped).
func (u *SymmetricBinary) MeanFieldFromActivation(vmap VMap) *graph.Node {
	return activations.Sigmoid(u.logit(vmap))
}

// FreeEnergyTermFromActivation returns -softplus(a - a_flipped) summed over
// every axis but the batch axis.
func (u *SymmetricBinary) FreeEnergyTermFromActivation(vmap VMap) *graph.Node {
	return reduceUnitAxes(graph.Neg(activations.Softplus(u.logit(vmap))))
}
