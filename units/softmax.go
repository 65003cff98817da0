// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package units

import (
	"github.com/gomlx/gomlx/pkg/core/graph"

	"github.com/gomlx/gorbm/activations"
	"github.com/gomlx/gorbm/samplers"
)

// Softmax is a layer of categorical units. Activations are rank 3 —
// (batch, unit, state) — and samples are one-hot on the state axis: exactly
// one state per (batch, unit) pair.
type Softmax struct{ base }

var (
	_ Sampler     = (*Softmax)(nil)
	_ MeanFielder = (*Softmax)(nil)
)

// NewSoftmax creates a categorical unit layer.
func NewSoftmax(model Resolver, name string) *Softmax {
	return &Softmax{base{name: name, model: model}}
}

// SampleFromActivation draws a one-hot multinomial from softmax(a).
func (u *Softmax) SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	p := activations.Softmax(vmap.ActivationOf(u))
	return samplers.Multinomial(rngState, p)
}

// MeanFieldFromActivation returns softmax(a), the expectation of the one-hot
// state vector.
func (u *Softmax) MeanFieldFromActivation(vmap VMap) *graph.Node {
	return activations.Softmax(vmap.ActivationOf(u))
}

// SoftmaxWithZero is a categorical layer with one extra implicit state of
// constant zero activation: the draw is over N+1 states and the implicit
// state's column is dropped from the result, so a (batch, unit) row is
// all-zero when the implicit state wins. This models a unit that can be
// "off" without a dedicated bias.
type SoftmaxWithZero struct{ base }

var (
	_ Sampler     = (*SoftmaxWithZero)(nil)
	_ MeanFielder = (*SoftmaxWithZero)(nil)
)

// NewSoftmaxWithZero creates a categorical unit layer with an implicit zero
// state.
func NewSoftmaxWithZero(model Resolver, name string) *SoftmaxWithZero {
	return &SoftmaxWithZero{base{name: name, model: model}}
}

// dropZeroState chops the implicit state's column off the state axis.
func dropZeroState(x *graph.Node) *graph.Node {
	return graph.Slice(x, graph.AxisRange(), graph.AxisRange(), graph.AxisRangeFromStart(-1))
}

// SampleFromActivation draws the (N+1)-way multinomial over
// softmax-with-zero probabilities and discards the implicit state's column.
func (u *SoftmaxWithZero) SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	p := activations.SoftmaxWithZero(vmap.ActivationOf(u))
	newRngState, sample = samplers.Multinomial(rngState, p)
	sample = dropZeroState(sample)
	return
}

// MeanFieldFromActivation returns the explicit states' probabilities under
// softmax-with-zero; rows sum to less than one, the remainder being the
// implicit state's mass.
func (u *SoftmaxWithZero) MeanFieldFromActivation(vmap VMap) *graph.Node {
	return dropZeroState(activations.SoftmaxWithZero(vmap.ActivationOf(u)))
}
