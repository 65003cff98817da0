// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package units

import (
	"sync"

	"github.com/gomlx/gomlx/pkg/core/graph"
	"k8s.io/klog/v2"

	"github.com/gomlx/gorbm/activations"
	"github.com/gomlx/gorbm/samplers"
)

// NREL is a layer of noisy rectified-linear units, from "Rectified Linear
// Units Improve Restricted Boltzmann Machines", Nair & Hinton (ICML 2010).
//
// WARNING: computing the energy or free energy of a configuration does not
// have the usual semantics with NReLUs. Each ReLU stands for an infinite sum
// of Bernoulli units with offset biases; the energy depends on the
// individual Bernoulli values, while only their sum is ever (approximately)
// sampled. NREL therefore offers no free-energy capability, and its sample
// is itself an approximation: linear response plus Gaussian noise, rectified.
type NREL struct{ base }

var (
	_ Sampler     = (*NREL)(nil)
	_ MeanFielder = (*NREL)(nil)
)

var nrelSemanticsWarning = sync.OnceFunc(func() {
	klog.Warning("units.NREL: energy and free-energy semantics are not well defined for noisy rectified-linear units; only sampling and mean-field are supported")
})

// NewNREL creates a noisy rectified-linear unit layer.
func NewNREL(model Resolver, name string) *NREL {
	nrelSemanticsWarning()
	return &NREL{base{name: name, model: model}}
}

// SampleFromActivation approximates a NReLU draw as
// max(0, a + N(0, sigmoid(a))).
func (u *NREL) SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node) {
	a := vmap.ActivationOf(u)
	var noise *graph.Node
	newRngState, noise = samplers.Gaussian(rngState, graph.ZerosLike(a), activations.Sigmoid(a))
	sample = graph.MaxScalar(graph.Add(a, noise), 0)
	return
}

// MeanFieldFromActivation approximates the expectation as max(0, a).
func (u *NREL) MeanFieldFromActivation(vmap VMap) *graph.Node {
	return graph.MaxScalar(vmap.ActivationOf(u), 0)
}
