// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package units defines the distribution families for the visible and hidden
// layers of RBM-style energy-based models.
//
// A Unit is the identity of one layer of random variables: it carries no
// tensor data of its own. Activations flow in through a VMap — a mapping
// from unit identity to its resolved activation node, produced by the
// surrounding energy computation — and samples, mean-field estimates and
// free-energy terms flow out as graph nodes. Activations are rank ≥ 2, with
// axis 0 the batch and axis 1 the unit index; the softmax families add axis 2
// for the state.
//
// Multi-parameter families (LearntPrecisionGaussian, Gamma) and the
// symmetric binary family expose extra activation channels through Proxy
// units: deterministic transformed views of the base unit's activation that
// participate in the bilinear energy like any other unit.
//
// Each family implements only the capabilities its distribution supports:
// Sampler, MeanFielder and, where the marginal has a closed form,
// FreeEnergier. Use Check at model-assembly time to verify a unit's
// capability set instead of discovering a missing one mid-sampling.
package units

import (
	"github.com/gomlx/gomlx/pkg/core/graph"
	. "github.com/gomlx/gomlx/pkg/support/exceptions"
	"github.com/pkg/errors"
)

// Unit identifies one layer of random variables (or a proxy view of one) in
// a model. Units are compared by pointer identity: they are constructed once
// during model assembly and live for the model's lifetime.
type Unit interface {
	// Name is an optional diagnostic label; it carries no semantics.
	Name() string

	// Proxies returns the proxy units owned by this unit, if any.
	Proxies() []*Proxy

	// Model returns the owning model used to resolve activations on demand,
	// or nil if the unit was built without one.
	Model() Resolver
}

// Resolver is the owning-model collaborator: it computes the activation of a
// unit from the model parameters and the already-resolved values of the
// other units in vmap. Only the Sample shortcuts of the two-channel families
// (LearntPrecisionGaussian, Gamma) call it.
//
// Implementations must be side-effect free: the same arguments must yield
// the same activation.
type Resolver interface {
	Activation(u Unit, vmap VMap) *graph.Node
}

// VMap maps units — including proxy units — to their resolved activation
// nodes. It is produced by the external energy computation and read here;
// unit methods never mutate it.
type VMap map[Unit]*graph.Node

// ActivationOf returns the activation of u. A missing entry is a hard
// failure (it panics, in the graph package's exception style): it signals a
// model-assembly bug and must not be defaulted.
func (vmap VMap) ActivationOf(u Unit) *graph.Node {
	a, found := vmap[u]
	if !found {
		Panicf("units: no activation for unit %q (%T) in VMap -- every unit a method reads must be resolved before the call", u.Name(), u)
	}
	return a
}

// base carries the identity shared by all unit variants.
type base struct {
	name    string
	model   Resolver
	proxies []*Proxy
}

func (b *base) Name() string      { return b.name }
func (b *base) Model() Resolver   { return b.model }
func (b *base) Proxies() []*Proxy { return b.proxies }

// Transform is a fixed, stateless, pure elementwise function applied to a
// base unit's activation to produce a proxy's effective activation.
type Transform func(x *graph.Node) *graph.Node

// The transform set used by the built-in families.
func squareHalf(x *graph.Node) *graph.Node { return graph.MulScalar(graph.Square(x), 0.5) }
func square(x *graph.Node) *graph.Node     { return graph.Square(x) }
func logarithm(x *graph.Node) *graph.Node  { return graph.Log(x) }
func oneMinus(x *graph.Node) *graph.Node   { return graph.OneMinus(x) }

// Proxy is a unit-like view over a base unit: it stands in the energy
// function as its own unit, but its activation is defined as a deterministic
// transform of the base unit's activation (not of its sampled value). A
// proxy has no distribution methods and no proxies of its own.
//
// The base unit owns its proxies; the proxy's back-reference is for lookup
// only.
type Proxy struct {
	name      string
	base      Unit
	transform Transform
}

func newProxy(baseUnit Unit, transform Transform, name string) *Proxy {
	return &Proxy{name: name, base: baseUnit, transform: transform}
}

// Name implements Unit.
func (p *Proxy) Name() string { return p.name }

// Proxies implements Unit; a proxy owns none.
func (p *Proxy) Proxies() []*Proxy { return nil }

// Model implements Unit, deferring to the base unit.
func (p *Proxy) Model() Resolver { return p.base.Model() }

// Base returns the unit this proxy is a view of.
func (p *Proxy) Base() Unit { return p.base }

// Apply returns the proxy's effective activation given the base unit's
// activation. The activation-computation collaborator calls this when
// resolving the proxy's VMap entry.
func (p *Proxy) Apply(baseActivation *graph.Node) *graph.Node {
	return p.transform(baseActivation)
}

// proxyName derives a proxy's name from its base unit's name. Unnamed units
// get unnamed proxies.
func proxyName(name, suffix string) string {
	if name == "" {
		return ""
	}
	return name + suffix
}

// Sampler is implemented by unit variants that can draw one stochastic
// sample per (batch, unit) entry from their distribution, given their own
// (and any proxy's) activation resolved in vmap.
//
// The RNG state is threaded explicitly, as in graph.RandomUniform: callers
// pass the current state node and receive the advanced state with the
// sample.
type Sampler interface {
	Unit
	SampleFromActivation(rngState *graph.Node, vmap VMap) (newRngState, sample *graph.Node)
}

// MeanFielder is implemented by unit variants with a deterministic
// expectation (or mode, where the expectation is undefined) usable in place
// of sampling. The result has the same shape as a sample.
type MeanFielder interface {
	Unit
	MeanFieldFromActivation(vmap VMap) *graph.Node
}

// FreeEnergier is implemented by unit variants whose marginal has a closed
// form. The term is the layer's contribution to the model free energy,
// summed over every axis but the batch axis. Families without a closed form
// do not implement it at all — absence means intractable, not zero.
type FreeEnergier interface {
	Unit
	FreeEnergyTermFromActivation(vmap VMap) *graph.Node
}

// Capability names one of the optional operations a unit variant may
// support.
type Capability int

const (
	CapSample Capability = iota
	CapMeanField
	CapFreeEnergy
)

// String implements fmt.Stringer.
func (c Capability) String() string {
	switch c {
	case CapSample:
		return "sample"
	case CapMeanField:
		return "mean-field"
	case CapFreeEnergy:
		return "free-energy"
	}
	return "invalid-capability"
}

// Supports reports whether u implements the given capability.
func Supports(u Unit, c Capability) bool {
	switch c {
	case CapSample:
		_, ok := u.(Sampler)
		return ok
	case CapMeanField:
		_, ok := u.(MeanFielder)
		return ok
	case CapFreeEnergy:
		_, ok := u.(FreeEnergier)
		return ok
	}
	return false
}

// Check verifies that u implements every required capability. Call it at
// model-assembly time: a unit wired into a role it does not support is a
// construction mistake, better caught before any sampling happens.
func Check(u Unit, required ...Capability) error {
	for _, c := range required {
		if !Supports(u, c) {
			return errors.Errorf("unit %q (%T) does not support %s", u.Name(), u, c)
		}
	}
	return nil
}

// reduceUnitAxes sums x over every axis but the batch axis (0), the
// reduction shared by all free-energy terms.
func reduceUnitAxes(x *graph.Node) *graph.Node {
	axes := make([]int, 0, x.Rank()-1)
	for axis := 1; axis < x.Rank(); axis++ {
		axes = append(axes, axis)
	}
	return graph.ReduceSum(x, axes...)
}
