// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package activations implements the elementwise transforms that turn raw
// unit activations into distribution parameters: Sigmoid, Softmax, a softmax
// variant with an implicit zero-activation state, and a numerically stable
// Softplus.
//
// All functions are pure graph-building operations: they take and return
// graph nodes and never touch concrete values.
package activations

import (
	"github.com/gomlx/gomlx/pkg/core/graph"
)

// Sigmoid returns 1/(1+exp(-x)), the Bernoulli mean for logit x.
func Sigmoid(x *graph.Node) *graph.Node {
	return graph.Sigmoid(x)
}

// Softmax normalizes logits into categorical probabilities over the last
// axis.
func Softmax(logits *graph.Node) *graph.Node {
	return graph.Softmax(logits, -1)
}

// SoftmaxWithZero appends an implicit state with constant zero activation to
// the last axis and normalizes over the widened axis. For an input with N
// states it returns N+1 probabilities; the extra last entry is the
// probability that none of the explicit states is active.
func SoftmaxWithZero(logits *graph.Node) *graph.Node {
	zeroState := graph.ZerosLike(graph.SliceAxis(logits, -1, graph.AxisElem(0)))
	widened := graph.Concatenate([]*graph.Node{logits, zeroState}, -1)
	return graph.Softmax(widened, -1)
}

// Softplus returns log(1+exp(x)) without overflowing for large |x|.
func Softplus(x *graph.Node) *graph.Node {
	return LogAddExp(x, graph.ZerosLike(x))
}

// LogAddExp returns log(exp(x)+exp(y)) computed in log-space, so it stays
// finite where the naive formulation would overflow. Infinities in x-y (one
// argument already ±Inf) fall through to x+y.
func LogAddExp(x, y *graph.Node) *graph.Node {
	g := x.Graph()
	dtype := x.DType()
	larger := graph.Max(x, y)
	delta := graph.Sub(x, y)
	finite := graph.IsFinite(delta)
	safeDelta := graph.Where(finite, delta, graph.ScalarZero(g, dtype))
	return graph.Where(finite,
		graph.Add(larger, graph.Log1p(graph.Exp(graph.Neg(graph.Abs(safeDelta))))),
		graph.Add(x, y))
}
