// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package activations_test

import (
	"math"
	"testing"

	_ "github.com/gomlx/gomlx/backends/simplego"
	. "github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/core/graph/graphtest"

	"github.com/gomlx/gorbm/activations"
)

func TestSigmoid(t *testing.T) {
	graphtest.RunTestGraphFn(t, "Sigmoid",
		func(g *Graph) (inputs, outputs []*Node) {
			x := Const(g, [][]float32{{-2, 0, 2}})
			outputs = []*Node{activations.Sigmoid(x)}
			return
		}, []any{
			[][]float32{{
				float32(1 / (1 + math.Exp(2))),
				0.5,
				float32(1 / (1 + math.Exp(-2))),
			}},
		}, 1e-6)
}

func TestSoftplus(t *testing.T) {
	graphtest.RunTestGraphFn(t, "Softplus",
		func(g *Graph) (inputs, outputs []*Node) {
			x := Const(g, []float32{-1000, -1, 0, 1, 1000})
			outputs = []*Node{activations.Softplus(x)}
			return
		}, []any{
			[]float32{
				0, // would underflow through exp, must not NaN
				float32(math.Log1p(math.Exp(-1))),
				float32(math.Log(2)),
				float32(math.Log1p(math.Exp(1))),
				1000, // would overflow through exp, must stay finite
			},
		}, 1e-4)
}

func TestLogAddExp(t *testing.T) {
	graphtest.RunTestGraphFn(t, "LogAddExp",
		func(g *Graph) (inputs, outputs []*Node) {
			x := Const(g, []float32{1, -3, 100})
			y := Const(g, []float32{2, -3, -100})
			outputs = []*Node{activations.LogAddExp(x, y)}
			return
		}, []any{
			[]float32{
				float32(math.Log(math.Exp(1) + math.Exp(2))),
				float32(-3 + math.Log(2)),
				100,
			},
		}, 1e-4)
}

func TestSoftmax(t *testing.T) {
	graphtest.RunTestGraphFn(t, "Softmax",
		func(g *Graph) (inputs, outputs []*Node) {
			logits := Const(g, [][][]float32{{{0, 0}, {0, float32(math.Log(3))}}})
			outputs = []*Node{activations.Softmax(logits)}
			return
		}, []any{
			[][][]float32{{{0.5, 0.5}, {0.25, 0.75}}},
		}, 1e-6)
}

func TestSoftmaxWithZero(t *testing.T) {
	graphtest.RunTestGraphFn(t, "SoftmaxWithZero",
		func(g *Graph) (inputs, outputs []*Node) {
			// Two explicit states with zero activation plus the implicit
			// zero state: all three end up equally likely.
			logits := Const(g, [][][]float32{{{0, 0}}})
			p := activations.SoftmaxWithZero(logits)
			outputs = []*Node{p, ReduceSum(p, -1)}
			return
		}, []any{
			[][][]float32{{{1. / 3., 1. / 3., 1. / 3.}}},
			[][]float32{{1}},
		}, 1e-6)
}
