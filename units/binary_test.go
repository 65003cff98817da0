// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package units_test

import (
	"math"
	"testing"

	"github.com/gomlx/gomlx/pkg/core/dtypes"
	. "github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/core/graph/graphtest"

	"github.com/gomlx/gorbm/units"
)

func TestBinaryMeanField(t *testing.T) {
	u := units.NewBinary(nil, "v")
	graphtest.RunTestGraphFn(t, "Binary.MeanFieldFromActivation",
		func(g *Graph) (inputs, outputs []*Node) {
			a := Const(g, [][]float32{{0, 1}, {-1, 2}})
			outputs = []*Node{u.MeanFieldFromActivation(units.VMap{u: a})}
			return
		}, []any{
			[][]float32{
				{sigmoid32(0), sigmoid32(1)},
				{sigmoid32(-1), sigmoid32(2)},
			},
		}, 1e-6)
}

func TestBinaryFreeEnergy(t *testing.T) {
	u := units.NewBinary(nil, "v")

	// One batch example, one unit, zero activation: the term is -log(2).
	graphtest.RunTestGraphFn(t, "Binary.FreeEnergyTermFromActivation(zero)",
		func(g *Graph) (inputs, outputs []*Node) {
			a := Const(g, [][]float32{{0}})
			outputs = []*Node{u.FreeEnergyTermFromActivation(units.VMap{u: a})}
			return
		}, []any{
			[]float32{float32(-math.Log(2))},
		}, 1e-6)

	// The term reduces every axis but the batch axis.
	graphtest.RunTestGraphFn(t, "Binary.FreeEnergyTermFromActivation",
		func(g *Graph) (inputs, outputs []*Node) {
			a := Const(g, [][]float32{{0, 1}, {-1, 2}})
			outputs = []*Node{u.FreeEnergyTermFromActivation(units.VMap{u: a})}
			return
		}, []any{
			[]float32{
				float32(-(softplus(0) + softplus(1))),
				float32(-(softplus(-1) + softplus(2))),
			},
		}, 1e-5)
}

func TestBinarySampleStatistics(t *testing.T) {
	u := units.NewBinary(nil, "v")
	graphtest.RunTestGraphFn(t, "Binary.SampleFromActivation",
		func(g *Graph) (inputs, outputs []*Node) {
			state := RNGStateFromSeedForGraph(g, 42)
			vmap := units.VMap{u: fullOf(g, 0)} // p = sigmoid(0) = 0.5
			_, sample := u.SampleFromActivation(state, vmap)
			mean, _ := meanAndVariance(sample)
			nonBinary := ReduceAllSum(Mul(sample, OneMinus(sample)))
			outputs = []*Node{mean, ConvertDType(nonBinary, dtypes.Float64)}
			return
		}, []any{0.5, 0.0}, 0.01)
}

// With the flip relation a_flipped = 1-a resolved in the VMap, the
// symmetrized logit is 2a-1 and the whole family reduces to Binary.
func TestSymmetricBinaryReducesToBinary(t *testing.T) {
	sym := units.NewSymmetricBinary(nil, "s")
	binary := units.NewBinary(nil, "b")
	graphtest.RunTestGraphFn(t, "SymmetricBinary vs Binary",
		func(g *Graph) (inputs, outputs []*Node) {
			a := Const(g, [][]float32{{0.2, 0.8}, {0.5, 1.5}})
			symVMap := units.VMap{sym: a, sym.Flipped: OneMinus(a)}
			logit := AddScalar(MulScalar(a, 2), -1)
			binVMap := units.VMap{binary: logit}
			outputs = []*Node{
				sym.MeanFieldFromActivation(symVMap),
				binary.MeanFieldFromActivation(binVMap),
				sym.FreeEnergyTermFromActivation(symVMap),
				binary.FreeEnergyTermFromActivation(binVMap),
			}
			return
		}, []any{
			[][]float32{
				{sigmoid32(2*0.2 - 1), sigmoid32(2*0.8 - 1)},
				{sigmoid32(2*0.5 - 1), sigmoid32(2*1.5 - 1)},
			},
			[][]float32{
				{sigmoid32(2*0.2 - 1), sigmoid32(2*0.8 - 1)},
				{sigmoid32(2*0.5 - 1), sigmoid32(2*1.5 - 1)},
			},
			[]float32{
				float32(-(softplus(2*0.2-1) + softplus(2*0.8-1))),
				float32(-(softplus(2*0.5-1) + softplus(2*1.5-1))),
			},
			[]float32{
				float32(-(softplus(2*0.2-1) + softplus(2*0.8-1))),
				float32(-(softplus(2*0.5-1) + softplus(2*1.5-1))),
			},
		}, 1e-5)
}

func TestSymmetricBinarySampleStatistics(t *testing.T) {
	sym := units.NewSymmetricBinary(nil, "s")
	graphtest.RunTestGraphFn(t, "SymmetricBinary.SampleFromActivation",
		func(g *Graph) (inputs, outputs []*Node) {
			state := RNGStateFromSeedForGraph(g, 42)
			a := fullOf(g, 0.75)
			vmap := units.VMap{sym: a, sym.Flipped: OneMinus(a)}
			_, sample := sym.SampleFromActivation(state, vmap)
			mean, _ := meanAndVariance(sample)
			outputs = []*Node{mean}
			return
		}, []any{
			// P(1) = sigmoid(2·0.75-1) = sigmoid(0.5)
			1 / (1 + math.Exp(-0.5)),
		}, 0.01)
}
