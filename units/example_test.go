// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package units_test

import (
	"fmt"

	"github.com/gomlx/gomlx/backends"
	_ "github.com/gomlx/gomlx/backends/simplego"
	"github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/janpfeifer/must"

	"github.com/gomlx/gorbm/units"
)

// The mean-field value of a binary layer with zero activation is sigmoid(0).
func ExampleBinary() {
	backend := must.M1(backends.NewWithConfig("go"))
	visible := units.NewBinary(nil, "visible")
	mean := must.M1(graph.ExecOnce(backend, func(a *graph.Node) *graph.Node {
		return visible.MeanFieldFromActivation(units.VMap{visible: a})
	}, [][]float32{{0}}))
	fmt.Printf("%.2f\n", mean.Value().([][]float32)[0][0])
	// Output: 0.50
}
