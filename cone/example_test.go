// SPDX-License-Identifier: MIT
package cone_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvcone/cone"
)

// ExampleCone_Compute computes the Hilbert basis of the cone spanned by
// (1,0) and (1,2) in Z².
func ExampleCone_Compute() {
	c, err := cone.New(map[cone.InputType][][]int64{
		cone.Generators: {{1, 0}, {1, 2}},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	if err = c.Compute(context.Background(), cone.HilbertBasis, cone.SupportHyperplanes); err != nil {
		fmt.Println(err)
		return
	}
	hb, _ := c.Int64Matrix(cone.HilbertBasis)
	sh, _ := c.Int64Matrix(cone.SupportHyperplanes)
	fmt.Println("hilbert basis:", hb)
	fmt.Println("support hyperplanes:", sh)
	// Output:
	// hilbert basis: [[1 0] [1 1] [1 2]]
	// support hyperplanes: [[0 1] [2 -1]]
}

// ExampleCone_AddInequalities cuts the positive quadrant with y ≥ x.
func ExampleCone_AddInequalities() {
	ctx := context.Background()
	c, _ := cone.New(map[cone.InputType][][]int64{
		cone.Generators: {{1, 0}, {0, 1}},
	})
	if err := c.AddInequalities(ctx, [][]int64{{-1, 1}}); err != nil {
		fmt.Println(err)
		return
	}
	_ = c.Compute(ctx, cone.ExtremeRays, cone.HilbertBasis)
	er, _ := c.Int64Matrix(cone.ExtremeRays)
	hb, _ := c.Int64Matrix(cone.HilbertBasis)
	fmt.Println(er, hb)
	// Output:
	// [[0 1] [1 1]] [[0 1] [1 1]]
}
