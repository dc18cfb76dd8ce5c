// SPDX-License-Identifier: MIT
package polar_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
	"github.com/katalvlaran/lvcone/polar"
)

// ExampleDualize computes the facets of the cone over the unit square.
func ExampleDualize() {
	r := number.NewMachine()
	gens, _ := matrix.FromInt64[int64](r, 3, [][]int64{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1}})
	res, err := polar.Dualize(context.Background(), gens, polar.WithTriangulation())
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, h := range res.Hyperplanes.Int64Rows() {
		fmt.Println(h)
	}
	fmt.Println("simplices:", len(res.Triangulation))
	// Output:
	// [-1 0 1]
	// [0 -1 1]
	// [0 1 0]
	// [1 0 0]
	// simplices: 2
}
