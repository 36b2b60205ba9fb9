// File: merge/example_test.go
package merge_test

import (
	"fmt"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/merge"
)

// ExampleMergeClose contrasts the two modes on a chain of estimates.
func ExampleMergeClose() {
	chain := []geometry.Point{{0, 0}, {3, 0}, {6, 0}}

	fmt.Println(merge.MergeClose(chain, 4, merge.UnionFind))
	fmt.Println(merge.MergeClose(chain, 4, merge.SinglePass))
	// Output:
	// [[3 0]]
	// [[1.5 0] [6 0]]
}
