package merge_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/merge"
)

func pts(xy ...float64) []geometry.Point {
	out := make([]geometry.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geometry.Point{xy[i], xy[i+1]})
	}
	return out
}

//----------------------------------------------------------------------------//
// UnionFind
//----------------------------------------------------------------------------//

func TestUnionFind_Empty(t *testing.T) {
	assert.Empty(t, merge.Cluster(nil, 1, merge.UnionFind))
	assert.Empty(t, merge.MergeClose(nil, 1, merge.UnionFind))
}

func TestUnionFind_ChainIsTransitive(t *testing.T) {
	groups := merge.Cluster(pts(0, 0, 3, 0, 6, 0), 4, merge.UnionFind)
	require.Len(t, groups, 1)
	assert.Equal(t, []int{0, 1, 2}, groups[0].Members)
	assert.InDelta(t, 3.0, groups[0].Point[0], 1e-12)
	assert.InDelta(t, 0.0, groups[0].Point[1], 1e-12)
}

func TestUnionFind_ThresholdIsStrict(t *testing.T) {
	got := merge.MergeClose(pts(0, 0, 4, 0), 4, merge.UnionFind)
	assert.Len(t, got, 2)
}

func TestUnionFind_KeepsSeparateClusters(t *testing.T) {
	in := pts(0, 0, 0.5, 0, 10, 10, 10.5, 10, 30, 0)
	groups := merge.Cluster(in, 2, merge.UnionFind)
	require.Len(t, groups, 3)
	assert.Equal(t, []int{0, 1}, groups[0].Members)
	assert.Equal(t, []int{2, 3}, groups[1].Members)
	assert.Equal(t, []int{4}, groups[2].Members)
	assert.Equal(t, geometry.Point{30, 0}, groups[2].Point)
}

func TestUnionFind_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := make([]geometry.Point, 60)
	for i := range in {
		in[i] = geometry.Point{rng.Float64() * 20, rng.Float64() * 20}
	}
	once := merge.MergeClose(in, 2.5, merge.UnionFind)
	twice := merge.MergeClose(once, 2.5, merge.UnionFind)
	assert.Empty(t, cmp.Diff(once, twice))

	for i := range once {
		for j := i + 1; j < len(once); j++ {
			assert.GreaterOrEqual(t, geometry.Distance(once[i], once[j]), 2.5)
		}
	}
}

func TestUnionFind_MembersCoverInput(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	in := make([]geometry.Point, 40)
	for i := range in {
		in[i] = geometry.Point{rng.Float64() * 10, rng.Float64() * 10}
	}
	seen := make(map[int]bool)
	for _, g := range merge.Cluster(in, 1.5, merge.UnionFind) {
		for _, m := range g.Members {
			assert.False(t, seen[m], "member %d listed twice", m)
			seen[m] = true
		}
	}
	assert.Len(t, seen, len(in))
}

//----------------------------------------------------------------------------//
// SinglePass
//----------------------------------------------------------------------------//

func TestSinglePass_ThreeMutuallyClose(t *testing.T) {
	in := pts(0, 0, 1, 0, 0, 1)
	groups := merge.Cluster(in, 2, merge.SinglePass)
	require.Len(t, groups, 2)
	assert.Equal(t, []int{0, 1}, groups[0].Members)
	assert.Equal(t, geometry.Point{0.5, 0}, groups[0].Point)
	assert.Equal(t, []int{2}, groups[1].Members)
	assert.Equal(t, geometry.Point{0, 1}, groups[1].Point)

	// A second pass still finds a close pair.
	again := merge.MergeClose(merge.MergeClose(in, 2, merge.SinglePass), 2, merge.SinglePass)
	assert.Len(t, again, 1)
}

func TestSinglePass_ChainIsNotTransitive(t *testing.T) {
	got := merge.MergeClose(pts(0, 0, 3, 0, 6, 0), 4, merge.SinglePass)
	assert.Equal(t, pts(1.5, 0, 6, 0), got)
}

func TestSinglePass_NoCloseAmongDistinct(t *testing.T) {
	in := pts(0, 0, 5, 5, 10, 0)
	assert.Equal(t, in, merge.MergeClose(in, 1, merge.SinglePass))
}

//----------------------------------------------------------------------------//
// Mode
//----------------------------------------------------------------------------//

func TestParseMode(t *testing.T) {
	for _, m := range []merge.Mode{merge.UnionFind, merge.SinglePass} {
		got, err := merge.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := merge.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, merge.UnionFind, got)

	_, err = merge.ParseMode("greedy")
	assert.Error(t, err)
	assert.Equal(t, "mode(9)", merge.Mode(9).String())
}
