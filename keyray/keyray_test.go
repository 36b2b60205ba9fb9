package keyray_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/keyray"
	"github.com/katalvlaran/kvis/oracle"
	"github.com/katalvlaran/kvis/rays"
	"github.com/katalvlaran/kvis/sweep"
)

func comb(n int) []geometry.Segment {
	rs := make([]geometry.Segment, n)
	for i := range rs {
		rs[i] = geometry.Seg(float64(i), 0, float64(i), 1)
	}
	return rs
}

func TestFindKeyPairs(t *testing.T) {
	rs := comb(7)
	ms := []oracle.Measurement{0, 0, 2, 2, 3, 1, 1}

	pairs, err := keyray.FindKeyPairs(rs, ms)
	require.NoError(t, err)
	require.Len(t, pairs, 3)

	assert.Equal(t, keyray.Pair{Index: 1, RayA: rs[1], RayB: rs[2], Before: 0, After: 2}, pairs[0])
	assert.Equal(t, 2, pairs[0].Jump())
	assert.Equal(t, 1, pairs[1].Jump())
	assert.Equal(t, -2, pairs[2].Jump())
	assert.Equal(t, 4, pairs[2].Index)
}

func TestFindKeyPairs_Flat(t *testing.T) {
	pairs, err := keyray.FindKeyPairs(comb(4), []oracle.Measurement{2, 2, 2, 2})
	require.NoError(t, err)
	assert.Empty(t, pairs)

	pairs, err = keyray.FindKeyPairs(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestFindKeyPairs_Invalid(t *testing.T) {
	rs := comb(6)
	ms := []oracle.Measurement{1, 2, oracle.Invalid, 2, 2, 3}

	pairs, err := keyray.FindKeyPairs(rs, ms)
	require.ErrorIs(t, err, oracle.ErrInvalidMeasurement)

	var inv *keyray.InvalidPairError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, []int{1, 2}, inv.Indices)

	require.Len(t, pairs, 2, "valid pairs are still reported")
	assert.Equal(t, 0, pairs[0].Index)
	assert.Equal(t, 4, pairs[1].Index)
}

func TestFindKeyPairs_LengthMismatch(t *testing.T) {
	_, err := keyray.FindKeyPairs(comb(3), []oracle.Measurement{1})
	assert.ErrorIs(t, err, keyray.ErrLengthMismatch)
}

// TestDetect_Wall sweeps a near-vertical family over one horizontal wall;
// the key pairs must bracket both wall endpoints.
func TestDetect_Wall(t *testing.T) {
	segs := []geometry.Segment{
		geometry.Seg(0, 0, 8, 0), geometry.Seg(8, 0, 8, 10),
		geometry.Seg(8, 10, 0, 10), geometry.Seg(0, 10, 0, 0),
		geometry.Seg(2, 3, 6, 3),
	}
	angle := math.Pi/2 - math.Pi/18
	f, err := rays.NewFamily(2, 8, 10, 0.01, angle)
	require.NoError(t, err)

	res, err := sweep.SweepFamily(context.Background(), f, oracle.NewScene(segs, oracle.DefaultOptions()))
	require.NoError(t, err)

	fp, err := keyray.Detect(res)
	require.NoError(t, err)
	assert.Equal(t, 2, fp.Family)
	assert.Equal(t, angle, fp.Angle)

	offset := 10 / math.Tan(angle)
	// foot on y=0 of the ray through a point
	foot := func(x, y float64) float64 { return x - y*offset/10 }

	for _, v := range [][2]float64{{2, 3}, {6, 3}} {
		x := foot(v[0], v[1])
		found := false
		for _, p := range fp.Pairs {
			if p.RayA.A[0] <= x && x <= p.RayB.A[0] {
				found = true
				assert.Equal(t, 1, abs(p.Jump()), "wall endpoint %v", v)
			}
		}
		assert.True(t, found, "no key pair brackets %v", v)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
