// File: locate/strip_test.go
package locate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/keyray"
	"github.com/katalvlaran/kvis/locate"
)

var (
	vertical   = locate.Strip{Normal: geometry.Point{1, 0}, Lo: 0, Hi: 1}
	horizontal = locate.Strip{Normal: geometry.Point{0, 1}, Lo: 0, Hi: 2}
)

func TestNewStrip(t *testing.T) {
	p := keyray.Pair{
		RayA: geometry.Seg(1, 0, 1, 10),
		RayB: geometry.Seg(1.5, 0, 1.5, 10),
	}
	s, err := locate.NewStrip(p)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.Width(), 1e-12)
	assert.True(t, s.Contains(geometry.Point{1.2, 4}))
	assert.True(t, s.Contains(geometry.Point{1.5, -30}), "strips are unbounded")
	assert.False(t, s.Contains(geometry.Point{1.6, 4}))

	_, err = locate.NewStrip(keyray.Pair{RayA: geometry.Seg(1, 1, 1, 1)})
	assert.ErrorIs(t, err, geometry.ErrDegenerate)
}

func TestParallelogram(t *testing.T) {
	r, ok := locate.Parallelogram(vertical, horizontal)
	require.True(t, ok)
	assert.Equal(t, locate.Region{{0, 0}, {1, 0}, {1, 2}, {0, 2}}, r)
	assert.Equal(t, geometry.Point{0.5, 1}, r.Centroid())
	assert.InDelta(t, math.Sqrt(5), r.Diameter(), 1e-12)

	_, ok = locate.Parallelogram(vertical, locate.Strip{Normal: geometry.Point{-1, 0}, Lo: 3, Hi: 4})
	assert.False(t, ok, "parallel strips")
}

func TestIntersectStrips(t *testing.T) {
	band := locate.Strip{Normal: geometry.Point{0, 1}, Lo: 0.5, Hi: 1.5}
	r, ok := locate.IntersectStrips(vertical, horizontal, band)
	require.True(t, ok)
	c := r.Centroid()
	assert.InDelta(t, 0.5, c[0], 1e-12)
	assert.InDelta(t, 1.0, c[1], 1e-12)
	assert.InDelta(t, math.Sqrt2, r.Diameter(), 1e-12)

	diag := locate.Strip{Normal: geometry.Point{math.Sqrt2 / 2, math.Sqrt2 / 2}, Lo: 0, Hi: 0.1}
	r, ok = locate.IntersectStrips(vertical, horizontal, diag)
	require.True(t, ok, "corner of the parallelogram")
	for _, p := range r {
		assert.True(t, diag.Contains(p))
		assert.True(t, vertical.Contains(p))
	}

	far := locate.Strip{Normal: geometry.Point{0, 1}, Lo: 5, Hi: 6}
	_, ok = locate.IntersectStrips(vertical, horizontal, far)
	assert.False(t, ok)
}

func TestRegion_CentroidWithoutArea(t *testing.T) {
	r := locate.Region{{0, 0}, {2, 0}}
	assert.Equal(t, geometry.Point{1, 0}, r.Centroid())
}
