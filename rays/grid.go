package rays

import (
	"math"

	"github.com/katalvlaran/kvis/geometry"
)

// GridFamilies returns the two diagonal families that read a width×height
// unit-grid building. Feet are 1/(height+1) apart on y = 0, and each ray
// drifts one foot spacing short of a full unit over the height, so that
// right ray r(x,y) = (height+1)(x+1) − y − 1 and left ray
// l(x,y) = (height+1)x + y pass just below lattice point (x, y), with rays
// r+1 and l+1 just above it.
//
// Both families hold (width+1)(height+1)+1 rays, ordered by foot point.
// Rays are not clipped to the rectangle.
func GridFamilies(width, height int) (right, left Family, err error) {
	if width <= 0 || height <= 0 {
		return Family{}, Family{}, ErrBadDimensions
	}
	h := float64(height)
	dd := 1 / (h + 1)
	n := (width+1)*(height+1) + 1

	right = Family{Index: 0, Angle: math.Atan2(h, 1-dd), Rays: make([]geometry.Segment, n)}
	left = Family{Index: 1, Angle: math.Atan2(h, dd-1), Rays: make([]geometry.Segment, n)}
	for i := 0; i < n; i++ {
		x := float64(i) * dd
		right.Rays[i] = geometry.Seg(x+dd/2-1, 0, x-dd/2, h)
		left.Rays[i] = geometry.Seg(x-dd/2, 0, x+dd/2-1, h)
	}
	// perpendicular distance between neighbouring rays
	right.Pitch = dd * math.Sin(right.Angle)
	left.Pitch = dd * math.Sin(left.Angle)

	return right, left, nil
}

// GridRayIndices returns the right (r, r+1) and left (l, l+1) ray pairs
// bracketing lattice point (x, y) in GridFamilies(·, height).
func GridRayIndices(x, y, height int) (r, l int) {
	return (height+1)*(x+1) - y - 1, (height+1)*x + y
}
