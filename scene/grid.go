package scene

import (
	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/rays"
)

// Grid is a building drawn on a unit grid. Horizontal edge (i, j) runs from
// (i, j) to (i+1, j); vertical edge (i, j) runs from (i, j) to (i, j+1).
// The frame edges are always set.
type Grid struct {
	Width, Height int
	horizontal    [][]bool // [Width][Height+1]
	vertical      [][]bool // [Width+1][Height]
}

// NewGrid returns a w×h grid with only the frame set.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrBadSize
	}
	g := &Grid{Width: w, Height: h}
	g.horizontal = make([][]bool, w)
	for i := range g.horizontal {
		g.horizontal[i] = make([]bool, h+1)
		g.horizontal[i][0], g.horizontal[i][h] = true, true
	}
	g.vertical = make([][]bool, w+1)
	for i := range g.vertical {
		g.vertical[i] = make([]bool, h)
	}
	for j := 0; j < h; j++ {
		g.vertical[0][j], g.vertical[w][j] = true, true
	}

	return g, nil
}

// SetHorizontal sets or clears horizontal edge (i, j). Frame edges and
// out-of-range edges are left unchanged.
func (g *Grid) SetHorizontal(i, j int, on bool) {
	if i < 0 || i >= g.Width || j <= 0 || j >= g.Height {
		return
	}
	g.horizontal[i][j] = on
}

// SetVertical sets or clears vertical edge (i, j). Frame edges and
// out-of-range edges are left unchanged.
func (g *Grid) SetVertical(i, j int, on bool) {
	if i <= 0 || i >= g.Width || j < 0 || j >= g.Height {
		return
	}
	g.vertical[i][j] = on
}

// FillRandom sets each internal edge with probability p.
func (g *Grid) FillRandom(p float64, seed int64) {
	rng := rays.NewRNG(seed)
	for i := 0; i < g.Width; i++ {
		for j := 1; j < g.Height; j++ {
			if rng.Float64() < p {
				g.horizontal[i][j] = true
			}
		}
	}
	for i := 1; i < g.Width; i++ {
		for j := 0; j < g.Height; j++ {
			if rng.Float64() < p {
				g.vertical[i][j] = true
			}
		}
	}
}

// Segments merges runs of set edges into maximal segments: horizontal runs
// row by row, then vertical runs column by column. The frame comes out as
// four segments.
//
// Complexity: O(W·H).
func (g *Grid) Segments() []geometry.Segment {
	var out []geometry.Segment
	for j := 0; j <= g.Height; j++ {
		for i := 0; i < g.Width; {
			if !g.horizontal[i][j] {
				i++
				continue
			}
			start := i
			for i < g.Width && g.horizontal[i][j] {
				i++
			}
			out = append(out, geometry.Seg(float64(start), float64(j), float64(i), float64(j)))
		}
	}
	for i := 0; i <= g.Width; i++ {
		for j := 0; j < g.Height; {
			if !g.vertical[i][j] {
				j++
				continue
			}
			start := j
			for j < g.Height && g.vertical[i][j] {
				j++
			}
			out = append(out, geometry.Seg(float64(i), float64(start), float64(i), float64(j)))
		}
	}

	return out
}

// Scene converts the grid into a Scene whose walls are the merged
// non-frame segments.
func (g *Grid) Scene() Scene {
	w, h := float64(g.Width), float64(g.Height)
	s := Scene{Width: w, Height: h, Frame: Frame(w, h)}
	for _, seg := range g.Segments() {
		horizontalFrame := seg.A[1] == seg.B[1] && (seg.A[1] == 0 || seg.A[1] == h)
		verticalFrame := seg.A[0] == seg.B[0] && (seg.A[0] == 0 || seg.A[0] == w)
		if !horizontalFrame && !verticalFrame {
			s.Walls = append(s.Walls, seg)
		}
	}

	return s
}

// Rooms returns the groups of cells connected without crossing a wall.
// Cell (x, y) has index y·Width + x; groups are found in row-major order
// and each lists its cells in BFS order.
//
// Complexity: O(W·H).
func (g *Grid) Rooms() [][]int {
	total := g.Width * g.Height
	seen := make([]bool, total)
	var rooms [][]int

	for start := 0; start < total; start++ {
		if seen[start] {
			continue
		}
		// BFS to collect the room
		queue := []int{start}
		seen[start] = true
		for qi := 0; qi < len(queue); qi++ {
			x, y := queue[qi]%g.Width, queue[qi]/g.Width
			for _, n := range g.open(x, y) {
				if !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}
		rooms = append(rooms, queue)
	}

	return rooms
}

// open lists the neighbours of cell (x, y) not separated by a wall.
func (g *Grid) open(x, y int) []int {
	var out []int
	if x+1 < g.Width && !g.vertical[x+1][y] {
		out = append(out, y*g.Width+x+1)
	}
	if x > 0 && !g.vertical[x][y] {
		out = append(out, y*g.Width+x-1)
	}
	if y+1 < g.Height && !g.horizontal[x][y+1] {
		out = append(out, (y+1)*g.Width+x)
	}
	if y > 0 && !g.horizontal[x][y] {
		out = append(out, (y-1)*g.Width+x)
	}
	return out
}
