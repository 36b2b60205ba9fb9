package locate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/keyray"
	"github.com/katalvlaran/kvis/rays"
)

var (
	// ErrUnclassifiableVertex marks a jump pattern that matches no direction.
	ErrUnclassifiableVertex = errors.New("locate: unclassifiable vertex")
	// ErrTooFewFamilies is returned when fewer than three families are given.
	ErrTooFewFamilies = errors.New("locate: need at least three ray families")
	// ErrNoLean marks a candidate whose lead family is vertical.
	ErrNoLean = errors.New("locate: candidate has no leaning family")
)

// Direction is a set of directions in which walls leave a vertex.
type Direction uint8

const (
	Up Direction = 1 << iota
	Down
	Left
	Right
)

// None is the empty direction set.
const None Direction = 0

// Has reports whether every direction in o is in d.
func (d Direction) Has(o Direction) bool { return d&o == o }

func (d Direction) String() string {
	if d == None {
		return "none"
	}
	var parts []string
	for _, x := range []struct {
		bit  Direction
		name string
	}{{Up, "up"}, {Down, "down"}, {Left, "left"}, {Right, "right"}} {
		if d&x.bit != 0 {
			parts = append(parts, x.name)
		}
	}
	return strings.Join(parts, "|")
}

// UnclassifiableVertexError carries the jump pattern that could not be
// labelled.
type UnclassifiableVertexError struct {
	Point          geometry.Point
	R1, R2, L1, L2 int
}

func (e *UnclassifiableVertexError) Error() string {
	return fmt.Sprintf("locate: unclassifiable vertex at (%.4f, %.4f): right %d→%d, left %d→%d",
		e.Point[0], e.Point[1], e.R1, e.R2, e.L1, e.L2)
}

// Unwrap returns ErrUnclassifiableVertex.
func (e *UnclassifiableVertexError) Unwrap() error { return ErrUnclassifiableVertex }

// Candidate is one vertex estimate from one triple of key pairs.
type Candidate struct {
	// ID is the position of the candidate in the LocalizeAll output.
	ID    int
	Point geometry.Point
	// Families are the family indices of the triple, first family first.
	Families [3]int
	Pairs    [3]keyray.Pair
	// Lead is the position in the triple of the first non-vertical family.
	Lead int
	// Side is the lean of the lead family.
	Side rays.Side
}

// Jump returns the lead family's count before and after the vertex.
func (c Candidate) Jump() (before, after int) {
	return int(c.Pairs[c.Lead].Before), int(c.Pairs[c.Lead].After)
}

// Vertex is a classified vertex estimate.
type Vertex struct {
	Point     geometry.Point
	Direction Direction
	// Sources are the IDs of the candidates the vertex was built from.
	Sources []int
}

// Options tunes localization.
//   - BoundsTolerance: how far outside the rectangle a centroid may lie (0.1).
//   - MaxDiameterFactor: regions wider than this many strip widths are
//     rejected as too loose (16).
//   - Workers: parallel triple windows; <= 0 means GOMAXPROCS.
type Options struct {
	BoundsTolerance   float64
	MaxDiameterFactor float64
	Workers           int
}

// DefaultOptions returns the localization defaults.
func DefaultOptions() Options {
	return Options{
		BoundsTolerance:   0.1,
		MaxDiameterFactor: 16,
	}
}
