package merge

import (
	"fmt"

	"github.com/katalvlaran/kvis/geometry"
)

// Mode selects the clustering rule.
type Mode int

const (
	// UnionFind merges transitively and is idempotent.
	UnionFind Mode = iota
	// SinglePass merges at most one partner per point in one scan.
	SinglePass
)

func (m Mode) String() string {
	switch m {
	case UnionFind:
		return "union-find"
	case SinglePass:
		return "single-pass"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps "union-find" and "single-pass" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "union-find", "unionfind", "":
		return UnionFind, nil
	case "single-pass", "singlepass":
		return SinglePass, nil
	default:
		return 0, fmt.Errorf("merge: unknown mode %q", s)
	}
}

// Group is one merged point.
type Group struct {
	Point geometry.Point
	// Members are indices into the input slice, ascending.
	Members []int
}
