package merge

import (
	"sort"

	"github.com/katalvlaran/kvis/geometry"
)

// MergeClose returns the merged points of Cluster.
func MergeClose(points []geometry.Point, threshold float64, mode Mode) []geometry.Point {
	groups := Cluster(points, threshold, mode)
	out := make([]geometry.Point, len(groups))
	for i, g := range groups {
		out[i] = g.Point
	}
	return out
}

// Cluster groups points closer than threshold. Groups are ordered by
// their smallest member index.
func Cluster(points []geometry.Point, threshold float64, mode Mode) []Group {
	if mode == SinglePass {
		return singlePass(points, threshold)
	}
	return unionFind(points, threshold)
}

// singlePass merges the first close pair of each unused point.
func singlePass(points []geometry.Point, threshold float64) []Group {
	used := make([]bool, len(points))
	var out []Group
	for i := range points {
		if used[i] {
			continue
		}
		for j := i + 1; j < len(points); j++ {
			if used[j] || geometry.Distance(points[i], points[j]) >= threshold {
				continue
			}
			used[i], used[j] = true, true
			out = append(out, Group{
				Point:   geometry.Segment{A: points[i], B: points[j]}.Midpoint(),
				Members: []int{i, j},
			})
			break
		}
	}
	for i, u := range used {
		if !u {
			out = append(out, Group{Point: points[i], Members: []int{i}})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Members[0] < out[b].Members[0] })

	return out
}

// unionFind clusters to a fixpoint.
func unionFind(points []geometry.Point, threshold float64) []Group {
	groups := make([]Group, len(points))
	for i, p := range points {
		groups[i] = Group{Point: p, Members: []int{i}}
	}

	for {
		next, merged := unionRound(groups, threshold)
		groups = next
		if !merged {
			return groups
		}
	}
}

// unionRound joins the groups whose representatives are closer than
// threshold and reports whether anything was joined.
func unionRound(groups []Group, threshold float64) ([]Group, bool) {
	n := len(groups)

	// 1. Initialize disjoint-set structures; parent[v] = v.
	parent := make([]int, n)
	rank := make([]int, n)
	for i := range parent {
		parent[i] = i
	}

	// Iterative find with path compression.
	find := func(u int) int {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}

	// Union by rank; reports whether two sets were joined.
	union := func(u, v int) bool {
		ru, rv := find(u), find(v)
		if ru == rv {
			return false
		}
		if rank[ru] < rank[rv] {
			parent[ru] = rv
		} else {
			parent[rv] = ru
			if rank[ru] == rank[rv] {
				rank[ru]++
			}
		}
		return true
	}

	// 2. Join every close pair.
	merged := false
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if geometry.Distance(groups[i].Point, groups[j].Point) < threshold && union(i, j) {
				merged = true
			}
		}
	}
	if !merged {
		return groups, false
	}

	// 3. Collect components in order of first appearance and take the
	//    member-weighted centroid.
	slot := make(map[int]int, n)
	var out []Group
	var weight []float64
	for i, g := range groups {
		r := find(i)
		k, ok := slot[r]
		if !ok {
			k = len(out)
			slot[r] = k
			out = append(out, Group{})
			weight = append(weight, 0)
		}
		w := float64(len(g.Members))
		out[k].Point[0] += g.Point[0] * w
		out[k].Point[1] += g.Point[1] * w
		out[k].Members = append(out[k].Members, g.Members...)
		weight[k] += w
	}
	for k := range out {
		out[k].Point[0] /= weight[k]
		out[k].Point[1] /= weight[k]
		sort.Ints(out[k].Members)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Members[0] < out[b].Members[0] })

	return out, true
}
