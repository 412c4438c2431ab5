package tstree

// CostFunc returns the transportation cost of shipping on cell (i, j).
type CostFunc func(i, j int) float64

// PropagateMultipliers computes the dual potentials u (length m, one per
// source) and v (length n, one per destination) implied by the basic arcs of
// the tree, so that u[i]+v[j] == cost(i,j) holds on every basic cell.
//
// When dirtySubroot is negative, a full propagation runs from the tree's
// fixed root (whose destination-side potential is pinned to zero). When
// dirtySubroot is >= 0, only the subtree rooted there is recomputed, on the
// assumption that dirtySubroot's own potential is still valid and only its
// descendants were affected by the preceding pivot — the partial-propagation
// path used after a single-entering-variable pivot (see DESIGN.md's Open
// Question resolution).
func (t *Tree) PropagateMultipliers(cost CostFunc, u, v []float64, dirtySubroot int) {
	start := t.Root()
	if dirtySubroot >= 0 {
		start = dirtySubroot
	} else {
		v[t.n-1] = 0
	}

	stack := []int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := t.FirstChild[cur]; c != none; c = t.YoungerSib[c] {
			if t.IsSource(cur) {
				j := c - t.m
				v[j] = cost(cur, j) - u[cur]
			} else {
				i := c
				jp := cur - t.m
				u[i] = cost(i, jp) - v[jp]
			}
			stack = append(stack, c)
		}
	}
}
