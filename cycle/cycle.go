// Package cycle implements the stepping-stone pivoting core of the
// transportation simplex: given a spanning-tree basis and a candidate
// entering cell, it finds the unique alternating loop the cell would close,
// computes the maximum flow (theta) that can move around it without
// violating non-negativity, and moves that flow through the flow store.
package cycle

import (
	"errors"
	"math"

	"github.com/rbargetto/tplex/flowstore"
	"github.com/rbargetto/tplex/tstree"
)

// ErrNoCycle indicates the tree walk produced a degenerate loop (fewer than
// four stones), which can only happen if the entering cell is already basic
// or the tree itself is malformed.
var ErrNoCycle = errors.New("cycle: no valid loop found")

// Strategy selects which tree-walk algorithm locates the loop.
type Strategy int

const (
	// StrategyOC uses tstree.FindCycleOC (two-sided simultaneous walk).
	StrategyOC Strategy = iota
	// StrategyOP uses tstree.FindCycleOP (path-to-root then cut).
	StrategyOP
)

// Stone is one cell of a stepping-stone loop. Sign is +1 for cells that gain
// flow as theta increases (including the entering cell) and -1 for cells
// that lose it, alternating around the loop starting from the entering arc.
type Stone struct {
	I, J int
	Sign int
}

// Loop is the ordered sequence of basic cells (plus the entering cell at
// index 0) that the entering arc (i, j) closes against the current tree.
type Loop struct {
	Stones []Stone
}

// Find locates the loop that entering cell (i, j) would close in tree t,
// using the requested strategy. It returns ErrNoCycle if the resulting path
// is too short to form an alternating loop.
func Find(t *tstree.Tree, i, j int, strat Strategy) (Loop, error) {
	dst := tstree.NodeOfDest(sourceCount(t), j)

	var path []int
	switch strat {
	case StrategyOP:
		path = t.FindCycleOP(i, dst)
	default:
		path = t.FindCycleOC(i, dst)
	}
	if len(path) < 3 {
		return Loop{}, ErrNoCycle
	}

	stones := make([]Stone, 0, len(path)+1)
	stones = append(stones, cellFromPair(t, i, dst, +1))
	sign := -1
	for k := 0; k+1 < len(path); k++ {
		a, b := path[k], path[k+1]
		stones = append(stones, cellFromPair(t, a, b, sign))
		sign = -sign
	}
	return Loop{Stones: stones}, nil
}

func sourceCount(t *tstree.Tree) int {
	// t.NumNodes() == m+n and t.Root() == m+n-1; IsSource is defined by
	// comparing a node id to m. We recover m by scanning for the first
	// non-source node starting at 0, which is cheap relative to solving.
	for id := 0; id < t.NumNodes(); id++ {
		if !t.IsSource(id) {
			return id
		}
	}
	return t.NumNodes()
}

// cellFromPair converts a tree-edge endpoint pair into a (row, col) stone,
// regardless of which endpoint is the source and which the destination.
func cellFromPair(t *tstree.Tree, a, b int, sign int) Stone {
	m := sourceCount(t)
	if t.IsSource(a) {
		return Stone{I: a, J: b - m, Sign: sign}
	}
	return Stone{I: b, J: a - m, Sign: sign}
}

// MinRatio computes theta, the largest quantity that can move around the
// loop while keeping every decreasing cell's flow non-negative, and the
// index of the leaving stone. Mirrors the original's Loop::getMinQ, which
// walks the loop rbegin() to rend() and only replaces the current minimum on
// a strictly smaller value: among tied minima, the stone last in forward
// order is the one found first walking in reverse, and so wins the tie.
func MinRatio(loop Loop, store *flowstore.Store) (theta float64, leavingIdx int, err error) {
	theta = math.Inf(1)
	leavingIdx = -1
	for idx := len(loop.Stones) - 1; idx >= 0; idx-- {
		s := loop.Stones[idx]
		if s.Sign >= 0 {
			continue
		}
		q, gerr := store.Get(s.I, s.J)
		if gerr != nil {
			return 0, -1, gerr
		}
		if q < theta {
			theta = q
			leavingIdx = idx
		}
	}
	if leavingIdx == -1 {
		theta = 0
	}
	return theta, leavingIdx, nil
}

// Pivot moves theta units of flow around the loop, updating every cell's
// stored quantity, and marks the leaving cell non-basic. When
// keepDegenerateSentinel is set, every other decreasing cell whose flow
// drops below flowstore.Eps (a tie with the leaving cell under degeneracy)
// stays basic at the flowstore.EpsQ sentinel to preserve basis cardinality,
// mirroring Loop::moveQuantity's zeroed/unzeroed bookkeeping; without it
// those cells stay basic at their computed flow.
// The leaving stone is chosen by the same reverse-walk, strict-replace tie
// break as MinRatio (the stone last in forward order wins a tie), so Pivot
// agrees with a MinRatio call made against the same loop and theta.
// It returns the (i, j) of the cell that left the basis.
func Pivot(loop Loop, store *flowstore.Store, theta float64, keepDegenerateSentinel bool) (leftI, leftJ int, err error) {
	leftI, leftJ = -1, -1
	minQ := math.Inf(1)
	minIdx := -1

	for idx := len(loop.Stones) - 1; idx >= 0; idx-- {
		s := loop.Stones[idx]
		q, _ := store.Get(s.I, s.J)
		newQ := q + float64(s.Sign)*theta
		if s.Sign < 0 && newQ < minQ {
			minQ = newQ
			minIdx = idx
		}
	}

	for idx, s := range loop.Stones {
		q, _ := store.Get(s.I, s.J)
		newQ := q + float64(s.Sign)*theta
		if keepDegenerateSentinel && s.Sign < 0 && idx != minIdx && newQ < flowstore.Eps {
			newQ = flowstore.EpsQ
		}
		if serr := store.Set(s.I, s.J, newQ); serr != nil {
			return -1, -1, serr
		}
	}

	if minIdx >= 0 {
		s := loop.Stones[minIdx]
		leftI, leftJ = s.I, s.J
		if rerr := store.Remove(s.I, s.J); rerr != nil {
			return -1, -1, rerr
		}
	}
	return leftI, leftJ, nil
}
