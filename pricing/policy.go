// Package pricing implements the transportation simplex's reduced-cost
// policies: given the current dual potentials, each policy decides which
// non-basic cell(s) are offered to the pivoting engine as entering
// candidates. Four policies are provided, selected at solver construction
// from the configuration's algorithm-mode digit (spec.md §6): Dantzig
// (full scan, most negative), FirstNegative (Bland-style anti-cycling),
// Windowed (bounded short-list), and Shielding (geometric neighbourhood).
package pricing

import "errors"

// ErrNoImprovingCell indicates a pricing pass found no non-basic cell whose
// reduced cost is negative enough to improve the objective — the solver's
// optimality signal.
var ErrNoImprovingCell = errors.New("pricing: no improving cell found")

// State is the read-only view of the current basis a Policy prices against.
type State struct {
	M, N  int
	Cost  func(i, j int) float64
	U, V  []float64
	Basic func(i, j int) bool
}

// ReducedCost returns cost(i,j) - U[i] - V[j].
func (s State) ReducedCost(i, j int) float64 {
	return s.Cost(i, j) - s.U[i] - s.V[j]
}

// Candidate is a priced non-basic cell offered as an entering variable.
type Candidate struct {
	I, J        int
	ReducedCost float64
}

// Policy prices the current state and returns the entering-variable
// candidates it found, plus whether every non-basic cell was actually
// examined (fullScan). Per spec.md §4.4, all policies except P0 accept a
// multiPivot flag: when true, they return every currently negative-reduced-
// cost cell they examined, sorted by non-decreasing reduced cost (most
// improving first); when false, at most one candidate is returned. P0
// (Dantzig) ignores the flag — a full scan always produces at most its
// single most negative cell regardless of pivot mode.
type Policy interface {
	Price(state State, multiPivot bool) (candidates []Candidate, fullScan bool)
}

// epsilon matches the original's MYEPS strict-improvement threshold: a
// candidate only replaces the current best if it improves by more than
// this, avoiding numerical-noise-driven cycling among equal-cost ties.
const epsilon = 1e-9
