package pricing

import "sort"

// FirstNegative implements P1: a Bland-style anti-cycling rule that scans
// non-basic cells in a fixed linear order starting just after wherever the
// previous call left off, and returns the first strictly negative reduced
// cost it meets. Restarting from the last stop (instead of from (0,0) every
// time) keeps the policy from repeatedly re-discovering the same early
// candidate on stalled, highly degenerate instances. When multiPivot is set,
// per spec.md §4.4 it instead completes the scan and returns every negative
// cell found, sorted most improving first.
type FirstNegative struct {
	last int // linear index (i*N+j) to resume scanning from
}

// Price implements Policy.
func (p *FirstNegative) Price(state State, multiPivot bool) ([]Candidate, bool) {
	total := state.M * state.N
	if total == 0 {
		return nil, true
	}

	if !multiPivot {
		for k := 0; k < total; k++ {
			idx := (p.last + k) % total
			i, j := idx/state.N, idx%state.N
			if state.Basic(i, j) {
				continue
			}
			rc := state.ReducedCost(i, j)
			if rc < -epsilon {
				p.last = (idx + 1) % total
				return []Candidate{{I: i, J: j, ReducedCost: rc}}, k == total-1
			}
		}
		p.last = 0
		return nil, true
	}

	var candidates []Candidate
	for k := 0; k < total; k++ {
		idx := (p.last + k) % total
		i, j := idx/state.N, idx%state.N
		if state.Basic(i, j) {
			continue
		}
		rc := state.ReducedCost(i, j)
		if rc < -epsilon {
			candidates = append(candidates, Candidate{I: i, J: j, ReducedCost: rc})
		}
	}
	p.last = 0
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].ReducedCost < candidates[b].ReducedCost })
	return candidates, true
}
