package pricing

import "sort"

// Windowed implements P3: rather than scanning every non-basic cell, it
// scans a bounded short-list — a contiguous window of the linear cell
// index, sized as WindowFactor of the full m*n space — advancing the window
// start each call like a scanning cursor. If a window comes up empty the
// next call grows the window by WindowFactor2 before scanning again, up to
// a full scan, a short-list-then-widen behaviour sized by the configuration's
// WindowFactor and WindowFactor2 fields. When multiPivot is set, per
// spec.md §4.4 it returns every negative cell found within the window,
// sorted most improving first, instead of only the single best.
type Windowed struct {
	WindowFactor  float64 // fraction of m*n scanned per call, e.g. 0.1
	WindowFactor2 float64 // growth multiplier applied after an empty window

	start      int
	curFactor  float64
	inittedCur bool
}

// Price implements Policy.
func (w *Windowed) Price(state State, multiPivot bool) ([]Candidate, bool) {
	total := state.M * state.N
	if total == 0 {
		return nil, true
	}
	if !w.inittedCur {
		w.curFactor = w.WindowFactor
		if w.curFactor <= 0 {
			w.curFactor = 0.1
		}
		w.inittedCur = true
	}

	size := int(w.curFactor * float64(total))
	if size < 1 {
		size = 1
	}
	if size > total {
		size = total
	}

	var candidates []Candidate
	for k := 0; k < size; k++ {
		idx := (w.start + k) % total
		i, j := idx/state.N, idx%state.N
		if state.Basic(i, j) {
			continue
		}
		rc := state.ReducedCost(i, j)
		if rc < -epsilon {
			candidates = append(candidates, Candidate{I: i, J: j, ReducedCost: rc})
		}
	}
	w.start = (w.start + size) % total
	fullScan := size >= total

	if len(candidates) == 0 {
		growth := w.WindowFactor2
		if growth <= 1 {
			growth = 2
		}
		w.curFactor *= growth
		if w.curFactor*float64(total) >= float64(total) {
			w.curFactor = 1
		}
		return nil, fullScan
	}

	w.curFactor = w.WindowFactor
	if w.curFactor <= 0 {
		w.curFactor = 0.1
	}

	sort.Slice(candidates, func(a, b int) bool { return candidates[a].ReducedCost < candidates[b].ReducedCost })
	if !multiPivot && len(candidates) > 1 {
		candidates = candidates[:1]
	}
	return candidates, fullScan
}
