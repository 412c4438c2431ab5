package pricing

import (
	"sort"

	"github.com/rbargetto/tplex/shield"
)

// Shielding implements P4: source origins are laid out on shield.Grid's
// square board, and for a given source row i the shield restricts which
// destination COLUMNS are priced, per spec.md §4.5:
//
//	shield(i) = supp(i) ∪ (∪ supp(i') for i' a grid-neighbour of i)
//	            ∪ {columns inside the bounding range of the neighbours' support}
//
// where supp(i) is source i's own current basic destination columns. Touch
// records which source a pivot just modified, so the next Price call only
// re-prices the touched rows (still restricted to their shielded columns);
// with no touch recorded, Price falls back to a full scan of every row and
// column (e.g. for the very first macro-iteration).
type Shielding struct {
	Grid    *shield.Grid
	support [][]int // support[i] = destination columns currently basic for source i

	touched  []int
	fullScan bool
}

// NewShielding builds the shielding policy for m source rows.
func NewShielding(m int) *Shielding {
	return &Shielding{
		Grid:     shield.NewGrid(m),
		support:  make([][]int, m),
		fullScan: true,
	}
}

// Touch records that source i's basic support changed, so the next Price
// call restricts its attention to i's shielded neighbourhood.
func (s *Shielding) Touch(i int) {
	s.touched = append(s.touched, i)
	s.fullScan = false
}

// Price implements Policy.
func (s *Shielding) Price(state State, multiPivot bool) ([]Candidate, bool) {
	for i := 0; i < state.M; i++ {
		s.refreshSupport(state, i)
	}

	var candidates []Candidate
	if len(s.touched) == 0 {
		// nothing touched yet: no basis of geometric locality to restrict
		// against, so price every cell outright rather than through an
		// artificially narrow shield.
		for i := 0; i < state.M; i++ {
			for j := 0; j < state.N; j++ {
				if state.Basic(i, j) {
					continue
				}
				rc := state.ReducedCost(i, j)
				if rc < -epsilon {
					candidates = append(candidates, Candidate{I: i, J: j, ReducedCost: rc})
				}
			}
		}
	} else {
		for _, i := range s.rowsToScan() {
			for _, j := range s.shieldColumns(i) {
				if state.Basic(i, j) {
					continue
				}
				rc := state.ReducedCost(i, j)
				if rc < -epsilon {
					candidates = append(candidates, Candidate{I: i, J: j, ReducedCost: rc})
				}
			}
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].ReducedCost < candidates[b].ReducedCost
	})
	if !multiPivot && len(candidates) > 1 {
		candidates = candidates[:1]
	}

	fullScan := s.fullScan
	s.touched = nil
	s.fullScan = true
	return candidates, fullScan
}

// refreshSupport recomputes source i's own basic destination columns from
// the current state, so shieldColumns always reflects the live basis rather
// than whatever support happened to be recorded at the last touch.
func (s *Shielding) refreshSupport(state State, i int) {
	cols := s.support[i][:0]
	for j := 0; j < state.N; j++ {
		if state.Basic(i, j) {
			cols = append(cols, j)
		}
	}
	s.support[i] = cols
}

// shieldColumns computes shield(i) per spec.md §4.5: source i's own basic
// columns, its grid-neighbours' basic columns, and every column inside the
// bounding range those neighbours' columns span.
func (s *Shielding) shieldColumns(i int) []int {
	seen := make(map[int]bool)
	var cols []int
	add := func(j int) {
		if !seen[j] {
			seen[j] = true
			cols = append(cols, j)
		}
	}

	for _, j := range s.support[i] {
		add(j)
	}
	for _, a := range s.Grid.Cells[i].Neigh {
		for _, j := range s.support[a] {
			add(j)
		}
	}
	r := s.Grid.ColumnRange(i, s.support)
	for j := r.Left; j <= r.Right; j++ {
		add(j)
	}
	return cols
}

// rowsToScan deduplicates the rows recorded by Touch since the last Price
// call.
func (s *Shielding) rowsToScan() []int {
	seen := make(map[int]bool)
	var rows []int
	for _, i := range s.touched {
		if !seen[i] {
			seen[i] = true
			rows = append(rows, i)
		}
	}
	return rows
}
