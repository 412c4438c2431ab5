// Package initbasis builds an initial feasible spanning-tree basis for a
// balanced transportation instance, via the North-West corner rule or the
// matrix-minimum rule, handing the resulting arcs to tstree.Build.
package initbasis

import (
	"errors"
	"math"

	"github.com/rbargetto/tplex/flowstore"
	"github.com/rbargetto/tplex/tstree"
)

// ErrInconsistentBasis indicates the constructed arc list did not reach the
// required m+n-1 cardinality, which can only happen if supply and demand do
// not balance exactly.
var ErrInconsistentBasis = errors.New("initbasis: inconsistent basis")

// ArcFlow is a basic cell together with the flow quantity the constructor
// assigned it.
type ArcFlow struct {
	I, J int
	Q    float64
}

// ToTreeArcs strips the flow quantities, leaving the (i, j) pairs tstree.Build needs.
func ToTreeArcs(flows []ArcFlow) []tstree.Arc {
	arcs := make([]tstree.Arc, len(flows))
	for k, f := range flows {
		arcs[k] = tstree.Arc{I: f.I, J: f.J}
	}
	return arcs
}

// NorthWestCorner builds an initial basis by repeatedly saturating the
// current north-west remaining cell. When a step exhausts both the current
// row's supply and the current column's demand simultaneously, the tie is
// broken by retiring whichever side still has more nodes remaining (source
// row if more sources remain, destination column otherwise), which is
// what keeps the arc count at exactly m+n-1 instead of skipping one node.
func NorthWestCorner(supply, demand []float64) ([]ArcFlow, error) {
	m, n := len(supply), len(demand)
	s := append([]float64(nil), supply...)
	d := append([]float64(nil), demand...)

	arcs := make([]ArcFlow, 0, m+n-1)
	i, j := 0, 0
	srcsRem, dstsRem := m, n

	for i < m && j < n {
		q := math.Min(s[i], d[j])
		arcs = append(arcs, ArcFlow{I: i, J: j, Q: q})
		s[i] -= q
		d[j] -= q

		sExhausted := s[i] <= flowstore.Eps
		dExhausted := d[j] <= flowstore.Eps
		switch {
		case sExhausted && dExhausted:
			if srcsRem > dstsRem {
				i++
				srcsRem--
			} else {
				j++
				dstsRem--
			}
		case sExhausted:
			i++
			srcsRem--
		case dExhausted:
			j++
			dstsRem--
		default:
			// Neither side exhausted can only happen when q was 0 for a
			// zero-supply/zero-demand node; advance the row to make
			// progress, matching the original's forward-only scan.
			i++
			srcsRem--
		}
	}

	if len(arcs) != m+n-1 {
		return nil, ErrInconsistentBasis
	}
	return arcs, nil
}
