package initbasis

import (
	"math"
	"sort"

	"github.com/rbargetto/tplex/flowstore"
)

// CostFunc returns the transportation cost of cell (i, j).
type CostFunc func(i, j int) float64

type cellCost struct {
	i, j   int
	cost   float64
	bucket int
}

// MatrixMinimumRule builds an initial basis by repeatedly saturating the
// cheapest remaining cell whose row and column are both still open, using
// the same double-exhaustion tie-break as NorthWestCorner to guarantee
// m+n-1 arcs.
//
// partitionFactor controls the cost pre-sort: 0 (or any value <= 0) sorts
// every cell exactly by cost, as the rule requires for small instances.
// A positive value quantizes costs into buckets of width
// partitionFactor*(max-min) and sorts only by bucket, an O(mn) near-sort
// that trades strict cost order for speed on large dense instances, the
// same trade the original's partitioned variant makes.
func MatrixMinimumRule(supply, demand []float64, cost CostFunc, partitionFactor float64) ([]ArcFlow, error) {
	m, n := len(supply), len(demand)
	cells := make([]cellCost, 0, m*n)
	minC, maxC := math.Inf(1), math.Inf(-1)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			c := cost(i, j)
			cells = append(cells, cellCost{i: i, j: j, cost: c})
			if c < minC {
				minC = c
			}
			if c > maxC {
				maxC = c
			}
		}
	}

	if partitionFactor > 0 && maxC > minC {
		width := partitionFactor * (maxC - minC)
		if width <= 0 {
			width = (maxC - minC) / float64(len(cells))
		}
		for k := range cells {
			cells[k].bucket = int((cells[k].cost - minC) / width)
		}
		sort.SliceStable(cells, func(a, b int) bool {
			return cells[a].bucket < cells[b].bucket
		})
	} else {
		sort.SliceStable(cells, func(a, b int) bool {
			return cells[a].cost < cells[b].cost
		})
	}

	s := append([]float64(nil), supply...)
	d := append([]float64(nil), demand...)
	rowDone := make([]bool, m)
	colDone := make([]bool, n)
	srcsRem, dstsRem := m, n

	arcs := make([]ArcFlow, 0, m+n-1)
	for _, c := range cells {
		if len(arcs) == m+n-1 {
			break
		}
		if rowDone[c.i] || colDone[c.j] {
			continue
		}
		q := math.Min(s[c.i], d[c.j])
		arcs = append(arcs, ArcFlow{I: c.i, J: c.j, Q: q})
		s[c.i] -= q
		d[c.j] -= q

		sExhausted := s[c.i] <= flowstore.Eps
		dExhausted := d[c.j] <= flowstore.Eps
		switch {
		case sExhausted && dExhausted:
			if srcsRem > dstsRem {
				rowDone[c.i] = true
				srcsRem--
			} else {
				colDone[c.j] = true
				dstsRem--
			}
		case sExhausted:
			rowDone[c.i] = true
			srcsRem--
		case dExhausted:
			colDone[c.j] = true
			dstsRem--
		}
	}

	if len(arcs) != m+n-1 {
		return nil, ErrInconsistentBasis
	}
	return arcs, nil
}
