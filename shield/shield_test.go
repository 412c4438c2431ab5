package shield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridSideIsCeilSqrt(t *testing.T) {
	g := NewGrid(9)
	assert.Equal(t, 3, g.Side)

	g = NewGrid(10)
	assert.Equal(t, 4, g.Side)
}

func TestNewGridNeighboursAreSymmetric(t *testing.T) {
	g := NewGrid(9)
	for i, c := range g.Cells {
		for _, nb := range c.Neigh {
			require.True(t, containsInt(g.Cells[nb].Neigh, i), "cell %d's neighbour %d does not list %d back", i, nb, i)
		}
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func TestColumnRangeIsEmptyWithNoNeighbourSupport(t *testing.T) {
	g := NewGrid(9)
	supp := make([][]int, 9)
	r := g.ColumnRange(4, supp)
	assert.Greater(t, r.Left, r.Right)
	assert.False(t, g.Contains(r, 0))
}

func TestColumnRangeSpansNeighbourSupport(t *testing.T) {
	g := NewGrid(9)
	supp := make([][]int, 9)
	// cell 4's neighbours are 1, 3, 5, 7 (up/left/right/down on a 3x3 grid).
	supp[1] = []int{2, 6}
	supp[3] = []int{0}
	r := g.ColumnRange(4, supp)
	assert.Equal(t, 0, r.Left)
	assert.Equal(t, 6, r.Right)
}

func TestContains(t *testing.T) {
	g := NewGrid(9)
	r := Rectangle{Left: 0, Right: 1}
	assert.True(t, g.Contains(r, 0))
	assert.False(t, g.Contains(r, 2))
}
