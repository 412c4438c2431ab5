package initbasis

import (
	"testing"

	"github.com/rbargetto/tplex/tstree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNorthWestCornerBalancedInstance(t *testing.T) {
	supply := []float64{20, 30, 25}
	demand := []float64{10, 25, 15, 25}

	arcs, err := NorthWestCorner(supply, demand)
	require.NoError(t, err)
	assert.Len(t, arcs, len(supply)+len(demand)-1)

	_, err = tstree.Build(len(supply), len(demand), ToTreeArcs(arcs))
	assert.NoError(t, err)
}

func TestNorthWestCornerSimultaneousExhaustion(t *testing.T) {
	// row 0 and col 0 both exhaust at the same step.
	supply := []float64{10, 10}
	demand := []float64{10, 10}

	arcs, err := NorthWestCorner(supply, demand)
	require.NoError(t, err)
	assert.Len(t, arcs, 3)

	_, err = tstree.Build(2, 2, ToTreeArcs(arcs))
	assert.NoError(t, err)
}

func TestMatrixMinimumRuleBalancedInstance(t *testing.T) {
	supply := []float64{20, 30, 25}
	demand := []float64{10, 25, 15, 25}
	costs := [][]float64{
		{4, 1, 2, 6},
		{9, 3, 5, 1},
		{3, 6, 2, 4},
	}
	cost := func(i, j int) float64 { return costs[i][j] }

	arcs, err := MatrixMinimumRule(supply, demand, cost, 0)
	require.NoError(t, err)
	assert.Len(t, arcs, len(supply)+len(demand)-1)

	_, err = tstree.Build(len(supply), len(demand), ToTreeArcs(arcs))
	assert.NoError(t, err)
}

func TestMatrixMinimumRuleWithPartitionFactor(t *testing.T) {
	supply := []float64{20, 30, 25}
	demand := []float64{10, 25, 15, 25}
	costs := [][]float64{
		{4, 1, 2, 6},
		{9, 3, 5, 1},
		{3, 6, 2, 4},
	}
	cost := func(i, j int) float64 { return costs[i][j] }

	arcs, err := MatrixMinimumRule(supply, demand, cost, 0.25)
	require.NoError(t, err)
	assert.Len(t, arcs, len(supply)+len(demand)-1)
}
