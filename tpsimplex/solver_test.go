package tpsimplex

import (
	"context"
	"testing"

	"github.com/rbargetto/tplex/tpconfig"
	"github.com/rbargetto/tplex/tpinstance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInstance() *tpinstance.Instance {
	return &tpinstance.Instance{
		M: 3, N: 4,
		Supply: []float64{20, 30, 25},
		Demand: []float64{10, 25, 15, 25},
		Costs: []float64{
			4, 1, 2, 6,
			9, 3, 5, 1,
			3, 6, 2, 4,
		},
	}
}

func dantzigConfig(t *testing.T) *tpconfig.Config {
	t.Helper()
	cfg, err := tpconfig.New(tpconfig.AlgorithmTS, 0, 3, 4, 0.1, 2, 5, 0, 0)
	require.NoError(t, err)
	return cfg
}

func TestSolverReachesOptimalOnSmallInstance(t *testing.T) {
	inst := sampleInstance()
	cfg := dantzigConfig(t)

	solver, err := New(inst, cfg, nil)
	require.NoError(t, err)

	res, err := solver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, TerminationOptimal, res.Reason)
	require.NoError(t, solver.tree.CheckTree())
	assert.InDelta(t, 75.0, solver.store.Total(), 1e-6, "all supply should have been shipped")
}

func TestSolverMultiPivotAgreesWithSinglePivotObjective(t *testing.T) {
	inst := sampleInstance()

	single, err := New(inst, dantzigConfig(t), nil)
	require.NoError(t, err)
	singleRes, err := single.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, TerminationOptimal, singleRes.Reason)

	// AlgMode digits, least-significant first: d0=1 (multi-pivot on), rest 0
	// (no colour oracle, Dantzig pricing, north-west corner basis) -> 1.
	multiCfg, err := tpconfig.New(tpconfig.AlgorithmTS, 1, 3, 4, 0.1, 2, 5, 0, 0)
	require.NoError(t, err)
	require.True(t, multiCfg.MultiPivot)
	multi, err := New(inst, multiCfg, nil)
	require.NoError(t, err)
	multiRes, err := multi.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, TerminationOptimal, multiRes.Reason)

	assert.InDelta(t, singleRes.ObjValue, multiRes.ObjValue, 1e-6)
}

// TestSolverMultiPivotWithColorOracleAndFirstNegativeAgreesWithSinglePivot
// exercises the tree-colour oracle together with P1 (FirstNegative)'s
// multi-pivot contract: AlgMode digits d0=1 (multi-pivot), d1=1 (colour
// oracle), d2=0 (strict greed), d3=1 (FirstNegative), d4=0 -> 1011.
func TestSolverMultiPivotWithColorOracleAndFirstNegativeAgreesWithSinglePivot(t *testing.T) {
	inst := sampleInstance()

	single, err := New(inst, dantzigConfig(t), nil)
	require.NoError(t, err)
	singleRes, err := single.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, TerminationOptimal, singleRes.Reason)

	multiCfg, err := tpconfig.New(tpconfig.AlgorithmTS, 1011, 3, 4, 0.1, 2, 5, 0, 0)
	require.NoError(t, err)
	require.True(t, multiCfg.MultiPivot)
	require.True(t, multiCfg.TreeColorOracle)
	require.Equal(t, tpconfig.PricingFirstNegative, multiCfg.PricingPolicy)

	multi, err := New(inst, multiCfg, nil)
	require.NoError(t, err)
	multiRes, err := multi.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, TerminationOptimal, multiRes.Reason)

	assert.InDelta(t, singleRes.ObjValue, multiRes.ObjValue, 1e-6)
}

func TestSolverRespectsIterationLimit(t *testing.T) {
	inst := sampleInstance()
	cfg, err := tpconfig.New(tpconfig.AlgorithmTS, 0, 3, 4, 0.1, 2, 0, 0, 0.2)
	require.NoError(t, err)

	solver, err := New(inst, cfg, nil)
	require.NoError(t, err)
	res, err := solver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TerminationIterationLimit, res.Reason)
}
