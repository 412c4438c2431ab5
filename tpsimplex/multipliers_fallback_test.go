package tpsimplex

import (
	"context"
	"math/rand"
	"testing"

	"github.com/rbargetto/tplex/pricing"
	"github.com/rbargetto/tplex/tpconfig"
	"github.com/rbargetto/tplex/tpinstance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This test backs the Open Question resolution recorded in DESIGN.md: after
// every single-pivot step, the solver's partial (dirty-subroot) multiplier
// propagation must agree with an independent full propagation from the
// tree's root, on randomized instances. Disagreement would mean the
// dirty-subroot node detection missed part of the affected subtree.
func TestPartialPropagationAgreesWithFullPropagationAfterEveryPivot(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 5; trial++ {
		m, n := 4, 5
		supply := make([]float64, m)
		demand := make([]float64, n)
		total := 0.0
		for i := range supply {
			supply[i] = float64(10 + rng.Intn(20))
			total += supply[i]
		}
		// scale demand to match total exactly.
		raw := make([]float64, n)
		rawTotal := 0.0
		for j := range raw {
			raw[j] = float64(1 + rng.Intn(20))
			rawTotal += raw[j]
		}
		for j := range demand {
			demand[j] = raw[j] / rawTotal * total
		}

		costs := make([]float64, m*n)
		for k := range costs {
			costs[k] = float64(1 + rng.Intn(50))
		}
		inst := &tpinstance.Instance{M: m, N: n, Supply: supply, Demand: demand, Costs: costs}

		cfg, err := tpconfig.New(tpconfig.AlgorithmTS, 0, m, n, 0.1, 2, 2, 0, 0)
		require.NoError(t, err)

		solver, err := New(inst, cfg, nil)
		require.NoError(t, err)

		// Drive the single-pivot path by hand so the multipliers are compared
		// after every pivot, then let Run finish and compare once more.
		for step := 0; step < 10000*(m+n); step++ {
			state := pricing.State{M: m, N: n, Cost: solver.cost, U: solver.u, V: solver.v, Basic: solver.store.Contains}
			cands, _ := solver.policy.Price(state, false)
			if len(cands) == 0 || solver.runSinglePivot(cands[0]) == 0 {
				break
			}
			assertMultipliersMatchFullPropagation(t, solver, trial)
		}

		_, err = solver.Run(context.Background())
		require.NoError(t, err)
		assertMultipliersMatchFullPropagation(t, solver, trial)
	}
}

func assertMultipliersMatchFullPropagation(t *testing.T, solver *Solver, trial int) {
	t.Helper()
	uFull := make([]float64, solver.m)
	vFull := make([]float64, solver.n)
	solver.tree.PropagateMultipliers(solver.cost, uFull, vFull, -1)

	for i := range uFull {
		assert.InDelta(t, uFull[i], solver.u[i], 1e-6, "trial %d u[%d] diverged", trial, i)
	}
	for j := range vFull {
		assert.InDelta(t, vFull[j], solver.v[j], 1e-6, "trial %d v[%d] diverged", trial, j)
	}
}
