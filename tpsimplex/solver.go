// Package tpsimplex implements the transportation-simplex macro-iteration
// driver: it wires an initial basis, a spanning tree, a pricing policy and
// the cycle/pivoting engine together and runs them to optimality, a time
// limit, or an iteration limit.
package tpsimplex

import (
	"context"
	"time"

	"github.com/rbargetto/tplex/cycle"
	"github.com/rbargetto/tplex/flowstore"
	"github.com/rbargetto/tplex/initbasis"
	"github.com/rbargetto/tplex/pricing"
	"github.com/rbargetto/tplex/tpconfig"
	"github.com/rbargetto/tplex/tpinstance"
	"github.com/rbargetto/tplex/tplog"
	"github.com/rbargetto/tplex/tstree"
)

// TerminationReason records why Run stopped.
type TerminationReason int

const (
	TerminationOptimal TerminationReason = iota
	TerminationTimeLimit
	TerminationIterationLimit
)

func (r TerminationReason) String() string {
	switch r {
	case TerminationOptimal:
		return "optimal"
	case TerminationTimeLimit:
		return "time_limit"
	case TerminationIterationLimit:
		return "iteration_limit"
	default:
		return "unknown"
	}
}

// Stats accumulates driver counters surfaced to tpresult.Result.
type Stats struct {
	Iterations   int
	BasisChanges int
	FullPricings int
}

// deadlineCheckEvery matches the teacher's sparse periodic deadline-check
// convention (tsp/bb.go's bbEngine): checking the wall clock every iteration
// would dominate runtime on easy instances, so the context is polled only
// once every N macro-iterations.
const deadlineCheckEvery = 64

// Solver owns every piece of mutable state for one solve: the tree, the
// flow store, the current dual potentials, and the configured pricing
// policy. It is not safe for concurrent use, matching spec.md §5's
// single-threaded, synchronous execution model.
type Solver struct {
	m, n int
	cost func(i, j int) float64

	tree   *tstree.Tree
	store  *flowstore.Store
	policy pricing.Policy
	cfg    *tpconfig.Config
	tracer *tplog.Tracer

	u, v  []float64
	stats Stats
}

// New builds a solver for inst under cfg, constructing the initial basis
// with the configured heuristic. tracer may be nil, in which case Run emits
// no trace output; New never emits on its own.
func New(inst *tpinstance.Instance, cfg *tpconfig.Config, tracer *tplog.Tracer) (*Solver, error) {
	var flows []initbasis.ArcFlow
	var err error
	switch cfg.InitialBasis {
	case tpconfig.InitialBasisMatrixMinimumRule:
		flows, err = initbasis.MatrixMinimumRule(inst.Supply, inst.Demand, inst.Cost, cfg.PartitionFactor)
	default:
		flows, err = initbasis.NorthWestCorner(inst.Supply, inst.Demand)
	}
	if err != nil {
		return nil, err
	}

	tree, err := tstree.Build(inst.M, inst.N, initbasis.ToTreeArcs(flows))
	if err != nil {
		return nil, err
	}

	store, err := flowstore.New(inst.M, inst.N)
	if err != nil {
		return nil, err
	}
	for _, f := range flows {
		if err := store.Set(f.I, f.J, f.Q); err != nil {
			return nil, err
		}
	}

	s := &Solver{
		m: inst.M, n: inst.N,
		cost:   inst.Cost,
		tree:   tree,
		store:  store,
		cfg:    cfg,
		tracer: tracer,
		u:      make([]float64, inst.M),
		v:      make([]float64, inst.N),
	}
	s.policy = newPolicy(cfg, inst.M, inst.N)
	s.tree.PropagateMultipliers(s.cost, s.u, s.v, -1)
	return s, nil
}

func newPolicy(cfg *tpconfig.Config, m, n int) pricing.Policy {
	switch cfg.PricingPolicy {
	case tpconfig.PricingFirstNegative:
		return &pricing.FirstNegative{}
	case tpconfig.PricingWindowed:
		return &pricing.Windowed{WindowFactor: cfg.WindowFactor, WindowFactor2: cfg.WindowFactor2}
	case tpconfig.PricingShielding:
		return pricing.NewShielding(m)
	default:
		return pricing.Dantzig{}
	}
}

// ObjectiveValue sums cost*flow over every basic cell.
func (s *Solver) ObjectiveValue() float64 {
	var total float64
	for i := 0; i < s.m; i++ {
		for j := 0; j < s.n; j++ {
			if s.store.Contains(i, j) {
				q, _ := s.store.Get(i, j)
				total += s.cost(i, j) * q
			}
		}
	}
	return total
}

// Result is the outcome of a Run call.
type Result struct {
	Reason   TerminationReason
	ObjValue float64
	Stats    Stats
}

// Run executes the macro-iteration loop until optimality, cfg.TimeLimit
// elapses, or cfg.MaxIterFactor*(m+n) iterations are exhausted. The context
// is polled for cancellation/deadline only once every deadlineCheckEvery
// iterations, matching the teacher's sparse periodic deadline-check idiom.
func (s *Solver) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	maxIter := int(s.cfg.MaxIterFactor * float64(s.m+s.n))
	if maxIter <= 0 {
		maxIter = 10000 * (s.m + s.n)
	}

	for {
		if s.cfg.TimeLimit > 0 && time.Since(start).Seconds() > s.cfg.TimeLimit {
			return s.finish(TerminationTimeLimit), nil
		}
		if s.stats.Iterations%deadlineCheckEvery == 0 {
			select {
			case <-ctx.Done():
				return s.finish(TerminationTimeLimit), ctx.Err()
			default:
			}
		}
		if s.stats.Iterations >= maxIter {
			return s.finish(TerminationIterationLimit), nil
		}

		state := pricing.State{
			M: s.m, N: s.n,
			Cost:  s.cost,
			U:     s.u,
			V:     s.v,
			Basic: s.store.Contains,
		}
		candidates, fullScan := s.policy.Price(state, s.cfg.MultiPivot)
		if fullScan {
			s.stats.FullPricings++
		}
		if len(candidates) == 0 {
			if s.tracer != nil {
				s.tracer.Terminal(TerminationOptimal.String(), s.ObjectiveValue(), s.stats.Iterations)
			}
			return s.finish(TerminationOptimal), nil
		}

		pivots := 0
		if s.cfg.MultiPivot && len(candidates) > 1 {
			pivots = s.runMultiPivot(candidates)
		} else {
			pivots = s.runSinglePivot(candidates[0])
		}
		s.stats.Iterations++
		if s.tracer != nil {
			s.tracer.Iteration(s.stats.Iterations, pricingName(s.cfg.PricingPolicy), pivots)
		}
	}
}

// flowOf returns the flow currently held on the basic arc between node and
// its tree parent, used by ColorTree to classify an arc as zero-flow or not.
func (s *Solver) flowOf(node int) float64 {
	parent := s.tree.Parent[node]
	var i, j int
	if s.tree.IsSource(node) {
		i, j = node, parent-s.m
	} else {
		i, j = parent, node-s.m
	}
	q, err := s.store.Get(i, j)
	if err != nil {
		return 0
	}
	return q
}

func (s *Solver) touchShield(nodes ...int) {
	sh, ok := s.policy.(*pricing.Shielding)
	if !ok {
		return
	}
	for _, n := range nodes {
		sh.Touch(n)
	}
}

func (s *Solver) runSinglePivot(cand pricing.Candidate) int {
	loop, err := cycle.Find(s.tree, cand.I, cand.J, cycle.StrategyOC)
	if err != nil {
		return 0
	}
	theta, leaveIdx, err := cycle.MinRatio(loop, s.store)
	if err != nil || leaveIdx < 0 {
		return 0
	}
	leftI, leftJ, err := cycle.Pivot(loop, s.store, theta, true)
	if err != nil {
		return 0
	}
	dirty, err := s.applyTreeSurgery(cand, leftI, leftJ)
	if err != nil {
		return 0
	}
	s.stats.BasisChanges++
	s.touchShield(cand.I, leftI)

	// Single-entering-variable pivot: partial multiplier propagation from
	// the entering arc's endpoint in the rooted component, whose potential
	// the pivot left unchanged, so the reattached subtree hanging under it
	// is recomputed; when that endpoint is the global root itself (the
	// degenerate case spec.md §9 flags), fall back to a full propagation.
	dirty = s.tree.Parent[dirty]
	if dirty == s.tree.Root() {
		dirty = -1
	}
	s.tree.PropagateMultipliers(s.cost, s.u, s.v, dirty)
	return 1
}

func (s *Solver) runMultiPivot(candidates []pricing.Candidate) int {
	greed := tstree.Greed(s.cfg.OracleGreed)
	if s.cfg.TreeColorOracle {
		s.tree.ColorTree(s.flowOf, flowstore.EpsQ)
	}
	pivots := 0
	for _, cand := range candidates {
		destNode := tstree.NodeOfDest(s.m, cand.J)
		if s.cfg.TreeColorOracle && !(s.tree.CheckArc(cand.I, greed) && s.tree.CheckArc(destNode, greed)) {
			continue
		}
		loop, err := cycle.Find(s.tree, cand.I, cand.J, cycle.StrategyOC)
		if err != nil {
			continue
		}
		theta, leaveIdx, err := cycle.MinRatio(loop, s.store)
		if err != nil || leaveIdx < 0 {
			continue
		}
		leftI, leftJ, err := cycle.Pivot(loop, s.store, theta, true)
		if err != nil {
			continue
		}
		dirty, err := s.applyTreeSurgery(cand, leftI, leftJ)
		if err != nil {
			continue
		}
		s.stats.BasisChanges++
		s.touchShield(cand.I, leftI)
		pivots++
		if s.cfg.TreeColorOracle {
			if theta > flowstore.EpsQ {
				s.tree.ColorSubtree(dirty)
			} else {
				s.tree.MergeSubtree(dirty, s.tree.Color[s.tree.Parent[dirty]])
			}
		}
	}
	if pivots > 0 {
		// more than one entering variable may have moved: always do a
		// full re-propagation after a multi-pivot macro-iteration.
		s.tree.PropagateMultipliers(s.cost, s.u, s.v, -1)
		if s.cfg.TreeColorOracle {
			s.tree.ResetTreeColor()
		}
		s.step2(candidates)
	}
	return pivots
}

// step2 runs the inside-out algorithm's bidirectional improvement pass over
// every entering variable that still has slack after Step 1.
func (s *Solver) step2(candidates []pricing.Candidate) {
	for _, cand := range candidates {
		loop, err := cycle.Find(s.tree, cand.I, cand.J, cycle.StrategyOC)
		if err != nil {
			continue
		}
		if _, _, err := cycle.BidirectionalMove(loop, s.store, s.cost, s.cfg.EpsRT); err != nil {
			continue
		}
	}
	s.tree.PropagateMultipliers(s.cost, s.u, s.v, -1)
}

// applyTreeSurgery performs the tree Update for one pivot: the leaving arc
// (leftI, leftJ) is detached, splitting the tree; the entering arc then
// reattaches whichever of its two endpoints fell into the orphaned half.
// It returns that endpoint — the new local root of the reattached subtree,
// and the dirty-subroot candidate for partial multiplier propagation.
func (s *Solver) applyTreeSurgery(cand pricing.Candidate, leftI, leftJ int) (int, error) {
	leaveDest := tstree.NodeOfDest(s.m, leftJ)
	if err := s.tree.Detach(leftI, leaveDest); err != nil {
		return 0, err
	}

	enterDest := tstree.NodeOfDest(s.m, cand.J)
	mainSide, orphanSide := cand.I, enterDest
	if !s.tree.InMainComponent(cand.I) {
		mainSide, orphanSide = enterDest, cand.I
	}
	if err := s.tree.Attach(mainSide, orphanSide); err != nil {
		return 0, err
	}
	return orphanSide, nil
}

func (s *Solver) finish(reason TerminationReason) Result {
	return Result{
		Reason:   reason,
		ObjValue: s.ObjectiveValue(),
		Stats:    s.stats,
	}
}

func pricingName(p tpconfig.PricingPolicy) string {
	switch p {
	case tpconfig.PricingFirstNegative:
		return "first_negative"
	case tpconfig.PricingWindowed:
		return "windowed"
	case tpconfig.PricingShielding:
		return "shielding"
	default:
		return "dantzig"
	}
}
