package cycle

import "github.com/rbargetto/tplex/flowstore"

// Reverse returns a copy of the loop with every stone's sign flipped,
// representing moving flow around the same cycle in the opposite direction.
func (l Loop) Reverse() Loop {
	out := Loop{Stones: make([]Stone, len(l.Stones))}
	for i, s := range l.Stones {
		out.Stones[i] = Stone{I: s.I, J: s.J, Sign: -s.Sign}
	}
	return out
}

// ObjectiveDelta returns the change in objective value that moving theta
// units around the loop would cause, given a cost lookup, without mutating
// the flow store. It is theta times the sum, over every stone, of the
// stone's sign times its own cell cost, matching the original's tmp_objf_impr accumulation in Step 2.
func ObjectiveDelta(loop Loop, theta float64, cost func(i, j int) float64) float64 {
	var delta float64
	for _, s := range loop.Stones {
		delta += float64(s.Sign) * theta * cost(s.I, s.J)
	}
	return delta
}

// BidirectionalMove implements the inside-out algorithm's Step 2: for a
// multi-pivot entering variable whose single-pivot cycle has already been
// applied in Step 1, compare moving further flow in the loop's forward
// direction against its reverse, and commit whichever strictly improves the
// objective by more than epsRT; ties (or no improvement either way) keep the
// forward direction, mirroring the original's "< ERTV" branch selection.
func BidirectionalMove(loop Loop, store *flowstore.Store, cost func(i, j int) float64, epsRT float64) (committedTheta float64, reversed bool, err error) {
	fwdTheta, _, err := MinRatio(loop, store)
	if err != nil {
		return 0, false, err
	}
	revLoop := loop.Reverse()
	revTheta, _, err := MinRatio(revLoop, store)
	if err != nil {
		return 0, false, err
	}

	fwdDelta := ObjectiveDelta(loop, fwdTheta, cost)
	revDelta := ObjectiveDelta(revLoop, revTheta, cost)

	useReverse := false
	if !(fwdDelta-revDelta < epsRT) {
		useReverse = true
	}

	chosen, theta := loop, fwdTheta
	if useReverse {
		chosen, theta = revLoop, revTheta
	}
	if _, _, err := Pivot(chosen, store, theta, true); err != nil {
		return 0, useReverse, err
	}
	return theta, useReverse, nil
}
