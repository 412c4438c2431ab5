// Package tpinstance parses the transportation-simplex text instance format
// and balances unbalanced instances, both of which are collaborators kept
// deliberately outside the core per spec.md §1.
package tpinstance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ErrInvalidInstance indicates the text stream was structurally malformed:
// a missing field, a non-positive m or n, or a token that did not parse as
// a number where one was expected.
var ErrInvalidInstance = errors.New("tpinstance: invalid instance")

// ErrUnbalanced indicates total supply and total demand differ by more than
// the instance's own tolerance after parsing.
var ErrUnbalanced = errors.New("tpinstance: supply and demand totals differ")

// ErrIndexOverflow indicates m*n exceeds what the chosen index type (a Go
// int) can represent, which in practice only triggers on 32-bit platforms
// with enormous instances.
var ErrIndexOverflow = errors.New("tpinstance: m*n overflows index type")

// Instance is a parsed, optionally balanced transportation problem: M
// supplies, N demands, and an M*N row-major cost matrix.
type Instance struct {
	M, N     int
	Seed     int64
	Supply   []float64
	Demand   []float64
	Costs    []float64 // row-major, length M*N
	Balanced bool
}

// Cost returns the cost of shipping on cell (i, j).
func (in *Instance) Cost(i, j int) float64 {
	return in.Costs[i*in.N+j]
}

// Parse reads the format of spec.md §6: a first line `m n seed`, then m
// supply values, then n demand values, then m*n row-major cost values,
// whitespace-delimited throughout.
func Parse(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}
	nextInt := func(field string) (int64, error) {
		tok, ok := next()
		if !ok {
			return 0, fmt.Errorf("tpinstance.Parse: %w: missing %s", ErrInvalidInstance, field)
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("tpinstance.Parse: %w: %s %q: %v", ErrInvalidInstance, field, tok, err)
		}
		return v, nil
	}
	nextFloat := func(field string) (float64, error) {
		tok, ok := next()
		if !ok {
			return 0, fmt.Errorf("tpinstance.Parse: %w: missing %s", ErrInvalidInstance, field)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("tpinstance.Parse: %w: %s %q: %v", ErrInvalidInstance, field, tok, err)
		}
		return v, nil
	}

	m64, err := nextInt("m")
	if err != nil {
		return nil, err
	}
	n64, err := nextInt("n")
	if err != nil {
		return nil, err
	}
	seed, err := nextInt("seed")
	if err != nil {
		return nil, err
	}
	if m64 <= 0 || n64 <= 0 {
		return nil, fmt.Errorf("tpinstance.Parse: %w: m and n must be positive", ErrInvalidInstance)
	}
	m, n := int(m64), int(n64)
	if n != 0 && m > math.MaxInt/n {
		return nil, fmt.Errorf("tpinstance.Parse: %w", ErrIndexOverflow)
	}

	supply := make([]float64, m)
	for i := range supply {
		v, err := nextFloat("supply")
		if err != nil {
			return nil, err
		}
		supply[i] = v
	}
	demand := make([]float64, n)
	for j := range demand {
		v, err := nextFloat("demand")
		if err != nil {
			return nil, err
		}
		demand[j] = v
	}
	costs := make([]float64, m*n)
	for k := range costs {
		v, err := nextFloat("cost")
		if err != nil {
			return nil, err
		}
		costs[k] = v
	}

	return &Instance{M: m, N: n, Seed: seed, Supply: supply, Demand: demand, Costs: costs}, nil
}

// Balance pads a dummy row or column with zero cost so total supply equals
// total demand, within tolerance eps. An already-balanced instance is
// returned unchanged (Balanced set true either way on success).
func (in *Instance) Balance(eps float64) error {
	var totalS, totalD float64
	for _, s := range in.Supply {
		totalS += s
	}
	for _, d := range in.Demand {
		totalD += d
	}
	diff := totalS - totalD
	if math.Abs(diff) <= eps {
		in.Balanced = true
		return nil
	}

	if diff > 0 {
		// excess supply: add a dummy demand column at zero cost.
		in.Demand = append(in.Demand, diff)
		newCosts := make([]float64, in.M*(in.N+1))
		for i := 0; i < in.M; i++ {
			copy(newCosts[i*(in.N+1):i*(in.N+1)+in.N], in.Costs[i*in.N:(i+1)*in.N])
			newCosts[i*(in.N+1)+in.N] = 0
		}
		in.Costs = newCosts
		in.N++
	} else {
		// excess demand: add a dummy supply row at zero cost.
		in.Supply = append(in.Supply, -diff)
		newCosts := make([]float64, (in.M+1)*in.N)
		copy(newCosts, in.Costs)
		in.Costs = newCosts
		in.M++
	}
	in.Balanced = true
	return nil
}
