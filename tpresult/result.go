// Package tpresult formats a solver run's outcome as the single-line result
// record of spec.md §6 and optionally mirrors its counters as Prometheus
// gauges for live inspection.
package tpresult

import (
	"fmt"
	"io"
	"math"
)

// Result holds every field of the result-record line, in the exact order
// spec.md §6 requires: instance tag, algorithm tag, optimality flag, six
// doubles, integer counters, then timing doubles.
type Result struct {
	InstanceTag  string
	AlgorithmTag string
	Optimal      bool

	RootLPRelax float64
	RootTime    float64
	BestBound   float64
	ObjValue    float64
	OptGap      float64
	RunTime     float64

	Iterations   int
	BasisChanges int
	FullPricings int

	TimeInit        float64
	TimeHeuristic   float64
	TimeMultipliers float64
	TimePricing     float64
	TimePivot       float64
	TimeStep1       float64
	TimeStep2       float64
	TimeTotal       float64
}

// NewUnsolved returns a Result with every numeric field defaulted to NaN,
// matching optresult's own NaN-by-default fields, so a caller can tell a
// field that was genuinely never computed apart from one that is zero.
func NewUnsolved(instanceTag, algorithmTag string) *Result {
	nan := math.NaN()
	return &Result{
		InstanceTag: instanceTag, AlgorithmTag: algorithmTag,
		RootLPRelax: nan, RootTime: nan, BestBound: nan,
		ObjValue: nan, OptGap: nan, RunTime: nan,
		TimeInit: nan, TimeHeuristic: nan, TimeMultipliers: nan,
		TimePricing: nan, TimePivot: nan, TimeStep1: nan, TimeStep2: nan,
		TimeTotal: nan,
	}
}

// WriteLine writes the single result-record line, field order preserved for
// downstream tooling exactly as spec.md §6 specifies.
func (r *Result) WriteLine(w io.Writer) error {
	optFlag := 0
	if r.Optimal {
		optFlag = 1
	}
	_, err := fmt.Fprintf(w,
		"%s %s %d %g %g %g %g %g %g %d %d %d %g %g %g %g %g %g %g %g\n",
		r.InstanceTag, r.AlgorithmTag, optFlag,
		r.RootLPRelax, r.RootTime, r.BestBound, r.ObjValue, r.OptGap, r.RunTime,
		r.Iterations, r.BasisChanges, r.FullPricings,
		r.TimeInit, r.TimeHeuristic, r.TimeMultipliers, r.TimePricing,
		r.TimePivot, r.TimeStep1, r.TimeStep2, r.TimeTotal,
	)
	return err
}
