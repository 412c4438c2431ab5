//go:build notrace

package tplog

import "io"

// Tracer is a zero-cost no-op under the notrace build tag, for benchmark
// builds that want the tracing call sites compiled out entirely.
type Tracer struct{}

// New ignores w and returns a no-op Tracer.
func New(w io.Writer) *Tracer { return &Tracer{} }

func (t *Tracer) Iteration(iter int, policy string, pivots int)          {}
func (t *Tracer) Terminal(reason string, objValue float64, iterations int) {}
func (t *Tracer) Error(err error, context string)                        {}
