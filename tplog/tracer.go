//go:build !notrace

// Package tplog provides the structured per-phase tracing the original
// gated behind its EXPTRACING_2 preprocessor switch (MyLog.cpp/MyLog.h):
// macro-iteration number, pricing policy, pivot counts at Debug level, and
// terminal conditions / errors at Info/Error level. Building with the
// notrace tag swaps in tracer_notrace.go's zero-cost no-op implementation.
package tplog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Tracer wraps a zerolog.Logger scoped to one solver run.
type Tracer struct {
	log zerolog.Logger
}

// New creates a Tracer writing structured JSON lines to w (os.Stderr if nil).
func New(w io.Writer) *Tracer {
	if w == nil {
		w = os.Stderr
	}
	return &Tracer{log: zerolog.New(w).With().Timestamp().Logger()}
}

// Iteration logs one macro-iteration's shape at Debug level.
func (t *Tracer) Iteration(iter int, policy string, pivots int) {
	t.log.Debug().Int("iter", iter).Str("policy", policy).Int("pivots", pivots).Msg("macro-iteration")
}

// Terminal logs the run's terminal condition at Info level.
func (t *Tracer) Terminal(reason string, objValue float64, iterations int) {
	t.log.Info().Str("reason", reason).Float64("obj_value", objValue).Int("iterations", iterations).Msg("terminated")
}

// Error logs an escaping error at Error level.
func (t *Tracer) Error(err error, context string) {
	t.log.Error().Err(err).Str("context", context).Msg("solver error")
}
