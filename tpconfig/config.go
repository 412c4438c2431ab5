// Package tpconfig holds the transportation-simplex run configuration: the
// algorithm selection and its mode digits, decoded into concrete policy
// flags, plus the numeric tolerances derived from them.
package tpconfig

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/rbargetto/tplex/flowstore"
)

// Algorithm selects between the transportation simplex and an (unsupported
// by this module, per spec.md's Non-goals) LP relaxation tag, kept only so
// a Config round-trips the original's two-valued Algo enum.
type Algorithm int

const (
	AlgorithmTS Algorithm = iota
	AlgorithmLP
)

// InitialBasis selects the initial-basis constructor.
type InitialBasis int

const (
	InitialBasisNorthWestCorner InitialBasis = iota
	InitialBasisMatrixMinimumRule
)

// PricingPolicy selects the reduced-cost pricing policy.
type PricingPolicy int

const (
	PricingDantzig PricingPolicy = iota
	PricingFirstNegative
	PricingWindowed
	PricingShielding
)

// ErrPrecisionTooCoarse indicates the derived relative-improvement
// tolerance epsRT exceeded its 0.1 cap, which the original treats as a
// configuration error rather than silently clamping.
var ErrPrecisionTooCoarse = errors.New("tpconfig: epsRT exceeds 0.1 cap")

// Config is the seven-field configuration record of spec.md §6.
type Config struct {
	Algorithm       Algorithm `validate:"oneof=0 1"`
	AlgMode         uint64    `validate:"-"`
	WindowFactor    float64   `validate:"gte=0,lte=1"`
	WindowFactor2   float64   `validate:"gte=0"`
	TimeLimit       float64   `validate:"gte=0"`
	PartitionFactor float64   `validate:"gte=0,lte=1"`
	MaxIterFactor   float64   `validate:"gte=0"`

	// Flags decoded from AlgMode, per spec.md §6's digit table.
	MultiPivot      bool
	TreeColorOracle bool
	OracleGreed     int
	PricingPolicy   PricingPolicy
	InitialBasis    InitialBasis

	// EpsRT is the relative-improvement tolerance used by the Step-2
	// bidirectional move.
	EpsRT float64
}

var validate = validator.New()

// New decodes AlgMode into the policy flags and validates the resulting
// Config, computing EpsRT from the instance dimensions m (sources) and n
// (destinations) per spec.md §6's epsRT = epsQ * (m+n) * sqrt(n). It returns
// ErrPrecisionTooCoarse if the computed EpsRT exceeds 0.1.
func New(algo Algorithm, algMode uint64, m, n int, windowFactor, windowFactor2, timeLimit, partitionFactor, maxIterFactor float64) (*Config, error) {
	c := &Config{
		Algorithm:       algo,
		AlgMode:         algMode,
		WindowFactor:    windowFactor,
		WindowFactor2:   windowFactor2,
		TimeLimit:       timeLimit,
		PartitionFactor: partitionFactor,
		MaxIterFactor:   maxIterFactor,
	}
	c.decodeAlgMode()
	c.EpsRT = computeEpsRT(m, n)

	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("tpconfig.New: %w", err)
	}
	if c.EpsRT >= 0.1 {
		return nil, fmt.Errorf("tpconfig.New: epsRT=%g: %w", c.EpsRT, ErrPrecisionTooCoarse)
	}
	return c, nil
}

// decodeAlgMode splits AlgMode's decimal digits into the five policy flags:
// d0 = multi-pivot on/off, d1 = tree-colour oracle on/off, d2 = oracle greed
// level (0-2), d3 = pricing policy (0-3), d4 = initial basis (0-1).
func (c *Config) decodeAlgMode() {
	digits := digitsOf(c.AlgMode, 5)
	c.MultiPivot = digits[0] != 0
	c.TreeColorOracle = digits[1] != 0
	c.OracleGreed = int(digits[2])
	if c.OracleGreed > 2 {
		c.OracleGreed = 2
	}
	c.PricingPolicy = PricingPolicy(digits[3])
	if c.PricingPolicy > PricingShielding {
		c.PricingPolicy = PricingDantzig
	}
	c.InitialBasis = InitialBasis(digits[4])
	if c.InitialBasis > InitialBasisMatrixMinimumRule {
		c.InitialBasis = InitialBasisNorthWestCorner
	}
}

// digitsOf returns the least-significant n decimal digits of v, d[0] first.
func digitsOf(v uint64, n int) []uint64 {
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = v % 10
		v /= 10
	}
	return out
}

// computeEpsRT derives the Step-2 relative-improvement tolerance from the
// instance dimensions, per spec.md §6: epsRT = epsQ * (m+n) * sqrt(n).
func computeEpsRT(m, n int) float64 {
	return flowstore.EpsQ * float64(m+n) * math.Sqrt(float64(n))
}
