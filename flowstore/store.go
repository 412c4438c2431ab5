// Package flowstore holds the shipment quantities of a transportation-simplex
// basis: a dense m×n grid where presence in the store is the authoritative
// basic/non-basic predicate, independent of the numeric flow value.
package flowstore

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates that requested store dimensions are non-positive.
var ErrInvalidDimensions = errors.New("flowstore: dimensions must be > 0")

// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
var ErrIndexOutOfBounds = errors.New("flowstore: index out of bounds")

// Eps is the numeric tolerance used to tell a floating flow apart from zero.
const Eps = 1e-9

// EpsQ is the sentinel flow value assigned to a basic arc that is kept in the
// basis at zero flow to preserve the m+n-1 spanning-tree cardinality after a
// degenerate pivot, per spec.md §6's epsQ = (2 - 20*Eps) * Eps. Callers
// checking basic-ness use Contains, not a comparison against EpsQ; the
// constant exists only so the stored quantity is distinguishable from a
// true zero with exact equality.
const EpsQ = (2 - 20*Eps) * Eps

// storeErrorf wraps an underlying error with Store method context.
func storeErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Store.%s(%d,%d): %w", method, row, col, err)
}

// Store is a row-major m×n quantity grid paired with a presence bitmap. A
// cell is basic iff present is true for it, regardless of its numeric value
// (a basic cell may legitimately hold 0 or EpsQ flow under degeneracy).
type Store struct {
	m, n    int
	data    []float64
	present []bool
}

// New allocates an m×n store with no basic cells.
func New(m, n int) (*Store, error) {
	if m <= 0 || n <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Store{
		m:       m,
		n:       n,
		data:    make([]float64, m*n),
		present: make([]bool, m*n),
	}, nil
}

// Rows returns the number of source rows.
func (s *Store) Rows() int { return s.m }

// Cols returns the number of destination columns.
func (s *Store) Cols() int { return s.n }

// Index returns the flat linear index for (i, j), or ErrIndexOutOfBounds.
func (s *Store) Index(i, j int) (int, error) {
	if i < 0 || i >= s.m || j < 0 || j >= s.n {
		return 0, storeErrorf("Index", i, j, ErrIndexOutOfBounds)
	}
	return i*s.n + j, nil
}

// Contains reports whether (i, j) is basic.
func (s *Store) Contains(i, j int) bool {
	idx, err := s.Index(i, j)
	if err != nil {
		return false
	}
	return s.present[idx]
}

// Get returns the flow on (i, j); non-basic cells read back as zero.
func (s *Store) Get(i, j int) (float64, error) {
	idx, err := s.Index(i, j)
	if err != nil {
		return 0, err
	}
	return s.data[idx], nil
}

// Set marks (i, j) basic and stores q as its flow.
func (s *Store) Set(i, j int, q float64) error {
	idx, err := s.Index(i, j)
	if err != nil {
		return err
	}
	s.data[idx] = q
	s.present[idx] = true
	return nil
}

// Remove marks (i, j) non-basic and zeroes its stored flow.
func (s *Store) Remove(i, j int) error {
	idx, err := s.Index(i, j)
	if err != nil {
		return err
	}
	s.data[idx] = 0
	s.present[idx] = false
	return nil
}

// BasicCount returns the number of basic cells currently tracked.
func (s *Store) BasicCount() int {
	n := 0
	for _, p := range s.present {
		if p {
			n++
		}
	}
	return n
}

// Total sums the flow over every basic cell, used to cross-check supply and
// demand conservation after a sequence of pivots.
func (s *Store) Total() float64 {
	var total float64
	for idx, p := range s.present {
		if p {
			total += s.data[idx]
		}
	}
	return total
}
