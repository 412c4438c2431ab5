package flowstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadDimensions(t *testing.T) {
	_, err := New(0, 3)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = New(3, -1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestSetGetRoundTrip(t *testing.T) {
	s, err := New(2, 3)
	require.NoError(t, err)

	require.NoError(t, s.Set(0, 1, 4.5))
	assert.True(t, s.Contains(0, 1))

	q, err := s.Get(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.5, q)

	assert.False(t, s.Contains(1, 2))
	q, err = s.Get(1, 2)
	require.NoError(t, err)
	assert.Zero(t, q)
}

func TestRemoveClearsPresence(t *testing.T) {
	s, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, s.Set(0, 0, 1))
	require.NoError(t, s.Remove(0, 0))
	assert.False(t, s.Contains(0, 0))
	q, _ := s.Get(0, 0)
	assert.Zero(t, q)
}

func TestIndexOutOfBounds(t *testing.T) {
	s, err := New(2, 2)
	require.NoError(t, err)

	_, err = s.Get(2, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	err = s.Set(0, -1, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestBasicCountAndTotal(t *testing.T) {
	s, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, s.Set(0, 0, 3))
	require.NoError(t, s.Set(1, 1, 2))
	assert.Equal(t, 2, s.BasicCount())
	assert.Equal(t, 5.0, s.Total())
}

func TestEpsQMatchesSpecFormula(t *testing.T) {
	want := (2 - 20*Eps) * Eps
	assert.Equal(t, want, EpsQ)
	assert.Greater(t, EpsQ, Eps)
}
