package poseidon

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func randVector(t *testing.T, n int) []fr.Element {
	t.Helper()
	v := make([]fr.Element, n)
	for i := range v {
		_, err := v[i].SetRandom()
		require.NoError(t, err)
	}
	return v
}

func TestNewParamsValidation(t *testing.T) {
	const (
		width   = 3
		roundsF = 8
		roundsP = 10
	)
	mds := randMatrix(t, width)
	rc := randVector(t, (roundsF+roundsP)*width)

	t.Run("valid", func(t *testing.T) {
		p, err := NewParams[fr.Element, *fr.Element](width, 5, roundsF, roundsP, mds, rc)
		require.NoError(t, err)
		require.Equal(t, width, p.Width())
		require.Len(t, p.optRoundConstants, width+roundsP-1)
		require.Len(t, p.v, roundsP*(width-1))
		require.Len(t, p.wHat, roundsP*(width-1))
		require.Len(t, p.mI, width*width)
	})

	t.Run("mds wrong dimension", func(t *testing.T) {
		_, err := NewParams[fr.Element, *fr.Element](width, 5, roundsF, roundsP, mds[:width*width-1], rc)
		require.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("schedule wrong row count", func(t *testing.T) {
		_, err := NewParams[fr.Element, *fr.Element](width, 5, roundsF, roundsP, mds, rc[:len(rc)-width])
		require.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("odd full rounds", func(t *testing.T) {
		oddRC := randVector(t, (roundsF+1+roundsP)*width)
		_, err := NewParams[fr.Element, *fr.Element](width, 5, roundsF+1, roundsP, mds, oddRC)
		require.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("no partial rounds", func(t *testing.T) {
		_, err := NewParams[fr.Element, *fr.Element](width, 5, roundsF, 0, mds, rc[:roundsF*width])
		require.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("width too small", func(t *testing.T) {
		_, err := NewParams[fr.Element, *fr.Element](1, 5, roundsF, roundsP, mds[:1], rc[:roundsF+roundsP])
		require.ErrorIs(t, err, ErrInvalidParameters)
	})
}

func TestNewParamsCopiesInputs(t *testing.T) {
	const (
		width   = 3
		roundsF = 8
		roundsP = 10
	)
	mds := randMatrix(t, width)
	rc := randVector(t, (roundsF+roundsP)*width)

	p, err := NewParams[fr.Element, *fr.Element](width, 5, roundsF, roundsP, mds, rc)
	require.NoError(t, err)

	in := randVector(t, width)
	before, err := New(p).Permutation(in)
	require.NoError(t, err)

	// Mutating the caller's slices must not affect the parameter set.
	mds[0].SetZero()
	rc[0].SetZero()
	after, err := New(p).Permutation(in)
	require.NoError(t, err)
	for i := range before {
		require.True(t, before[i].Equal(&after[i]), "coordinate %d changed", i)
	}
}
