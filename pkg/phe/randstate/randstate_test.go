package randstate_test

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/phe-go/pkg/phe"
	"github.com/hsiuhsiu/phe-go/pkg/phe/randstate"
)

var testSeed = []byte("0123456789abcdef0123456789abcdef")

func TestSeededStatesAreDeterministic(t *testing.T) {
	a, err := randstate.NewFromSeed(testSeed)
	require.NoError(t, err)
	b, err := randstate.NewFromSeed(testSeed)
	require.NoError(t, err)

	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	_, err = a.Read(bufA)
	require.NoError(t, err)
	_, err = b.Read(bufB)
	require.NoError(t, err)
	assert.Equal(t, bufA, bufB)

	// Draws advance the state.
	_, err = a.Read(bufB)
	require.NoError(t, err)
	assert.NotEqual(t, bufA, bufB)
}

func TestDifferentSeedsDiverge(t *testing.T) {
	other := append([]byte(nil), testSeed...)
	other[0] ^= 1

	a, err := randstate.NewFromSeed(testSeed)
	require.NoError(t, err)
	b, err := randstate.NewFromSeed(other)
	require.NoError(t, err)

	x, err := a.Bits(256)
	require.NoError(t, err)
	y, err := b.Bits(256)
	require.NoError(t, err)
	assert.NotEqual(t, 0, x.Cmp(y))
}

func TestNewFromSeedRejectsShortSeed(t *testing.T) {
	_, err := randstate.NewFromSeed([]byte{1, 2, 3})
	assert.True(t, errors.Is(err, phe.ErrInvalidInput), "got %v", err)
}

func TestNewFromReader(t *testing.T) {
	_, err := randstate.NewFromReader(nil)
	assert.True(t, errors.Is(err, phe.ErrNilInput))

	_, err = randstate.NewFromReader(bytes.NewReader([]byte{1, 2}))
	assert.Error(t, err, "short entropy source must fail")

	s, err := randstate.NewFromReader(bytes.NewReader(bytes.Repeat([]byte{7}, randstate.SeedSize)))
	require.NoError(t, err)
	_, err = s.Bits(8)
	assert.NoError(t, err)
}

func TestNewUsesEntropy(t *testing.T) {
	a, err := randstate.New()
	require.NoError(t, err)
	b, err := randstate.New()
	require.NoError(t, err)

	x, err := a.Bits(128)
	require.NoError(t, err)
	y, err := b.Bits(128)
	require.NoError(t, err)
	assert.NotEqual(t, 0, x.Cmp(y))
}

func TestBitsRange(t *testing.T) {
	s, err := randstate.NewFromSeed(testSeed)
	require.NoError(t, err)

	for _, n := range []int{0, 1, 7, 8, 9, 63, 64, 65, 521} {
		for i := 0; i < 50; i++ {
			v, err := s.Bits(n)
			require.NoError(t, err)
			assert.LessOrEqual(t, v.BitLen(), n)
			assert.GreaterOrEqual(t, v.Sign(), 0)
		}
	}

	_, err = s.Bits(-1)
	assert.True(t, errors.Is(err, phe.ErrInvalidBitLength))
}

func TestBelow(t *testing.T) {
	s, err := randstate.NewFromSeed(testSeed)
	require.NoError(t, err)

	bound := big.NewInt(10)
	seen := make(map[int64]bool)
	for i := 0; i < 500; i++ {
		v, err := s.Below(bound)
		require.NoError(t, err)
		require.True(t, v.Sign() >= 0 && v.Cmp(bound) < 0, "value %s out of range", v)
		seen[v.Int64()] = true
	}
	assert.Len(t, seen, 10, "every residue should appear in 500 draws")

	v, err := s.Below(big.NewInt(1))
	require.NoError(t, err)
	assert.Zero(t, v.Sign())

	_, err = s.Below(big.NewInt(0))
	assert.True(t, errors.Is(err, phe.ErrInvalidInput), "got %v", err)
	_, err = s.Below(big.NewInt(-3))
	assert.True(t, errors.Is(err, phe.ErrInvalidInput), "got %v", err)
	_, err = s.Below(nil)
	assert.True(t, errors.Is(err, phe.ErrNilInput))
}

func TestUnit(t *testing.T) {
	s, err := randstate.NewFromSeed(testSeed)
	require.NoError(t, err)

	n := big.NewInt(3 * 5 * 7 * 11)
	var gcd big.Int
	for i := 0; i < 200; i++ {
		u, err := s.Unit(n)
		require.NoError(t, err)
		assert.Equal(t, int64(1), gcd.GCD(nil, nil, u, n).Int64())
	}

	// Nothing in [0, 1) is coprime to 1 except 0, and gcd(0, 1) = 1.
	u, err := s.Unit(big.NewInt(1))
	require.NoError(t, err)
	assert.Zero(t, u.Sign())
}

func TestUnitRejectsNonPositiveModulus(t *testing.T) {
	s, err := randstate.NewFromSeed(testSeed)
	require.NoError(t, err)

	_, err = s.Unit(big.NewInt(0))
	assert.Error(t, err)
	_, err = s.Unit(big.NewInt(-15))
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	s, err := randstate.NewFromSeed(testSeed)
	require.NoError(t, err)

	s.Close()
	s.Close()

	_, err = s.Bits(8)
	assert.True(t, errors.Is(err, phe.ErrClosed))
	_, err = s.Read(make([]byte, 4))
	assert.True(t, errors.Is(err, phe.ErrClosed))
}
