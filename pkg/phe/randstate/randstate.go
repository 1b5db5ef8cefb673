package randstate

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/hsiuhsiu/phe-go/pkg/phe"
)

const (
	// SeedSize is the number of bytes New draws from the entropy source.
	SeedSize = 32

	// MinSeedSize is the shortest seed NewFromSeed accepts (64 bits).
	MinSeedSize = 8

	// MaxUnitAttempts caps the rejection loop in Unit.
	MaxUnitAttempts = 255

	maxBelowAttempts = 128
)

var domain = []byte("phe-go/randstate/v1")

var one = big.NewInt(1)

// State is a seeded SHAKE256 stream.
type State struct {
	xof    sha3.ShakeHash
	closed bool
}

// New seeds a State with SeedSize bytes from crypto/rand.
func New() (*State, error) {
	return NewFromReader(rand.Reader)
}

// NewFromReader seeds a State with SeedSize bytes read from r.
func NewFromReader(r io.Reader) (*State, error) {
	if r == nil {
		return nil, fmt.Errorf("entropy source: %w", phe.ErrNilInput)
	}
	var seed [SeedSize]byte
	defer phe.ZeroizeBytes(seed[:])
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return NewFromSeed(seed[:])
}

// NewFromSeed returns a deterministic State derived from seed. The caller keeps
// ownership of seed and should wipe it when done.
func NewFromSeed(seed []byte) (*State, error) {
	if len(seed) < MinSeedSize {
		return nil, fmt.Errorf("%w: seed must be at least %d bytes, got %d", phe.ErrInvalidInput, MinSeedSize, len(seed))
	}
	xof := sha3.NewShake256()
	_, _ = xof.Write(domain)
	_, _ = xof.Write(seed)
	return &State{xof: xof}, nil
}

// Read fills p from the stream. It never returns a short read on an open State.
func (s *State) Read(p []byte) (int, error) {
	if s == nil || s.closed {
		return 0, phe.ErrClosed
	}
	return s.xof.Read(p)
}

// Bits returns a uniform integer in [0, 2^n).
func (s *State) Bits(n int) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", phe.ErrInvalidBitLength, n)
	}
	if n == 0 {
		return new(big.Int), nil
	}
	buf := make([]byte, (n+7)/8)
	defer phe.ZeroizeBytes(buf)
	if _, err := s.Read(buf); err != nil {
		return nil, err
	}
	// Clear the excess high bits of the leading byte.
	if extra := uint(len(buf)*8 - n); extra > 0 {
		buf[0] &= byte(0xff >> extra)
	}
	return new(big.Int).SetBytes(buf), nil
}

// Below returns a uniform integer in [0, bound). bound must be positive.
//
// It samples BitLen(bound-1) bits and rejects values that are too large, so
// each draw is accepted with probability above one half.
func (s *State) Below(bound *big.Int) (*big.Int, error) {
	if bound == nil {
		return nil, fmt.Errorf("bound: %w", phe.ErrNilInput)
	}
	if bound.Sign() <= 0 {
		return nil, fmt.Errorf("%w: bound must be positive, got %s", phe.ErrInvalidInput, bound)
	}
	limit := new(big.Int).Sub(bound, one)
	bits := limit.BitLen()
	for i := 0; i < maxBelowAttempts; i++ {
		v, err := s.Bits(bits)
		if err != nil {
			return nil, err
		}
		if v.Cmp(limit) <= 0 {
			return v, nil
		}
	}
	return nil, fmt.Errorf("sample below %d-bit bound: %w", bound.BitLen(), phe.ErrGenerationFailed)
}

// Unit returns a uniform element of [0, n) coprime to n. It gives up with
// phe.ErrGenerationFailed after MaxUnitAttempts rejections.
func (s *State) Unit(n *big.Int) (*big.Int, error) {
	var gcd big.Int
	for i := 0; i < MaxUnitAttempts; i++ {
		v, err := s.Below(n)
		if err != nil {
			return nil, err
		}
		if gcd.GCD(nil, nil, v, n).Cmp(one) == 0 {
			return v, nil
		}
	}
	return nil, fmt.Errorf("sample unit mod %d-bit modulus: %w", n.BitLen(), phe.ErrGenerationFailed)
}

// Close wipes the stream state. Subsequent draws return phe.ErrClosed. Close is
// idempotent.
func (s *State) Close() {
	if s == nil || s.closed {
		return
	}
	s.xof.Reset()
	s.xof = nil
	s.closed = true
}
