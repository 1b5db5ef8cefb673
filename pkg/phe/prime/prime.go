package prime

import (
	"context"
	"fmt"
	"math/big"

	"github.com/hsiuhsiu/phe-go/pkg/phe"
	"github.com/hsiuhsiu/phe-go/pkg/phe/randstate"
)

// ctxCheckInterval is how many candidates an inner search tests between
// context checks.
const ctxCheckInterval = 64

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Options tunes prime generation. Zero fields fall back to DefaultOptions.
type Options struct {
	// Rounds is the number of Miller-Rabin rounds passed to ProbablyPrime.
	Rounds int
	// MaxAttempts caps how often Random and Strong resample from scratch.
	MaxAttempts int
}

// DefaultOptions returns 40 primality rounds and 1000 attempts.
func DefaultOptions() Options {
	return Options{
		Rounds:      phe.DefaultPrimalityRounds,
		MaxAttempts: phe.DefaultMaxAttempts,
	}
}

// OptionsFrom extracts the prime generation knobs from a Config.
func OptionsFrom(cfg phe.Config) Options {
	return Options{
		Rounds:      cfg.PrimalityRounds,
		MaxAttempts: cfg.MaxAttempts,
	}
}

// WithDefaults replaces zero or negative fields with DefaultOptions values.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()
	if o.Rounds <= 0 {
		o.Rounds = def.Rounds
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	return o
}

// searchLimit bounds a linear prime search over candidates of the given size.
// Prime gaps around 2^bits average bits*ln2, so this is never reached in
// practice.
func searchLimit(bits int) int {
	return 64*bits + 1024
}

// UniformBits returns an integer with exactly bits bits: the top bit is set and
// the remaining bits are uniform.
func UniformBits(rs *randstate.State, bits int) (*big.Int, error) {
	if rs == nil {
		return nil, fmt.Errorf("random state: %w", phe.ErrNilInput)
	}
	if bits < 1 {
		return nil, fmt.Errorf("%w: uniform sample needs at least 1 bit, got %d", phe.ErrInvalidBitLength, bits)
	}
	v, err := rs.Bits(bits - 1)
	if err != nil {
		return nil, err
	}
	return v.SetBit(v, bits-1, 1), nil
}

// NextPrime returns the smallest probable prime greater than or equal to v.
func NextPrime(ctx context.Context, v *big.Int, rounds int) (*big.Int, error) {
	if v == nil {
		return nil, fmt.Errorf("next prime: %w", phe.ErrNilInput)
	}
	if v.Cmp(two) <= 0 {
		return big.NewInt(2), nil
	}
	if rounds <= 0 {
		rounds = phe.DefaultPrimalityRounds
	}

	p := new(big.Int).Set(v)
	if p.Bit(0) == 0 {
		p.Add(p, one)
	}
	limit := searchLimit(p.BitLen())
	for i := 0; i < limit; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("next prime: %w", err)
			}
		}
		if p.ProbablyPrime(rounds) {
			return p, nil
		}
		p.Add(p, two)
	}
	return nil, fmt.Errorf("next prime after %d-bit value: %w", v.BitLen(), phe.ErrGenerationFailed)
}

// Random returns a probable prime of exactly bits bits. It samples a uniform
// bits-bit value, advances to the next prime and resamples whenever that prime
// carried into bits+1 bits.
func Random(ctx context.Context, rs *randstate.State, bits int, opts Options) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: prime needs at least 2 bits, got %d", phe.ErrInvalidBitLength, bits)
	}
	opts = opts.WithDefaults()

	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("random prime: %w", err)
		}
		a, err := UniformBits(rs, bits)
		if err != nil {
			return nil, err
		}
		p, err := NextPrime(ctx, a, opts.Rounds)
		if err != nil {
			return nil, err
		}
		if p.BitLen() == bits {
			return p, nil
		}
	}
	return nil, fmt.Errorf("random %d-bit prime after %d attempts: %w", bits, opts.MaxAttempts, phe.ErrGenerationFailed)
}
