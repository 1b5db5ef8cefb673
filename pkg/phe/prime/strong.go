package prime

import (
	"context"
	"fmt"
	"math/big"

	"github.com/hsiuhsiu/phe-go/pkg/phe"
	"github.com/hsiuhsiu/phe-go/pkg/phe/randstate"
)

// StrongPrime is a prime p together with a large prime factor of p-1.
type StrongPrime struct {
	prime  *big.Int
	factor *big.Int
}

// Prime returns a copy of p.
func (sp *StrongPrime) Prime() *big.Int {
	return new(big.Int).Set(sp.prime)
}

// Factor returns a copy of the known prime factor of p-1.
func (sp *StrongPrime) Factor() *big.Int {
	return new(big.Int).Set(sp.factor)
}

// Validate re-checks that p and the factor are probable primes, that the factor
// divides p-1 and that it has at least half the bits of p.
func (sp *StrongPrime) Validate(rounds int) bool {
	if sp == nil || sp.prime == nil || sp.factor == nil {
		return false
	}
	if !sp.prime.ProbablyPrime(rounds) || !sp.factor.ProbablyPrime(rounds) {
		return false
	}
	if 2*sp.factor.BitLen() < sp.prime.BitLen()-1 {
		return false
	}
	pm1 := new(big.Int).Sub(sp.prime, one)
	return new(big.Int).Mod(pm1, sp.factor).Sign() == 0
}

// Strong returns a prime p of exactly bits bits such that p-1 is divisible by
// a random prime pp of bits/2 bits.
//
// An even multiplier a is drawn so that pp*a+1 already has bits bits, then
// pp*a+1, pp*(a+2)+1, pp*(a+4)+1, ... are tested until one is prime. Every
// candidate keeps pp | p-1 and stays odd. If the search runs past bits bits
// the whole attempt is discarded and redrawn.
func Strong(ctx context.Context, rs *randstate.State, bits int, opts Options) (*StrongPrime, error) {
	if bits < 4 {
		return nil, fmt.Errorf("%w: strong prime needs at least 4 bits, got %d", phe.ErrInvalidBitLength, bits)
	}
	opts = opts.WithDefaults()

	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("strong prime: %w", err)
		}
		sp, err := strongAttempt(ctx, rs, bits, opts)
		if err != nil {
			return nil, err
		}
		if sp != nil {
			return sp, nil
		}
	}
	return nil, fmt.Errorf("strong %d-bit prime after %d attempts: %w", bits, opts.MaxAttempts, phe.ErrGenerationFailed)
}

// strongAttempt runs one draw of Strong. It returns nil, nil when the attempt
// produced no prime of the right size.
func strongAttempt(ctx context.Context, rs *randstate.State, bits int, opts Options) (*StrongPrime, error) {
	pp, err := Random(ctx, rs, bits/2, opts)
	if err != nil {
		return nil, err
	}
	a, err := multiplier(rs, pp, bits)
	if err != nil {
		return nil, err
	}

	p := new(big.Int).Mul(pp, a)
	p.Add(p, one)
	step := new(big.Int).Lsh(pp, 1)
	limit := searchLimit(bits)
	for i := 0; i < limit; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("strong prime: %w", err)
			}
		}
		// Candidates only grow; once one is too long no later prime can fit.
		if p.BitLen() > bits {
			return nil, nil
		}
		if p.ProbablyPrime(opts.Rounds) {
			return &StrongPrime{prime: p, factor: pp}, nil
		}
		p.Add(p, step)
	}
	return nil, nil
}

// multiplier draws an even a uniformly from the multipliers that put pp*a in
// [2^(bits-1), 2^bits). Rounding an odd draw up may overshoot by one; the
// caller's length check discards that attempt.
func multiplier(rs *randstate.State, pp *big.Int, bits int) (*big.Int, error) {
	lo := new(big.Int).Lsh(one, uint(bits-1))
	lo.Add(lo, pp).Sub(lo, one).Quo(lo, pp)
	hi := new(big.Int).Lsh(one, uint(bits))
	hi.Sub(hi, one).Quo(hi, pp)

	span := new(big.Int).Sub(hi, lo)
	span.Add(span, one)
	a, err := rs.Below(span)
	if err != nil {
		return nil, err
	}
	a.Add(a, lo)
	if a.Bit(0) == 1 {
		a.Add(a, one)
	}
	return a, nil
}
