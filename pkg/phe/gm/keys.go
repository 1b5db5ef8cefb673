package gm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/hsiuhsiu/phe-go/pkg/phe"
	"github.com/hsiuhsiu/phe-go/pkg/phe/prime"
	"github.com/hsiuhsiu/phe-go/pkg/phe/randstate"
)

var one = big.NewInt(1)

// PublicKey is a GM public key: the modulus n and the non-residue witness x.
type PublicKey struct {
	n *big.Int
	x *big.Int
}

// N returns a copy of the modulus.
func (pk *PublicKey) N() *big.Int {
	return new(big.Int).Set(pk.n)
}

// X returns a copy of the non-residue witness.
func (pk *PublicKey) X() *big.Int {
	return new(big.Int).Set(pk.x)
}

func (pk *PublicKey) clone() *PublicKey {
	return &PublicKey{n: pk.N(), x: pk.X()}
}

// PrivateKey holds the factors of n alongside the public key.
type PrivateKey struct {
	PublicKey
	p *big.Int
	q *big.Int
}

// P returns a copy of the first prime factor.
func (sk *PrivateKey) P() *big.Int {
	return new(big.Int).Set(sk.p)
}

// Q returns a copy of the second prime factor.
func (sk *PrivateKey) Q() *big.Int {
	return new(big.Int).Set(sk.q)
}

// Public returns a copy of the public half of the key.
func (sk *PrivateKey) Public() *PublicKey {
	return sk.PublicKey.clone()
}

func (sk *PrivateKey) clone() *PrivateKey {
	return &PrivateKey{PublicKey: *sk.PublicKey.clone(), p: sk.P(), q: sk.Q()}
}

func (sk *PrivateKey) zeroize() {
	phe.ZeroizeInt(sk.p)
	phe.ZeroizeInt(sk.q)
}

// GenerateKey creates a key whose modulus has at least keySize bits. p is a
// strong prime of keySize/2+1 bits and q one of keySize/2 bits.
func GenerateKey(ctx context.Context, rs *randstate.State, keySize int, opts prime.Options) (*PrivateKey, error) {
	if err := phe.ValidateKeySize(keySize); err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, fmt.Errorf("random state: %w", phe.ErrNilInput)
	}
	opts = opts.WithDefaults()

	sp, err := prime.Strong(ctx, rs, keySize/2+1, opts)
	if err != nil {
		return nil, fmt.Errorf("generate p: %w", err)
	}
	p := sp.Prime()

	var q *big.Int
	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		sq, err := prime.Strong(ctx, rs, keySize/2, opts)
		if err != nil {
			return nil, fmt.Errorf("generate q: %w", err)
		}
		if candidate := sq.Prime(); candidate.Cmp(p) != 0 {
			q = candidate
			break
		}
	}
	if q == nil {
		return nil, fmt.Errorf("generate q distinct from p: %w", phe.ErrGenerationFailed)
	}

	sk, err := newPrivateKey(rs, p, q, opts.MaxAttempts)
	if err != nil {
		return nil, err
	}
	if sk.n.BitLen() < keySize {
		sk.zeroize()
		return nil, fmt.Errorf("%w: modulus has %d bits, want at least %d", phe.ErrInvariantViolation, sk.n.BitLen(), keySize)
	}
	return sk, nil
}

// FromPrimes builds a private key from two distinct odd primes, drawing the
// non-residue witness from rs. The primes are not tested for strength.
func FromPrimes(rs *randstate.State, p, q *big.Int, opts prime.Options) (*PrivateKey, error) {
	if rs == nil || p == nil || q == nil {
		return nil, fmt.Errorf("from primes: %w", phe.ErrNilInput)
	}
	opts = opts.WithDefaults()
	for _, f := range []*big.Int{p, q} {
		if f.Bit(0) == 0 || f.Cmp(one) <= 0 || !f.ProbablyPrime(opts.Rounds) {
			return nil, fmt.Errorf("%w: factor of %d bits is not an odd prime", phe.ErrInvalidInput, f.BitLen())
		}
	}
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("%w: factors must be distinct", phe.ErrInvalidInput)
	}
	return newPrivateKey(rs, new(big.Int).Set(p), new(big.Int).Set(q), opts.MaxAttempts)
}

// newPrivateKey derives n and searches x uniformly in [0, n) until it is a
// non-residue modulo both factors. A quarter of all draws qualify.
func newPrivateKey(rs *randstate.State, p, q *big.Int, maxAttempts int) (*PrivateKey, error) {
	n := new(big.Int).Mul(p, q)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		x, err := rs.Below(n)
		if err != nil {
			return nil, err
		}
		if big.Jacobi(x, p) == -1 && big.Jacobi(x, q) == -1 {
			return &PrivateKey{PublicKey: PublicKey{n: n, x: x}, p: p, q: q}, nil
		}
	}
	return nil, fmt.Errorf("search non-residue witness: %w", phe.ErrGenerationFailed)
}

// Encrypt encrypts one bit under pk with a fresh randomizer drawn from rs.
func (pk *PublicKey) Encrypt(rs *randstate.State, bit bool) (*big.Int, error) {
	if pk == nil || pk.n == nil {
		return nil, fmt.Errorf("public key: %w", phe.ErrNilInput)
	}
	if rs == nil {
		return nil, fmt.Errorf("random state: %w", phe.ErrNilInput)
	}
	y, err := rs.Unit(pk.n)
	if err != nil {
		return nil, fmt.Errorf("sample randomizer: %w", err)
	}
	defer phe.ZeroizeInt(y)

	c := new(big.Int).Mul(y, y)
	c.Mod(c, pk.n)
	if bit {
		c.Mul(c, pk.x)
		c.Mod(c, pk.n)
	}
	return c, nil
}

// Xor returns c1·c2 mod n, which decrypts to the XOR of the two bits.
func (pk *PublicKey) Xor(c1, c2 *big.Int) (*big.Int, error) {
	if pk == nil || pk.n == nil {
		return nil, fmt.Errorf("public key: %w", phe.ErrNilInput)
	}
	if err := pk.checkRange(c1); err != nil {
		return nil, err
	}
	if err := pk.checkRange(c2); err != nil {
		return nil, err
	}
	c := new(big.Int).Mul(c1, c2)
	return c.Mod(c, pk.n), nil
}

// Verify performs the checks available without the factors: c must be a unit
// in [1, n) with Jacobi symbol +1. Every honest ciphertext passes, and a value
// with Jacobi symbol -1 cannot be one.
func (pk *PublicKey) Verify(c *big.Int) error {
	if pk == nil || pk.n == nil {
		return fmt.Errorf("public key: %w", phe.ErrNilInput)
	}
	if err := pk.checkRange(c); err != nil {
		return err
	}
	if new(big.Int).GCD(nil, nil, c, pk.n).Cmp(one) != 0 {
		return fmt.Errorf("%w: not a unit modulo n", phe.ErrMalformedCiphertext)
	}
	if big.Jacobi(c, pk.n) != 1 {
		return fmt.Errorf("%w: Jacobi symbol is not 1", phe.ErrMalformedCiphertext)
	}
	return nil
}

func (pk *PublicKey) checkRange(c *big.Int) error {
	if c == nil {
		return fmt.Errorf("ciphertext: %w", phe.ErrNilInput)
	}
	if c.Sign() <= 0 || c.Cmp(pk.n) >= 0 {
		return fmt.Errorf("%w: outside [1, n)", phe.ErrMalformedCiphertext)
	}
	return nil
}

// Decrypt recovers the bit: a ciphertext decrypts to false exactly when it is a
// quadratic residue modulo both p and q.
func (sk *PrivateKey) Decrypt(c *big.Int) (bool, error) {
	if sk == nil || sk.p == nil || sk.q == nil {
		return false, fmt.Errorf("private key: %w", phe.ErrNilInput)
	}
	if err := sk.checkRange(c); err != nil {
		return false, err
	}
	residue := big.Jacobi(c, sk.p) == 1 && big.Jacobi(c, sk.q) == 1
	return !residue, nil
}
