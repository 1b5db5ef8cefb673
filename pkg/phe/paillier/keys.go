package paillier

import (
	"context"
	"fmt"
	"math/big"

	"github.com/hsiuhsiu/phe-go/pkg/phe"
	"github.com/hsiuhsiu/phe-go/pkg/phe/prime"
	"github.com/hsiuhsiu/phe-go/pkg/phe/randstate"
)

var one = big.NewInt(1)

// PublicKey is a Paillier public key.
type PublicKey struct {
	n  *big.Int
	n2 *big.Int
	g  *big.Int
}

func newPublicKey(n *big.Int) *PublicKey {
	return &PublicKey{
		n:  n,
		n2: new(big.Int).Mul(n, n),
		g:  new(big.Int).Add(n, one),
	}
}

// N returns a copy of the modulus.
func (pk *PublicKey) N() *big.Int {
	return new(big.Int).Set(pk.n)
}

// NSquared returns a copy of n².
func (pk *PublicKey) NSquared() *big.Int {
	return new(big.Int).Set(pk.n2)
}

// G returns a copy of the generator n+1.
func (pk *PublicKey) G() *big.Int {
	return new(big.Int).Set(pk.g)
}

func (pk *PublicKey) clone() *PublicKey {
	return &PublicKey{n: pk.N(), n2: pk.NSquared(), g: pk.G()}
}

// PrivateKey holds lambda = (p-1)(q-1) and mu = lambda⁻¹ mod n.
type PrivateKey struct {
	PublicKey
	p      *big.Int
	q      *big.Int
	lambda *big.Int
	mu     *big.Int
}

// Lambda returns a copy of (p-1)(q-1).
func (sk *PrivateKey) Lambda() *big.Int {
	return new(big.Int).Set(sk.lambda)
}

// Mu returns a copy of lambda⁻¹ mod n.
func (sk *PrivateKey) Mu() *big.Int {
	return new(big.Int).Set(sk.mu)
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
	return &PrivateKey{
		PublicKey: *sk.PublicKey.clone(),
		p:         sk.P(),
		q:         sk.Q(),
		lambda:    sk.Lambda(),
		mu:        sk.Mu(),
	}
}

func (sk *PrivateKey) zeroize() {
	phe.ZeroizeInt(sk.p)
	phe.ZeroizeInt(sk.q)
	phe.ZeroizeInt(sk.lambda)
	phe.ZeroizeInt(sk.mu)
}

// GenerateKey creates a key whose modulus has at least keySize bits from two
// distinct strong primes of keySize/2 bits each. q is redrawn while it equals p
// or while the product falls one bit short.
func GenerateKey(ctx context.Context, rs *randstate.State, keySize int, opts prime.Options) (*PrivateKey, error) {
	if err := phe.ValidateKeySize(keySize); err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, fmt.Errorf("random state: %w", phe.ErrNilInput)
	}
	opts = opts.WithDefaults()

	sp, err := prime.Strong(ctx, rs, keySize/2, opts)
	if err != nil {
		return nil, fmt.Errorf("generate p: %w", err)
	}
	p := sp.Prime()

	n := new(big.Int)
	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		sq, err := prime.Strong(ctx, rs, keySize/2, opts)
		if err != nil {
			return nil, fmt.Errorf("generate q: %w", err)
		}
		q := sq.Prime()
		if q.Cmp(p) == 0 {
			continue
		}
		if n.Mul(p, q).BitLen() < keySize {
			continue
		}
		return newPrivateKey(p, q)
	}
	return nil, fmt.Errorf("generate q for %d-bit modulus: %w", keySize, phe.ErrGenerationFailed)
}

// FromPrimes builds a private key from two distinct odd primes. The primes are
// not tested for strength.
func FromPrimes(p, q *big.Int) (*PrivateKey, error) {
	if p == nil || q == nil {
		return nil, fmt.Errorf("from primes: %w", phe.ErrNilInput)
	}
	for _, f := range []*big.Int{p, q} {
		if f.Bit(0) == 0 || f.Cmp(one) <= 0 || !f.ProbablyPrime(phe.DefaultPrimalityRounds) {
			return nil, fmt.Errorf("%w: factor of %d bits is not an odd prime", phe.ErrInvalidInput, f.BitLen())
		}
	}
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("%w: factors must be distinct", phe.ErrInvalidInput)
	}
	return newPrivateKey(new(big.Int).Set(p), new(big.Int).Set(q))
}

func newPrivateKey(p, q *big.Int) (*PrivateKey, error) {
	n := new(big.Int).Mul(p, q)
	pm1 := new(big.Int).Sub(p, one)
	qm1 := new(big.Int).Sub(q, one)
	lambda := new(big.Int).Mul(pm1, qm1)
	mu := new(big.Int).ModInverse(lambda, n)
	if mu == nil {
		phe.ZeroizeInt(lambda)
		return nil, fmt.Errorf("%w: lambda is not invertible modulo n", phe.ErrInvariantViolation)
	}
	return &PrivateKey{
		PublicKey: *newPublicKey(n),
		p:         p,
		q:         q,
		lambda:    lambda,
		mu:        mu,
	}, nil
}

// Encrypt encrypts m modulo n with a fresh randomizer drawn from rs.
func (pk *PublicKey) Encrypt(rs *randstate.State, m *big.Int) (*big.Int, error) {
	if err := pk.check(); err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, fmt.Errorf("random state: %w", phe.ErrNilInput)
	}
	if m == nil {
		return nil, fmt.Errorf("plaintext: %w", phe.ErrNilInput)
	}
	r, err := rs.Unit(pk.n)
	if err != nil {
		return nil, fmt.Errorf("sample randomizer: %w", err)
	}
	defer phe.ZeroizeInt(r)

	rn := new(big.Int).Exp(r, pk.n, pk.n2)
	defer phe.ZeroizeInt(rn)

	// g^m = (1+n)^m = 1 + m·n (mod n²)
	encoded := new(big.Int).Mod(m, pk.n)
	encoded.Mul(encoded, pk.n)
	encoded.Add(encoded, one)
	defer phe.ZeroizeInt(encoded)

	c := new(big.Int).Mul(encoded, rn)
	return c.Mod(c, pk.n2), nil
}

// AddCiphers returns c1·c2 mod n², an encryption of the sum of the plaintexts.
func (pk *PublicKey) AddCiphers(c1, c2 *big.Int) (*big.Int, error) {
	if err := pk.check(); err != nil {
		return nil, err
	}
	if err := pk.checkRange(c1); err != nil {
		return nil, err
	}
	if err := pk.checkRange(c2); err != nil {
		return nil, err
	}
	c := new(big.Int).Mul(c1, c2)
	return c.Mod(c, pk.n2), nil
}

// AddConst adds the public constant k to the plaintext of c by multiplying in
// g^k mod n². No fresh randomness is drawn.
func (pk *PublicKey) AddConst(c, k *big.Int) (*big.Int, error) {
	if err := pk.check(); err != nil {
		return nil, err
	}
	if k == nil {
		return nil, fmt.Errorf("constant: %w", phe.ErrNilInput)
	}
	// g has order n in Z*_{n²}, so reducing k first changes nothing for k >= 0
	// and gives negative constants their modular meaning.
	e := new(big.Int).Mod(k, pk.n)
	gk := new(big.Int).Exp(pk.g, e, pk.n2)
	return pk.AddCiphers(c, gk)
}

// MulConst returns c^k mod n², an encryption of the plaintext times k. A
// negative k is taken modulo n.
func (pk *PublicKey) MulConst(c, k *big.Int) (*big.Int, error) {
	if err := pk.check(); err != nil {
		return nil, err
	}
	if err := pk.checkRange(c); err != nil {
		return nil, err
	}
	if k == nil {
		return nil, fmt.Errorf("constant: %w", phe.ErrNilInput)
	}
	e := k
	if k.Sign() < 0 {
		e = new(big.Int).Mod(k, pk.n)
	}
	return new(big.Int).Exp(c, e, pk.n2), nil
}

// Verify checks that c lies in [1, n²) and is a unit modulo n.
func (pk *PublicKey) Verify(c *big.Int) error {
	if err := pk.check(); err != nil {
		return err
	}
	if err := pk.checkRange(c); err != nil {
		return err
	}
	if new(big.Int).GCD(nil, nil, c, pk.n).Cmp(one) != 0 {
		return fmt.Errorf("%w: not a unit modulo n", phe.ErrMalformedCiphertext)
	}
	return nil
}

func (pk *PublicKey) check() error {
	if pk == nil || pk.n == nil {
		return fmt.Errorf("public key: %w", phe.ErrNilInput)
	}
	return nil
}

func (pk *PublicKey) checkRange(c *big.Int) error {
	if c == nil {
		return fmt.Errorf("ciphertext: %w", phe.ErrNilInput)
	}
	if c.Sign() <= 0 || c.Cmp(pk.n2) >= 0 {
		return fmt.Errorf("%w: outside [1, n²)", phe.ErrMalformedCiphertext)
	}
	return nil
}

// Decrypt recovers the plaintext of c as a residue in [0, n).
//
// It computes u = c^lambda mod n² and L(u) = (u-1)/n by exact division; an
// honest ciphertext always has u ≡ 1 mod n, so a remainder marks c as
// malformed.
func (sk *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	if sk == nil || sk.lambda == nil || sk.mu == nil {
		return nil, fmt.Errorf("private key: %w", phe.ErrNilInput)
	}
	if err := sk.checkRange(c); err != nil {
		return nil, err
	}
	u := new(big.Int).Exp(c, sk.lambda, sk.n2)
	u.Sub(u, one)

	l, rem := new(big.Int).QuoRem(u, sk.n, new(big.Int))
	if rem.Sign() != 0 {
		return nil, fmt.Errorf("%w: c^lambda is not 1 modulo n", phe.ErrMalformedCiphertext)
	}
	l.Mul(l, sk.mu)
	return l.Mod(l, sk.n), nil
}
