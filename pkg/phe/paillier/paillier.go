package paillier

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/hsiuhsiu/phe-go/pkg/phe"
	"github.com/hsiuhsiu/phe-go/pkg/phe/logging"
	"github.com/hsiuhsiu/phe-go/pkg/phe/prime"
	"github.com/hsiuhsiu/phe-go/pkg/phe/randstate"
)

// Paillier is a Paillier instance: one key pair and the random state every
// encryption draws from. Methods are safe for concurrent use.
//
// Call Close when done to wipe the private key and the random state.
type Paillier struct {
	mu  sync.Mutex
	key *PrivateKey
	rs  *randstate.State
	log logging.Logger
}

// New generates a key pair of cfg.KeySize bits, seeding a fresh random state
// from crypto/rand.
func New(ctx context.Context, cfg phe.Config) (*Paillier, error) {
	rs, err := randstate.New()
	if err != nil {
		return nil, fmt.Errorf("seed random state: %w", err)
	}
	return newWithState(ctx, cfg, rs)
}

// NewWithSeed is New with a deterministic random state derived from seed.
func NewWithSeed(ctx context.Context, cfg phe.Config, seed []byte) (*Paillier, error) {
	rs, err := randstate.NewFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return newWithState(ctx, cfg, rs)
}

func newWithState(ctx context.Context, cfg phe.Config, rs *randstate.State) (*Paillier, error) {
	if err := cfg.Validate(); err != nil {
		rs.Close()
		return nil, err
	}
	log := logging.OrDefault(cfg.Logger).With("scheme", "paillier")

	start := time.Now()
	key, err := GenerateKey(ctx, rs, cfg.KeySize, prime.OptionsFrom(cfg))
	if err != nil {
		rs.Close()
		log.Warn(ctx, "key generation failed", "bits", cfg.KeySize, "error", err)
		return nil, fmt.Errorf("paillier key generation: %w", err)
	}
	log.Debug(ctx, "key generated",
		"bits", cfg.KeySize,
		"modulus_bits", key.n.BitLen(),
		"elapsed", time.Since(start),
		logging.Redacted("lambda"),
		logging.Redacted("mu"),
	)
	return &Paillier{key: key, rs: rs, log: log}, nil
}

// HasPrivateKey reports whether the instance still holds its private key.
func (p *Paillier) HasPrivateKey() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.key != nil
}

// PublicKey returns a copy of the public key.
func (p *Paillier) PublicKey() (*PublicKey, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		return nil, phe.ErrClosed
	}
	return p.key.Public(), nil
}

// PrivateKey returns a copy of the private key. The copy is not wiped by Close.
func (p *Paillier) PrivateKey() (*PrivateKey, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		return nil, phe.ErrClosed
	}
	return p.key.clone(), nil
}

// Encrypt encrypts m modulo n.
func (p *Paillier) Encrypt(m *big.Int) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		return nil, phe.ErrClosed
	}
	return p.key.Encrypt(p.rs, m)
}

// Decrypt recovers the plaintext of c in [0, n).
func (p *Paillier) Decrypt(c *big.Int) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		return nil, phe.ErrClosed
	}
	return p.key.Decrypt(c)
}

// AddCiphers homomorphically adds two ciphertexts.
// Result decrypts to plaintext1 + plaintext2 (mod n).
func (p *Paillier) AddCiphers(c1, c2 *big.Int) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		return nil, phe.ErrClosed
	}
	return p.key.AddCiphers(c1, c2)
}

// AddConst homomorphically adds a public constant.
// Result decrypts to plaintext + k (mod n).
func (p *Paillier) AddConst(c, k *big.Int) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		return nil, phe.ErrClosed
	}
	return p.key.AddConst(c, k)
}

// MulConst homomorphically multiplies by a public constant.
// Result decrypts to plaintext * k (mod n).
func (p *Paillier) MulConst(c, k *big.Int) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		return nil, phe.ErrClosed
	}
	return p.key.MulConst(c, k)
}

// Verify checks that c is well formed for this key.
func (p *Paillier) Verify(c *big.Int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		return phe.ErrClosed
	}
	return p.key.Verify(c)
}

// Close wipes the private key and the random state. Close is idempotent.
func (p *Paillier) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key == nil {
		return
	}
	p.key.zeroize()
	p.key = nil
	p.rs.Close()
	p.log.Debug(context.Background(), "instance closed")
}
