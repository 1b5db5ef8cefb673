package gm

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

// GM is a Goldwasser–Micali instance: one key pair and the random state every
// encryption draws from. Methods are safe for concurrent use; draws from the
// random state are serialized by an internal mutex.
//
// Call Close when done to wipe the factors and the random state.
type GM struct {
	mu  sync.Mutex
	key *PrivateKey
	rs  *randstate.State
	log logging.Logger
}

// New generates a key pair of cfg.KeySize bits, seeding a fresh random state
// from crypto/rand.
func New(ctx context.Context, cfg phe.Config) (*GM, error) {
	rs, err := randstate.New()
	if err != nil {
		return nil, fmt.Errorf("seed random state: %w", err)
	}
	return newWithState(ctx, cfg, rs)
}

// NewWithSeed is New with a deterministic random state derived from seed. Two
// instances built from the same seed and config hold the same key and produce
// the same ciphertext sequence. Use it for tests and reproducible fixtures.
func NewWithSeed(ctx context.Context, cfg phe.Config, seed []byte) (*GM, error) {
	rs, err := randstate.NewFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return newWithState(ctx, cfg, rs)
}

func newWithState(ctx context.Context, cfg phe.Config, rs *randstate.State) (*GM, error) {
	if err := cfg.Validate(); err != nil {
		rs.Close()
		return nil, err
	}
	log := logging.OrDefault(cfg.Logger).With("scheme", "gm")

	start := time.Now()
	key, err := GenerateKey(ctx, rs, cfg.KeySize, prime.OptionsFrom(cfg))
	if err != nil {
		rs.Close()
		log.Warn(ctx, "key generation failed", "bits", cfg.KeySize, "error", err)
		return nil, fmt.Errorf("gm key generation: %w", err)
	}
	log.Debug(ctx, "key generated",
		"bits", cfg.KeySize,
		"modulus_bits", key.n.BitLen(),
		"elapsed", time.Since(start),
		logging.Redacted("p"),
		logging.Redacted("q"),
	)
	return &GM{key: key, rs: rs, log: log}, nil
}

// PublicKey returns a copy of the public key.
func (g *GM) PublicKey() (*PublicKey, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.key == nil {
		return nil, phe.ErrClosed
	}
	return g.key.Public(), nil
}

// PrivateKey returns a copy of the private key. The copy is not wiped by Close.
func (g *GM) PrivateKey() (*PrivateKey, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.key == nil {
		return nil, phe.ErrClosed
	}
	return g.key.clone(), nil
}

// Encrypt encrypts one bit. Every call draws a fresh randomizer, so encrypting
// the same bit twice yields different ciphertexts.
func (g *GM) Encrypt(bit bool) (*big.Int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.key == nil {
		return nil, phe.ErrClosed
	}
	return g.key.Encrypt(g.rs, bit)
}

// Decrypt recovers the bit encrypted in c.
func (g *GM) Decrypt(c *big.Int) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.key == nil {
		return false, phe.ErrClosed
	}
	return g.key.Decrypt(c)
}

// Xor homomorphically combines two ciphertexts into an encryption of the XOR
// of their bits.
func (g *GM) Xor(c1, c2 *big.Int) (*big.Int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.key == nil {
		return nil, phe.ErrClosed
	}
	return g.key.Xor(c1, c2)
}

// Verify checks that c is well formed for this key's modulus.
func (g *GM) Verify(c *big.Int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.key == nil {
		return phe.ErrClosed
	}
	return g.key.Verify(c)
}

// Close wipes the factors and the random state. Close is idempotent; after it
// every method returns phe.ErrClosed.
func (g *GM) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.key == nil {
		return
	}
	g.key.zeroize()
	g.key = nil
	g.rs.Close()
	g.log.Debug(context.Background(), "instance closed")
}
