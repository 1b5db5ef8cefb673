// Package paillier implements the Paillier cryptosystem with the simplified
// generator g = n+1.
//
// Paillier is a probabilistic public-key scheme with additive homomorphism:
// products of ciphertexts decrypt to sums of plaintexts, modulo n.
//
// # Key Operations
//
//   - New / NewWithSeed: generate a keypair inside an instance that owns its random state
//   - GenerateKey / FromPrimes: key construction for callers managing their own state
//   - Encrypt: encrypt a plaintext (taken modulo n)
//   - Decrypt: decrypt a ciphertext (requires the private key)
//   - AddCiphers: E(a) · E(b) = E(a+b)
//   - AddConst: E(a) · g^k = E(a+k)
//   - MulConst: E(a)^k = E(a·k)
//   - Verify: check that a ciphertext is well-formed
//
// # Encoding
//
// Because g = n+1, g^m mod n² equals 1 + m·n, so encryption needs only one
// modular exponentiation (the randomizer r^n). Plaintexts are residues modulo
// n: values at or above n, and negative values, wrap silently.
//
// AddConst encodes the constant as g^k without a fresh randomizer. The result
// is as random as the input ciphertext, which is enough because the constant is
// public.
//
// # Usage Example
//
//	cfg := phe.DefaultConfig()
//	p, err := paillier.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	c1, _ := p.Encrypt(big.NewInt(3))
//	c2, _ := p.Encrypt(big.NewInt(5))
//	sum, _ := p.AddCiphers(c1, c2)
//	m, _ := p.Decrypt(sum) // 8
//
// Ciphertexts are malleable and unauthenticated.
package paillier
