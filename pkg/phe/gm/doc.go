// Package gm implements the Goldwasser–Micali cryptosystem.
//
// GM encrypts one bit at a time. The public key is a modulus n = p·q and a
// value x that is a quadratic non-residue modulo both p and q. A bit b is
// encrypted as
//
//	c = y² · x^b mod n
//
// for a fresh random unit y, so 0 encrypts to a quadratic residue and 1 to a
// non-residue. Only the holder of p and q can tell the two apart.
//
// # Homomorphic Properties
//
// Multiplying two ciphertexts XORs the underlying bits:
//
//	Decrypt(Xor(Encrypt(a), Encrypt(b))) == a != b
//
// # Usage Example
//
//	cfg := phe.DefaultConfig()
//	cfg.KeySize = 1024
//	g, err := gm.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer g.Close()
//
//	c1, _ := g.Encrypt(true)
//	c2, _ := g.Encrypt(false)
//	x, _ := g.Xor(c1, c2)
//	bit, _ := g.Decrypt(x) // true
//
// Ciphertexts are malleable and unauthenticated.
package gm
