// Package phe is the root of phe-go, a library of partially homomorphic
// public-key cryptosystems built on math/big.
//
// The schemes live in subpackages:
//
//   - gm: Goldwasser–Micali, bit-wise probabilistic encryption with XOR homomorphism
//   - paillier: Paillier, additively homomorphic encryption over Z_{n²}
//   - prime: exact-length sampling, prime and strong-prime generation
//   - randstate: the per-instance deterministic PRNG every draw comes from
//
// This package holds what they share: Config, the sentinel errors and the
// zeroization helpers.
//
// Neither scheme authenticates ciphertexts. Anyone holding the public key can
// combine ciphertexts homomorphically; that malleability is the feature.
package phe
