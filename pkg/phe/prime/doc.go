// Package prime generates the primes behind both cryptosystems.
//
// All randomness is drawn from a caller-owned *randstate.State; this package
// keeps no state of its own.
//
// # Generators
//
//   - UniformBits: an integer of exactly n bits, top bit forced
//   - NextPrime: the smallest probable prime at or above a value
//   - Random: a uniformly sampled prime of exactly n bits
//   - Strong: a prime p of exactly n bits where p-1 has a known prime factor of
//     n/2 bits, which defeats Pollard's p-1 factoring method
//
// Every loop is bounded by Options.MaxAttempts and reports exhaustion as
// phe.ErrGenerationFailed. Every loop also checks its context, so a slow key
// generation can be cancelled or given a deadline.
package prime
