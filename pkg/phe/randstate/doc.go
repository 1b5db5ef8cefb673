// Package randstate implements the per-instance pseudo-random generator that
// every draw in phe-go comes from.
//
// A State is seeded exactly once, either from crypto/rand or from a caller
// supplied seed, and then expanded with SHAKE256. It is deterministic: two
// States built from the same seed produce the same sequence, which makes key
// generation reproducible in tests.
//
// A State is owned by one cryptosystem instance and is NOT safe for concurrent
// use. Every draw advances it; callers that share one must serialize access
// themselves. There is deliberately no package-level State.
package randstate
