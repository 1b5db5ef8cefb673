package phe

import "errors"

var (
	// ErrInvalidKeySize indicates an odd or too-small key size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidBitLength indicates a bit length outside the domain of a
	// sampling or prime generation routine.
	ErrInvalidBitLength = errors.New("invalid bit length")

	// ErrGenerationFailed is returned when a rejection-sampling or prime search
	// loop exhausts its retry ceiling. It is astronomically unlikely with sane
	// parameters; callers may simply retry.
	ErrGenerationFailed = errors.New("generation failed: retry limit exhausted")

	// ErrInvariantViolation indicates an arithmetic-domain failure that the key
	// generation invariants rule out, such as a missing modular inverse.
	// It signals a bug or corrupted key material, not bad input.
	ErrInvariantViolation = errors.New("key invariant violated")

	// ErrMalformedCiphertext indicates a ciphertext outside the domain of the
	// key it is used with.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrInvalidConfig indicates a Config field outside its accepted range.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidInput indicates an argument outside the domain of the
	// operation, such as a composite factor or a short seed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNilInput indicates a nil key, integer or random state argument.
	ErrNilInput = errors.New("nil input")

	// ErrClosed is returned by operations on a closed instance or random state.
	ErrClosed = errors.New("use of closed instance")
)
