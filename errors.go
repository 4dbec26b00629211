package mlkem

import (
	"errors"
	"fmt"
)

// ErrMalformed is the root of every error caused by a malformed encoding.
// Use errors.Is to test for it or for one of the more specific errors below.
var ErrMalformed = errors.New("mlkem: malformed input")

var (
	// ErrInvalidLength reports a key, seed or ciphertext of the wrong size.
	ErrInvalidLength = fmt.Errorf("%w: invalid length", ErrMalformed)

	// ErrDecodeRange reports a 12-bit encoded coefficient that is not
	// reduced modulo q.
	ErrDecodeRange = fmt.Errorf("%w: coefficient out of range", ErrMalformed)

	// ErrKeyMismatch reports a private key whose embedded public key hash
	// does not match its embedded public key.
	ErrKeyMismatch = fmt.Errorf("%w: public key hash mismatch", ErrMalformed)
)

// ErrRandomSource reports a failure of the caller's random source. The
// reader's own error is wrapped alongside it.
var ErrRandomSource = errors.New("mlkem: random source failed")

func lengthError(what string, got, want int) error {
	return fmt.Errorf("%w: %s is %d bytes, want %d", ErrInvalidLength, what, got, want)
}

func randError(err error) error {
	return fmt.Errorf("%w: %w", ErrRandomSource, err)
}
