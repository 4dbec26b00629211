package seal

import "errors"

var (
	// ErrUnsupportedVersion is returned when an envelope carries a format
	// version this package does not understand.
	ErrUnsupportedVersion = errors.New("seal: unsupported envelope version")

	// ErrUnsupportedSuite is returned for an unknown AEAD suite identifier.
	ErrUnsupportedSuite = errors.New("seal: unsupported suite")

	// ErrInvalidEnvelope is returned when an envelope cannot be decoded or
	// one of its fields has the wrong size.
	ErrInvalidEnvelope = errors.New("seal: invalid envelope")

	// ErrDecryptionFailed is returned when authentication of the payload
	// fails: wrong key, wrong AAD or a tampered envelope.
	ErrDecryptionFailed = errors.New("seal: decryption failed")
)
