package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// Suite identifies the AEAD used for the payload.
type Suite uint8

const (
	// AES256GCM is AES-256 in Galois/Counter Mode with a 96-bit nonce.
	AES256GCM Suite = 1
	// ChaCha20Poly1305 is the RFC 8439 AEAD.
	ChaCha20Poly1305 Suite = 2
)

// KeySize is the AEAD key size shared by both suites.
const KeySize = 32

func (s Suite) String() string {
	switch s {
	case AES256GCM:
		return "aes-256-gcm"
	case ChaCha20Poly1305:
		return "chacha20-poly1305"
	default:
		return fmt.Sprintf("suite(%d)", uint8(s))
	}
}

// ParseSuite maps a suite name as printed by String back to a Suite.
func ParseSuite(name string) (Suite, error) {
	switch strings.ToLower(name) {
	case "aes-256-gcm", "aes256gcm":
		return AES256GCM, nil
	case "chacha20-poly1305", "chacha20poly1305":
		return ChaCha20Poly1305, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedSuite, name)
}

func (s Suite) newAEAD(key []byte) (cipher.AEAD, error) {
	switch s {
	case AES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher: %w", err)
		}
		return cipher.NewGCM(block)
	case ChaCha20Poly1305:
		return chacha20poly1305.New(key)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedSuite, s)
}

func (s Suite) nonceSize() int {
	switch s {
	case AES256GCM:
		return 12
	case ChaCha20Poly1305:
		return chacha20poly1305.NonceSize
	}
	return 0
}
