// Package seal encrypts payloads of any size to an ML-KEM-768 public key.
//
// A fresh shared secret is encapsulated to the recipient, expanded with
// HKDF-SHA-512 into an AEAD key, and used once to encrypt the payload. The
// KEM ciphertext, nonce and AEAD ciphertext travel together in a CBOR
// envelope.
package seal

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/hkdf"

	"github.com/KarpelesLab/mlkem"
)

const (
	// Version is the envelope format version written by Seal.
	Version = 1

	// HKDFContext separates keys derived here from any other use of the
	// same shared secret.
	HKDFContext = "mlkem:seal:v1"
)

type envelope struct {
	Version       uint8  `cbor:"v"`
	Suite         Suite  `cbor:"s"`
	KEMCiphertext []byte `cbor:"k"`
	Nonce         []byte `cbor:"n"`
	Ciphertext    []byte `cbor:"c"`
}

type options struct {
	suite Suite
}

// Option configures Seal.
type Option func(*options)

// WithSuite selects the payload AEAD. The default is AES256GCM.
func WithSuite(s Suite) Option {
	return func(o *options) {
		o.suite = s
	}
}

// Seal encrypts plaintext to pk. aad is authenticated but not stored in the
// envelope; the same aad must be passed to Open.
func Seal(rand io.Reader, pk *mlkem.PublicKey768, plaintext, aad []byte, opts ...Option) ([]byte, error) {
	o := options{suite: AES256GCM}
	for _, opt := range opts {
		opt(&o)
	}

	ctKem, ss, err := pk.Encapsulate(rand)
	if err != nil {
		return nil, fmt.Errorf("encapsulate: %w", err)
	}
	key, err := deriveKey(o.suite, ss, aad, ctKem)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := o.suite.newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand, nonce); err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}

	return cbor.Marshal(&envelope{
		Version:       Version,
		Suite:         o.suite,
		KEMCiphertext: ctKem,
		Nonce:         nonce,
		Ciphertext:    aead.Seal(nil, nonce, plaintext, aad),
	})
}

// Open decrypts an envelope produced by Seal.
func Open(sk *mlkem.PrivateKey768, sealed, aad []byte) ([]byte, error) {
	var env envelope
	if err := cbor.Unmarshal(sealed, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	if env.Suite.nonceSize() == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSuite, env.Suite)
	}
	if len(env.Nonce) != env.Suite.nonceSize() {
		return nil, fmt.Errorf("%w: nonce is %d bytes", ErrInvalidEnvelope, len(env.Nonce))
	}

	ss, err := sk.Decapsulate(env.KEMCiphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	key, err := deriveKey(env.Suite, ss, aad, env.KEMCiphertext)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := env.Suite.newAEAD(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// deriveKey performs HKDF-SHA-512 with:
//   - IKM: the KEM shared secret
//   - Salt: SHA-256 of the KEM ciphertext
//   - Info: context || suite || AAD length (4 bytes BE) || AAD
func deriveKey(suite Suite, sharedSecret, aad, ctKem []byte) ([]byte, error) {
	salt := sha256.Sum256(ctKem)

	info := make([]byte, 0, len(HKDFContext)+1+4+len(aad))
	info = append(info, HKDFContext...)
	info = append(info, byte(suite))
	info = binary.BigEndian.AppendUint32(info, uint32(len(aad)))
	info = append(info, aad...)

	reader := hkdf.New(sha512.New, sharedSecret, salt[:], info)
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}
