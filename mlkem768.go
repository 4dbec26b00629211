package mlkem

import (
	"crypto"
	"crypto/subtle"
	"io"
)

// PublicKey768 is the encapsulation key for ML-KEM-768.
type PublicKey768 struct {
	ek encryptionKey
	h  [32]byte // H(ek)
}

// PrivateKey768 is the decapsulation key for ML-KEM-768. It embeds the
// matching public key.
type PrivateKey768 struct {
	pk PublicKey768
	dk decryptionKey
	z  [32]byte // implicit rejection secret

	d       [32]byte // key generation seed, if known
	hasSeed bool
}

// GenerateKey768 generates a new ML-KEM-768 key pair from rand.
// Implements FIPS 203 Algorithm 19 (ML-KEM.KeyGen).
func GenerateKey768(rand io.Reader) (*PrivateKey768, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, randError(err)
	}
	return NewKey768(seed[:])
}

// NewKey768 derives a key pair from a 64-byte seed d || z.
// Implements FIPS 203 Algorithm 16 (ML-KEM.KeyGen_internal).
func NewKey768(seed []byte) (*PrivateKey768, error) {
	if len(seed) != SeedSize {
		return nil, lengthError("seed", len(seed), SeedSize)
	}
	sk := &PrivateKey768{hasSeed: true}
	copy(sk.d[:], seed[:32])
	copy(sk.z[:], seed[32:])

	sk.pk.ek, sk.dk = pkeKeyGen(&sk.d)
	sk.pk.h = hashH(sk.pk.Bytes())
	return sk, nil
}

// NewPublicKey768 parses an encoded encapsulation key.
func NewPublicKey768(b []byte) (*PublicKey768, error) {
	ek, err := parseEncryptionKey(b)
	if err != nil {
		return nil, err
	}
	return &PublicKey768{ek: ek, h: hashH(b)}, nil
}

// NewPrivateKey768 parses an encoded decapsulation key s || ek || H(ek) || z.
// A key parsed this way has no seed.
func NewPrivateKey768(b []byte) (*PrivateKey768, error) {
	if len(b) != PrivateKeySize768 {
		return nil, lengthError("decapsulation key", len(b), PrivateKeySize768)
	}
	sk := &PrivateKey768{}
	for i := range sk.dk.s {
		var err error
		sk.dk.s[i], err = decodePoly12(b[:encodingSize12])
		if err != nil {
			return nil, err
		}
		b = b[encodingSize12:]
	}

	ekBytes := b[:PublicKeySize768]
	b = b[PublicKeySize768:]
	pk, err := NewPublicKey768(ekBytes)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(pk.h[:], b[:32]) != 1 {
		return nil, ErrKeyMismatch
	}
	sk.pk = *pk
	copy(sk.z[:], b[32:])
	return sk, nil
}

// Bytes returns the encoded encapsulation key.
func (pk *PublicKey768) Bytes() []byte {
	return pk.ek.bytes(make([]byte, 0, PublicKeySize768))
}

// Equal reports whether pk and other are the same public key.
func (pk *PublicKey768) Equal(other crypto.PublicKey) bool {
	o, ok := other.(*PublicKey768)
	if !ok {
		return false
	}
	return pk.ek.rho == o.ek.rho && pk.ek.t == o.ek.t
}

// Encapsulate generates a shared secret and its ciphertext for pk, drawing
// the 32-byte message from rand.
// Implements FIPS 203 Algorithm 20 (ML-KEM.Encaps).
func (pk *PublicKey768) Encapsulate(rand io.Reader) (ciphertext, sharedKey []byte, err error) {
	var m [messageSize]byte
	if _, err := io.ReadFull(rand, m[:]); err != nil {
		return nil, nil, randError(err)
	}
	ciphertext, sharedKey = pk.encapsulate(&m)
	return ciphertext, sharedKey, nil
}

// encapsulate is the derandomized core of Encapsulate.
// Implements FIPS 203 Algorithm 17 (ML-KEM.Encaps_internal).
func (pk *PublicKey768) encapsulate(m *[messageSize]byte) (ciphertext, sharedKey []byte) {
	k, r := hashG(m[:], pk.h[:])
	ciphertext = pk.ek.encrypt(make([]byte, 0, CiphertextSize768), m, &r)
	return ciphertext, k[:]
}

// PublicKey returns the encapsulation key of sk.
func (sk *PrivateKey768) PublicKey() *PublicKey768 {
	pk := sk.pk
	return &pk
}

// Bytes returns the encoded decapsulation key s || ek || H(ek) || z.
func (sk *PrivateKey768) Bytes() []byte {
	b := make([]byte, 0, PrivateKeySize768)
	b = sk.dk.bytes(b)
	b = sk.pk.ek.bytes(b)
	b = append(b, sk.pk.h[:]...)
	return append(b, sk.z[:]...)
}

// Seed returns the 64-byte d || z seed the key was derived from, or nil if
// the key was parsed from its expanded encoding.
func (sk *PrivateKey768) Seed() []byte {
	if !sk.hasSeed {
		return nil
	}
	b := make([]byte, 0, SeedSize)
	b = append(b, sk.d[:]...)
	return append(b, sk.z[:]...)
}

// Equal reports whether sk and other are the same private key.
func (sk *PrivateKey768) Equal(other crypto.PrivateKey) bool {
	o, ok := other.(*PrivateKey768)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare(sk.Bytes(), o.Bytes()) == 1
}

// Decapsulate recovers the shared secret from ciphertext. A ciphertext of
// the right size never produces an error: if it was not honestly generated
// for this key, a pseudorandom secret derived from z is returned instead.
// Implements FIPS 203 Algorithm 21 (ML-KEM.Decaps).
func (sk *PrivateKey768) Decapsulate(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != CiphertextSize768 {
		return nil, lengthError("ciphertext", len(ciphertext), CiphertextSize768)
	}
	return sk.decapsulate(ciphertext), nil
}

// decapsulate implements FIPS 203 Algorithm 18 (ML-KEM.Decaps_internal).
func (sk *PrivateKey768) decapsulate(c []byte) []byte {
	m := sk.dk.decrypt(c)
	k, r := hashG(m[:], sk.pk.h[:])
	rejected := hashJ(&sk.z, c)

	var buf [CiphertextSize768]byte
	c1 := sk.pk.ek.encrypt(buf[:0], &m, &r)

	out := k[:]
	subtle.ConstantTimeCopy(1-subtle.ConstantTimeCompare(c, c1), out, rejected[:])
	return out
}

// Keypair generates a key pair and returns its encodings.
func Keypair(rand io.Reader) (publicKey, privateKey []byte, err error) {
	sk, err := GenerateKey768(rand)
	if err != nil {
		return nil, nil, err
	}
	return sk.pk.Bytes(), sk.Bytes(), nil
}

// Encapsulate encapsulates a fresh shared secret to an encoded public key.
func Encapsulate(rand io.Reader, publicKey []byte) (ciphertext, sharedKey []byte, err error) {
	pk, err := NewPublicKey768(publicKey)
	if err != nil {
		return nil, nil, err
	}
	return pk.Encapsulate(rand)
}

// Decapsulate recovers the shared secret for ciphertext with an encoded
// private key.
func Decapsulate(privateKey, ciphertext []byte) ([]byte, error) {
	sk, err := NewPrivateKey768(privateKey)
	if err != nil {
		return nil, err
	}
	return sk.Decapsulate(ciphertext)
}
