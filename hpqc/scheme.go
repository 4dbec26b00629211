// Package hpqc exposes ML-KEM-768 through the katzenpost hpqc KEM interfaces,
// so it can be used wherever a kem.Scheme is expected: PEM armoring, scheme
// registries and hybrid combiners.
package hpqc

import (
	"io"

	"github.com/katzenpost/hpqc/kem"
	"github.com/katzenpost/hpqc/kem/pem"
	"github.com/katzenpost/hpqc/rand"

	"github.com/KarpelesLab/mlkem"
)

// Name is the scheme name, also used as the PEM block type prefix.
const Name = "ML-KEM-768"

// tell the type checker that we obey these interfaces
var _ kem.Scheme = (*scheme)(nil)
var _ kem.PublicKey = (*PublicKey)(nil)
var _ kem.PrivateKey = (*PrivateKey)(nil)

var sch = &scheme{rng: rand.Reader}

// Scheme returns the ML-KEM-768 KEM, drawing randomness from the hpqc
// whitened system reader.
func Scheme() kem.Scheme { return sch }

// SchemeWithRand returns the ML-KEM-768 KEM drawing randomness from rng.
// Passing a deterministic reader makes key generation and encapsulation
// reproducible.
func SchemeWithRand(rng io.Reader) kem.Scheme {
	return &scheme{rng: rng}
}

// PublicKey is an ML-KEM-768 encapsulation key.
type PublicKey struct {
	scheme *scheme
	key    *mlkem.PublicKey768
}

func (p *PublicKey) Scheme() kem.Scheme {
	return p.scheme
}

// Key returns the underlying encapsulation key.
func (p *PublicKey) Key() *mlkem.PublicKey768 {
	return p.key
}

func (p *PublicKey) MarshalText() (text []byte, err error) {
	return pem.ToPublicPEMBytes(p), nil
}

func (p *PublicKey) MarshalBinary() ([]byte, error) {
	return p.key.Bytes(), nil
}

func (p *PublicKey) Equal(pubkey kem.PublicKey) bool {
	o, ok := pubkey.(*PublicKey)
	if !ok {
		return false
	}
	return p.key.Equal(o.key)
}

// PrivateKey is an ML-KEM-768 decapsulation key.
type PrivateKey struct {
	scheme *scheme
	key    *mlkem.PrivateKey768
}

func (p *PrivateKey) Scheme() kem.Scheme {
	return p.scheme
}

// Key returns the underlying decapsulation key.
func (p *PrivateKey) Key() *mlkem.PrivateKey768 {
	return p.key
}

func (p *PrivateKey) MarshalBinary() ([]byte, error) {
	return p.key.Bytes(), nil
}

func (p *PrivateKey) Equal(privkey kem.PrivateKey) bool {
	o, ok := privkey.(*PrivateKey)
	if !ok {
		return false
	}
	return p.key.Equal(o.key)
}

func (p *PrivateKey) Public() kem.PublicKey {
	return &PublicKey{
		scheme: p.scheme,
		key:    p.key.PublicKey(),
	}
}

type scheme struct {
	rng io.Reader
}

func (s *scheme) Name() string {
	return Name
}

func (s *scheme) GenerateKeyPair() (kem.PublicKey, kem.PrivateKey, error) {
	sk, err := mlkem.GenerateKey768(s.rng)
	if err != nil {
		return nil, nil, err
	}
	return s.wrap(sk)
}

func (s *scheme) wrap(sk *mlkem.PrivateKey768) (*PublicKey, *PrivateKey, error) {
	return &PublicKey{
			scheme: s,
			key:    sk.PublicKey(),
		}, &PrivateKey{
			scheme: s,
			key:    sk,
		}, nil
}

func (s *scheme) Encapsulate(pk kem.PublicKey) (ct, ss []byte, err error) {
	pub, ok := pk.(*PublicKey)
	if !ok {
		return nil, nil, kem.ErrTypeMismatch
	}
	return pub.key.Encapsulate(s.rng)
}

func (s *scheme) Decapsulate(sk kem.PrivateKey, ct []byte) ([]byte, error) {
	priv, ok := sk.(*PrivateKey)
	if !ok {
		return nil, kem.ErrTypeMismatch
	}
	if len(ct) != mlkem.CiphertextSize768 {
		return nil, kem.ErrCiphertextSize
	}
	return priv.key.Decapsulate(ct)
}

func (s *scheme) UnmarshalBinaryPublicKey(b []byte) (kem.PublicKey, error) {
	if len(b) != mlkem.PublicKeySize768 {
		return nil, kem.ErrPubKeySize
	}
	pk, err := mlkem.NewPublicKey768(b)
	if err != nil {
		return nil, err
	}
	return &PublicKey{
		scheme: s,
		key:    pk,
	}, nil
}

func (s *scheme) UnmarshalBinaryPrivateKey(b []byte) (kem.PrivateKey, error) {
	if len(b) != mlkem.PrivateKeySize768 {
		return nil, kem.ErrPrivKeySize
	}
	sk, err := mlkem.NewPrivateKey768(b)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		scheme: s,
		key:    sk,
	}, nil
}

func (s *scheme) UnmarshalTextPublicKey(text []byte) (kem.PublicKey, error) {
	return pem.FromPublicPEMBytes(text, s)
}

func (s *scheme) UnmarshalTextPrivateKey(text []byte) (kem.PrivateKey, error) {
	return pem.FromPrivatePEMBytes(text, s)
}

func (s *scheme) CiphertextSize() int {
	return mlkem.CiphertextSize768
}

func (s *scheme) SharedKeySize() int {
	return mlkem.SharedKeySize
}

func (s *scheme) PrivateKeySize() int {
	return mlkem.PrivateKeySize768
}

func (s *scheme) PublicKeySize() int {
	return mlkem.PublicKeySize768
}

// DeriveKeyPair derives a key pair from a 64-byte d || z seed and panics on
// any other seed length.
func (s *scheme) DeriveKeyPair(seed []byte) (kem.PublicKey, kem.PrivateKey) {
	if len(seed) != mlkem.SeedSize {
		panic(kem.ErrSeedSize)
	}
	sk, err := mlkem.NewKey768(seed)
	if err != nil {
		panic(err)
	}
	pk, priv, _ := s.wrap(sk)
	return pk, priv
}

func (s *scheme) SeedSize() int {
	return mlkem.SeedSize
}
