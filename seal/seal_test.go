package seal

import (
	"crypto/rand"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/KarpelesLab/mlkem"
)

func newKey(t *testing.T) *mlkem.PrivateKey768 {
	t.Helper()
	key, err := mlkem.GenerateKey768(rand.Reader)
	require.NoError(t, err)
	return key
}

func TestSealOpen(t *testing.T) {
	key := newKey(t)
	aad := []byte("header")

	for _, suite := range []Suite{AES256GCM, ChaCha20Poly1305} {
		t.Run(suite.String(), func(t *testing.T) {
			for _, size := range []int{0, 1, 1000, 1 << 16} {
				plaintext := make([]byte, size)
				_, err := rand.Read(plaintext)
				require.NoError(t, err)

				sealed, err := Seal(rand.Reader, key.PublicKey(), plaintext, aad, WithSuite(suite))
				require.NoError(t, err)

				opened, err := Open(key, sealed, aad)
				require.NoError(t, err)
				require.Equal(t, plaintext, opened)
			}
		})
	}
}

func TestOpenEmptyPayload(t *testing.T) {
	key := newKey(t)
	for _, suite := range []Suite{AES256GCM, ChaCha20Poly1305} {
		sealed, err := Seal(rand.Reader, key.PublicKey(), nil, nil, WithSuite(suite))
		require.NoError(t, err)

		opened, err := Open(key, sealed, nil)
		require.NoError(t, err)
		require.NotNil(t, opened)
		require.Empty(t, opened)
	}
}

func TestDefaultSuite(t *testing.T) {
	key := newKey(t)
	sealed, err := Seal(rand.Reader, key.PublicKey(), []byte("hi"), nil)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, cbor.Unmarshal(sealed, &env))
	require.Equal(t, AES256GCM, env.Suite)
	require.Equal(t, uint8(Version), env.Version)
	require.Len(t, env.KEMCiphertext, mlkem.CiphertextSize768)
	require.Len(t, env.Nonce, 12)
}

func TestOpenWrongAAD(t *testing.T) {
	key := newKey(t)
	sealed, err := Seal(rand.Reader, key.PublicKey(), []byte("secret"), []byte("a"))
	require.NoError(t, err)

	_, err = Open(key, sealed, []byte("b"))
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestOpenWrongKey(t *testing.T) {
	key := newKey(t)
	other := newKey(t)
	sealed, err := Seal(rand.Reader, key.PublicKey(), []byte("secret"), nil)
	require.NoError(t, err)

	// Implicit rejection yields an unrelated secret, so the AEAD rejects it.
	_, err = Open(other, sealed, nil)
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestOpenTampered(t *testing.T) {
	key := newKey(t)
	sealed, err := Seal(rand.Reader, key.PublicKey(), []byte("secret"), nil)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, cbor.Unmarshal(sealed, &env))

	reencode := func(e envelope) []byte {
		b, err := cbor.Marshal(&e)
		require.NoError(t, err)
		return b
	}

	bad := env
	bad.KEMCiphertext = append([]byte{}, env.KEMCiphertext...)
	bad.KEMCiphertext[0] ^= 1
	_, err = Open(key, reencode(bad), nil)
	require.ErrorIs(t, err, ErrDecryptionFailed)

	bad = env
	bad.Ciphertext = append([]byte{}, env.Ciphertext...)
	bad.Ciphertext[0] ^= 1
	_, err = Open(key, reencode(bad), nil)
	require.ErrorIs(t, err, ErrDecryptionFailed)

	// Relabelling the suite changes the derived key as well.
	bad = env
	bad.Suite = ChaCha20Poly1305
	_, err = Open(key, reencode(bad), nil)
	require.ErrorIs(t, err, ErrDecryptionFailed)

	bad = env
	bad.Version = 2
	_, err = Open(key, reencode(bad), nil)
	require.ErrorIs(t, err, ErrUnsupportedVersion)

	bad = env
	bad.Suite = 9
	_, err = Open(key, reencode(bad), nil)
	require.ErrorIs(t, err, ErrUnsupportedSuite)

	bad = env
	bad.Nonce = env.Nonce[:8]
	_, err = Open(key, reencode(bad), nil)
	require.ErrorIs(t, err, ErrInvalidEnvelope)

	bad = env
	bad.KEMCiphertext = env.KEMCiphertext[:100]
	_, err = Open(key, reencode(bad), nil)
	require.ErrorIs(t, err, ErrInvalidEnvelope)
	require.ErrorIs(t, err, mlkem.ErrInvalidLength)

	_, err = Open(key, []byte{0xff, 0x00}, nil)
	require.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestParseSuite(t *testing.T) {
	for _, s := range []Suite{AES256GCM, ChaCha20Poly1305} {
		got, err := ParseSuite(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	_, err := ParseSuite("rot13")
	require.ErrorIs(t, err, ErrUnsupportedSuite)

	_, err = Seal(rand.Reader, newKey(t).PublicKey(), nil, nil, WithSuite(Suite(7)))
	require.ErrorIs(t, err, ErrUnsupportedSuite)
}
