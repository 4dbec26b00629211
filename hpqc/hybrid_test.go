package hpqc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHybridScheme(t *testing.T) {
	s := HybridScheme()
	require.Equal(t, HybridName, s.Name())
	require.Equal(t, 32+1184, s.PublicKeySize())
	require.Equal(t, 32+1088, s.CiphertextSize())

	pk, sk, err := s.GenerateKeyPair()
	require.NoError(t, err)

	ct, ss, err := s.Encapsulate(pk)
	require.NoError(t, err)
	require.Len(t, ct, s.CiphertextSize())

	ss2, err := s.Decapsulate(sk, ct)
	require.NoError(t, err)
	require.Equal(t, ss, ss2)

	blob, err := pk.MarshalBinary()
	require.NoError(t, err)
	pk2, err := s.UnmarshalBinaryPublicKey(blob)
	require.NoError(t, err)
	require.True(t, pk.Equal(pk2))

	// Corrupting the ML-KEM half must change the combined secret.
	ct[len(ct)-1] ^= 1
	ss3, err := s.Decapsulate(sk, ct)
	require.NoError(t, err)
	require.NotEqual(t, ss, ss3)
}
