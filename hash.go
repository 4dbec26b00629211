package mlkem

import "golang.org/x/crypto/sha3"

// hashG is G = SHA3-512, split into its two 32-byte halves.
func hashG(parts ...[]byte) (a, b [32]byte) {
	h := sha3.New512()
	for _, p := range parts {
		h.Write(p)
	}
	var out [64]byte
	h.Sum(out[:0])
	copy(a[:], out[:32])
	copy(b[:], out[32:])
	return a, b
}

// hashH is H = SHA3-256.
func hashH(b []byte) [32]byte {
	return sha3.Sum256(b)
}

// hashJ is J(z || c) = SHAKE256 truncated to 32 bytes, the implicit
// rejection key.
func hashJ(z *[32]byte, c []byte) (out [SharedKeySize]byte) {
	h := sha3.NewShake256()
	h.Write(z[:])
	h.Write(c)
	h.Read(out[:])
	return out
}

// prf expands seed and a one-byte nonce into 64*eta bytes of CBD input.
func prf(seed *[32]byte, nonce byte) [cbdSize]byte {
	var out [cbdSize]byte
	h := sha3.NewShake256()
	h.Write(seed[:])
	h.Write([]byte{nonce})
	h.Read(out[:])
	return out
}
