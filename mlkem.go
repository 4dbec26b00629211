// Package mlkem implements ML-KEM (Module-Lattice Key-Encapsulation Mechanism,
// formerly known as Kyber) as specified in FIPS 203.
//
// ML-KEM is a post-quantum key encapsulation mechanism standardized by NIST.
// This package provides the ML-KEM-768 parameter set (NIST security level 3,
// comparable to AES-192).
//
// Basic usage:
//
//	key, err := mlkem.GenerateKey768(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	ct, ss, err := key.PublicKey().Encapsulate(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	ss2, err := key.Decapsulate(ct)
//	// ss and ss2 are equal
//
// Decapsulation uses implicit rejection: a malformed but correctly sized
// ciphertext yields a pseudorandom shared secret rather than an error.
package mlkem

// Global ML-KEM constants from FIPS 203.
const (
	// n is the number of coefficients in polynomials.
	n = 256

	// q is the modulus: q = 13*2^8 + 1 = 3329
	q = 3329

	// SeedSize is the size of the d || z seed used for key generation.
	SeedSize = 64

	// EncapsulationSeedSize is the size of the message m drawn during
	// encapsulation.
	EncapsulationSeedSize = 32

	// SharedKeySize is the size of the shared secret.
	SharedKeySize = 32

	// messageSize is the size of a K-PKE plaintext.
	messageSize = 32
)

// ML-KEM-768 parameters.
const (
	k768 = 3

	eta1 = 2 // secret and error vectors in key generation, y in encryption
	eta2 = 2 // e1, e2 in encryption

	du768 = 10
	dv768 = 4

	PublicKeySize768  = k768*encodingSize12 + 32
	PrivateKeySize768 = k768*encodingSize12 + PublicKeySize768 + 32 + 32
	CiphertextSize768 = k768*encodingSize10 + encodingSize4
)

// Encoding size constants (bytes per polynomial).
const (
	encodingSize1  = n * 1 / 8  // message
	encodingSize4  = n * 4 / 8  // v compressed to 4 bits
	encodingSize10 = n * 10 / 8 // u compressed to 10 bits
	encodingSize12 = n * 12 / 8 // t and s, lossless
)

// cbdSize is the number of PRF bytes consumed by one CBD sample.
const cbdSize = 64 * eta1
