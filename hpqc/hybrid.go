package hpqc

import (
	"io"

	"github.com/katzenpost/hpqc/kem"
	"github.com/katzenpost/hpqc/kem/adapter"
	"github.com/katzenpost/hpqc/kem/combiner"
	"github.com/katzenpost/hpqc/nike/x25519"
	"github.com/katzenpost/hpqc/rand"
)

// HybridName is the name of the X25519 + ML-KEM-768 hybrid.
const HybridName = "X25519-ML-KEM-768"

// HybridScheme returns a KEM combining X25519 (as a KEM through the NIKE
// adapter) with ML-KEM-768. The shared secret stays safe as long as either
// component is unbroken.
func HybridScheme() kem.Scheme {
	return HybridSchemeWithRand(rand.Reader)
}

// HybridSchemeWithRand is HybridScheme with both components drawing from rng.
func HybridSchemeWithRand(rng io.Reader) kem.Scheme {
	return combiner.New(
		HybridName,
		[]kem.Scheme{
			adapter.FromNIKE(x25519.Scheme(rng)),
			SchemeWithRand(rng),
		},
	)
}
