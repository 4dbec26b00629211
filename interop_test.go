package mlkem

import (
	"bytes"
	stdmlkem "crypto/mlkem"
	"crypto/rand"
	"testing"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
)

func TestCirclKeyGen(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		seed := make([]byte, SeedSize)
		rand.Read(seed)

		key, err := NewKey768(seed)
		if err != nil {
			t.Fatalf("NewKey768 failed: %v", err)
		}
		cpk, csk := mlkem768.NewKeyFromSeed(seed)

		cpkBytes, err := cpk.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		cskBytes, err := csk.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(key.PublicKey().Bytes(), cpkBytes) {
			t.Fatalf("trial %d: public key differs from circl", trial)
		}
		if !bytes.Equal(key.Bytes(), cskBytes) {
			t.Fatalf("trial %d: private key differs from circl", trial)
		}
	}
}

func TestCirclEncapsulation(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		seed := make([]byte, SeedSize)
		rand.Read(seed)
		key, _ := NewKey768(seed)
		cpk, csk := mlkem768.NewKeyFromSeed(seed)

		var m [messageSize]byte
		rand.Read(m[:])

		ct, ss := key.PublicKey().encapsulate(&m)
		cct := make([]byte, mlkem768.CiphertextSize)
		css := make([]byte, mlkem768.SharedKeySize)
		cpk.EncapsulateTo(cct, css, m[:])
		if !bytes.Equal(ct, cct) {
			t.Fatalf("trial %d: ciphertext differs from circl", trial)
		}
		if !bytes.Equal(ss, css) {
			t.Fatalf("trial %d: shared key differs from circl", trial)
		}

		// Tampered ciphertexts must hit the same rejection secret.
		ct[trial%CiphertextSize768] ^= 0x80
		got, err := key.Decapsulate(ct)
		if err != nil {
			t.Fatalf("Decapsulate failed: %v", err)
		}
		want := make([]byte, mlkem768.SharedKeySize)
		csk.DecapsulateTo(want, ct)
		if !bytes.Equal(got, want) {
			t.Fatalf("trial %d: implicit rejection differs from circl", trial)
		}
	}
}

func TestZeroSeedKeyGen(t *testing.T) {
	seed := make([]byte, SeedSize)
	key, err := NewKey768(seed)
	if err != nil {
		t.Fatalf("NewKey768 failed: %v", err)
	}
	dk, err := stdmlkem.NewDecapsulationKey768(seed)
	if err != nil {
		t.Fatalf("NewDecapsulationKey768 failed: %v", err)
	}
	if !bytes.Equal(key.PublicKey().Bytes(), dk.EncapsulationKey().Bytes()) {
		t.Fatal("all-zero seed: public key differs from crypto/mlkem")
	}
	if !bytes.Equal(key.Seed(), dk.Bytes()) {
		t.Fatal("all-zero seed: seed differs from crypto/mlkem")
	}
}

func TestStdlibInterop(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		seed := make([]byte, SeedSize)
		rand.Read(seed)

		key, err := NewKey768(seed)
		if err != nil {
			t.Fatalf("NewKey768 failed: %v", err)
		}
		dk, err := stdmlkem.NewDecapsulationKey768(seed)
		if err != nil {
			t.Fatalf("NewDecapsulationKey768 failed: %v", err)
		}
		if !bytes.Equal(key.PublicKey().Bytes(), dk.EncapsulationKey().Bytes()) {
			t.Fatalf("trial %d: public key differs from crypto/mlkem", trial)
		}

		// crypto/mlkem encapsulates, we decapsulate.
		ss, ct := dk.EncapsulationKey().Encapsulate()
		got, err := key.Decapsulate(ct)
		if err != nil {
			t.Fatalf("Decapsulate failed: %v", err)
		}
		if !bytes.Equal(got, ss) {
			t.Fatalf("trial %d: shared key differs from crypto/mlkem", trial)
		}

		// We encapsulate, crypto/mlkem decapsulates.
		ct, ss, err = key.PublicKey().Encapsulate(rand.Reader)
		if err != nil {
			t.Fatalf("Encapsulate failed: %v", err)
		}
		got, err = dk.Decapsulate(ct)
		if err != nil {
			t.Fatalf("crypto/mlkem Decapsulate failed: %v", err)
		}
		if !bytes.Equal(got, ss) {
			t.Fatalf("trial %d: crypto/mlkem recovered a different key", trial)
		}

		ct[0] ^= 1
		got, _ = dk.Decapsulate(ct)
		ours, _ := key.Decapsulate(ct)
		if !bytes.Equal(got, ours) {
			t.Fatalf("trial %d: implicit rejection differs from crypto/mlkem", trial)
		}
	}
}
