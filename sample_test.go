package mlkem

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

func TestSamplePolyCBD(t *testing.T) {
	rng := rand.New(rand.NewPCG(15, 16))
	var b [cbdSize]byte
	for trial := 0; trial < 100; trial++ {
		for i := range b {
			b[i] = byte(rng.Uint32())
		}
		f := samplePolyCBD(b[:])
		for i, c := range f {
			switch c {
			case 0, 1, 2, q - 1, q - 2:
			default:
				t.Fatalf("coefficient %d = %d, outside [-2, 2]", i, c)
			}
		}
		if samplePolyCBD(b[:]) != f {
			t.Fatal("samplePolyCBD is not deterministic")
		}
	}
}

func TestSamplePolyCBDKnown(t *testing.T) {
	var zero [cbdSize]byte
	if samplePolyCBD(zero[:]) != (ringElement{}) {
		t.Error("all-zero input must give the zero polynomial")
	}

	ones := bytes.Repeat([]byte{0xff}, cbdSize)
	if samplePolyCBD(ones) != (ringElement{}) {
		t.Error("all-ones input must give the zero polynomial")
	}

	// 0x03 sets both bits of the first pair in every byte: +2, then 0.
	f := samplePolyCBD(bytes.Repeat([]byte{0x03}, cbdSize))
	for i, c := range f {
		want := fieldElement(0)
		if i%2 == 0 {
			want = 2
		}
		if c != want {
			t.Fatalf("coefficient %d = %d, want %d", i, c, want)
		}
	}

	// 0x0c sets the second pair instead: -2, then 0.
	f = samplePolyCBD(bytes.Repeat([]byte{0x0c}, cbdSize))
	if f[0] != q-2 || f[1] != 0 {
		t.Fatalf("got %d %d, want %d 0", f[0], f[1], q-2)
	}
}

func TestCBDDistribution(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 18))
	var b [cbdSize]byte
	counts := map[fieldElement]int{}
	const trials = 400
	for trial := 0; trial < trials; trial++ {
		for i := range b {
			b[i] = byte(rng.Uint32())
		}
		for _, c := range samplePolyCBD(b[:]) {
			counts[c]++
		}
	}
	// Expected frequencies 1/16, 4/16, 6/16, 4/16, 1/16 of 102400 samples.
	total := trials * n
	expect := map[fieldElement]int{q - 2: total / 16, q - 1: total / 4, 0: total * 3 / 8, 1: total / 4, 2: total / 16}
	for v, want := range expect {
		got := counts[v]
		if got < want*9/10 || got > want*11/10 {
			t.Errorf("value %d: %d samples, want about %d", v, got, want)
		}
	}
}

func TestSampleNTT(t *testing.T) {
	var rho [32]byte
	for i := range rho {
		rho[i] = byte(i)
	}
	a := sampleNTT(&rho, 0, 1)
	for i, c := range a {
		if c < 0 || c >= q {
			t.Fatalf("coefficient %d = %d, not in [0, q)", i, c)
		}
	}
	if sampleNTT(&rho, 0, 1) != a {
		t.Fatal("sampleNTT is not deterministic")
	}
	if sampleNTT(&rho, 1, 0) == a {
		t.Fatal("sampleNTT ignores index order")
	}
}

func TestExpandMatrix(t *testing.T) {
	var rho [32]byte
	rho[0] = 1
	a := expandMatrix(&rho)
	if expandMatrix(&rho) != a {
		t.Fatal("expandMatrix is not deterministic")
	}
	for i := 0; i < k768; i++ {
		for j := 0; j < k768; j++ {
			if a[i*k768+j] != sampleNTT(&rho, byte(j), byte(i)) {
				t.Fatalf("entry (%d, %d) is not SampleNTT(rho || %d || %d)", i, j, j, i)
			}
		}
	}
	rho[0] = 2
	if expandMatrix(&rho) == a {
		t.Fatal("expandMatrix ignores rho")
	}
}
