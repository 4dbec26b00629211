package mlkem

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// sampleNTT generates a uniformly random polynomial in NTT domain
// using rejection sampling from SHAKE128 output.
// Implements FIPS 203 Algorithm 7 (SampleNTT).
func sampleNTT(rho *[32]byte, j, i byte) nttElement {
	h := sha3.NewShake128()
	h.Write(rho[:])
	h.Write([]byte{j, i})

	var buf [168]byte // SHAKE128 rate
	var a nttElement
	c := 0

	for {
		h.Read(buf[:])
		for off := 0; off < len(buf) && c < n; off += 3 {
			// Two 12-bit candidates per three bytes
			d1 := uint16(buf[off]) | uint16(buf[off+1]&0x0f)<<8
			d2 := uint16(buf[off+1])>>4 | uint16(buf[off+2])<<4
			if d1 < q {
				a[c] = fieldElement(d1)
				c++
			}
			if d2 < q && c < n {
				a[c] = fieldElement(d2)
				c++
			}
		}
		if c >= n {
			return a
		}
	}
}

// expandMatrix derives the public matrix A-hat from rho. Entry [i*k768+j]
// is row i, column j.
func expandMatrix(rho *[32]byte) [k768 * k768]nttElement {
	var a [k768 * k768]nttElement
	for i := 0; i < k768; i++ {
		for j := 0; j < k768; j++ {
			a[i*k768+j] = sampleNTT(rho, byte(j), byte(i))
		}
	}
	return a
}

// samplePolyCBD draws a polynomial from the centered binomial distribution
// with eta = 2. b must hold exactly 64*eta bytes.
// Implements FIPS 203 Algorithm 8 (SamplePolyCBD).
func samplePolyCBD(b []byte) ringElement {
	var f ringElement
	for i := 0; i < n/8; i++ {
		t := binary.LittleEndian.Uint32(b[4*i:])
		// Sum adjacent bit pairs: each 2-bit field of d is a popcount.
		d := t & 0x55555555
		d += (t >> 1) & 0x55555555
		for j := 0; j < 8; j++ {
			x := fieldElement((d >> (4 * j)) & 0x3)
			y := fieldElement((d >> (4*j + 2)) & 0x3)
			f[8*i+j] = fieldSub(x, y)
		}
	}
	return f
}
