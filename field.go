package mlkem

// fieldElement is an integer modulo q. Values stored in polynomials are always
// in canonical form [0, q); wider signed ranges only appear inside the NTT
// loops and are documented there.
type fieldElement int16

// ringElement is a polynomial with n coefficients in Z_q, indexed by power of X.
type ringElement [n]fieldElement

// nttElement is the NTT representation of a polynomial: 128 residues modulo
// X^2 - gamma_i, each stored as a consecutive pair of coefficients.
type nttElement [n]fieldElement

// Montgomery and Barrett constants for R = 2^16.
const (
	// qInv = q^(-1) mod 2^16, as a signed 16-bit value (62209 - 2^16)
	qInv = -3327
	// montR = 2^16 mod q
	montR = 2285
	// montR2 = 2^32 mod q; montgomeryReduce(x * montR2) = x * R mod q
	montR2 = 1353
	// barrettV = round(2^26 / q)
	barrettV = ((1 << 26) + q/2) / q
	// invNTTScale = 2^16 / 128; montgomeryReduce(x * invNTTScale) = x / 128 mod q
	invNTTScale = 512
)

// montgomeryReduce returns a * 2^(-16) mod q for |a| < q * 2^15.
// The result is in (-q, q).
func montgomeryReduce(a int32) int16 {
	// t = a * q^(-1) mod 2^16, so a - t*q is divisible by 2^16
	t := int16(a) * qInv
	return int16((a - int32(t)*q) >> 16)
}

// barrettReduce returns a value congruent to a mod q in [-(q-1)/2, (q-1)/2].
// It is exact for every int16 input.
func barrettReduce(a int16) int16 {
	t := int16((barrettV*int32(a) + 1<<25) >> 26)
	return a - t*q
}

// fieldFromSigned maps a value in (-q, q) to [0, q).
func fieldFromSigned(a int16) fieldElement {
	a += (a >> 15) & q
	return fieldElement(a)
}

// fieldReduce fully reduces any int16 to [0, q).
func fieldReduce(a int16) fieldElement {
	return fieldFromSigned(barrettReduce(a))
}

// fieldAdd returns (a + b) mod q.
func fieldAdd(a, b fieldElement) fieldElement {
	// a + b < 2q, so a single conditional subtraction is enough
	x := int16(a) + int16(b) - q
	return fieldFromSigned(x)
}

// fieldSub returns (a - b) mod q.
func fieldSub(a, b fieldElement) fieldElement {
	return fieldFromSigned(int16(a) - int16(b))
}

// fieldMontMul returns a * b * 2^(-16) mod q in (-q, q).
func fieldMontMul(a, b int16) int16 {
	return montgomeryReduce(int32(a) * int32(b))
}

// polyAdd adds two polynomials coefficient-wise.
func polyAdd[T ~[n]fieldElement](a, b T) (c T) {
	for i := range c {
		c[i] = fieldAdd(a[i], b[i])
	}
	return c
}

// polySub subtracts two polynomials coefficient-wise.
func polySub[T ~[n]fieldElement](a, b T) (c T) {
	for i := range c {
		c[i] = fieldSub(a[i], b[i])
	}
	return c
}
