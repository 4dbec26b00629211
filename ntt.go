package mlkem

// zetas contains the precomputed twiddle factors for the NTT in Montgomery form.
// zetas[k] = 17^(bitrev7(k)) * R mod q for k = 0..127
// where 17 is a primitive 256th root of unity mod q and R = 2^16.
var zetas = [128]int16{
	2285, 2571, 2970, 1812, 1493, 1422, 287, 202, 3158, 622, 1577, 182,
	962, 2127, 1855, 1468, 573, 2004, 264, 383, 2500, 1458, 1727, 3199,
	2648, 1017, 732, 608, 1787, 411, 3124, 1758, 1223, 652, 2777, 1015,
	2036, 1491, 3047, 1785, 516, 3321, 3009, 2663, 1711, 2167, 126,
	1469, 2476, 3239, 3058, 830, 107, 1908, 3082, 2378, 2931, 961, 1821,
	2604, 448, 2264, 677, 2054, 2226, 430, 555, 843, 2078, 871, 1550,
	105, 422, 587, 177, 3094, 3038, 2869, 1574, 1653, 3083, 778, 1159,
	3182, 2552, 1483, 2727, 1119, 1739, 644, 2457, 349, 418, 329, 3173,
	3254, 817, 1097, 603, 610, 1322, 2044, 1864, 384, 2114, 3193, 1218,
	1994, 2455, 220, 2142, 1670, 2144, 1799, 2051, 794, 1819, 2475,
	2459, 478, 3221, 3021, 996, 991, 958, 1869, 1522, 1628,
}

// ntt performs the Number Theoretic Transform on a polynomial.
// The input is in standard form, output is in NTT form (bit-reversed order).
// Implements FIPS 203 Algorithm 9.
func ntt(f ringElement) nttElement {
	// Coefficients start in [0, q) and grow by at most q per level, so after
	// seven levels they are bounded by 8q and still fit an int16.
	k := 1
	for length := 128; length >= 2; length /= 2 {
		for start := 0; start < n; start += 2 * length {
			zeta := zetas[k]
			k++
			fLo := f[start : start+length]
			fHi := f[start+length : start+2*length]
			for j := 0; j < length; j++ {
				t := fieldElement(fieldMontMul(zeta, int16(fHi[j])))
				fHi[j] = fLo[j] - t
				fLo[j] = fLo[j] + t
			}
		}
	}
	for i := range f {
		f[i] = fieldReduce(int16(f[i]))
	}
	return nttElement(f)
}

// invNTT performs the inverse Number Theoretic Transform.
// Input is in NTT form, output is in standard polynomial form.
// Implements FIPS 203 Algorithm 10.
func invNTT(f nttElement) ringElement {
	k := 127
	for length := 2; length <= 128; length *= 2 {
		for start := 0; start < n; start += 2 * length {
			zeta := zetas[k]
			k--
			fLo := f[start : start+length]
			fHi := f[start+length : start+2*length]
			for j := 0; j < length; j++ {
				t := fLo[j]
				fLo[j] = fieldElement(barrettReduce(int16(t + fHi[j])))
				fHi[j] = fieldElement(fieldMontMul(zeta, int16(fHi[j]-t)))
			}
		}
	}
	// Divide by 2^7 for the seven butterfly levels; the Montgomery factor of
	// this multiplication is folded into invNTTScale.
	for i := range f {
		f[i] = fieldFromSigned(fieldMontMul(int16(f[i]), invNTTScale))
	}
	return ringElement(f)
}

// nttDot returns the inner product sum(a[i] * b[i]) of two vectors of
// NTT-domain polynomials. len(a) must equal len(b) and be at most k768.
// Implements the MultiplyNTTs/BaseCaseMultiply loop of FIPS 203 Algorithms 11
// and 12, accumulated over the whole vector before the final reduction.
func nttDot(a, b []nttElement) nttElement {
	// Each base-case product below is scaled by R^(-1) and bounded by 2q, so
	// the accumulator stays under 2*k768*q.
	var acc [n]int16
	for v := range a {
		x, y := &a[v], &b[v]
		for i := 0; i < n; i += 4 {
			zeta := zetas[64+i/4]

			// (x0 + x1 X)(y0 + y1 X) mod X^2 - zeta
			p0 := fieldMontMul(fieldMontMul(int16(x[i+1]), int16(y[i+1])), zeta)
			p0 += fieldMontMul(int16(x[i]), int16(y[i]))
			p1 := fieldMontMul(int16(x[i]), int16(y[i+1]))
			p1 += fieldMontMul(int16(x[i+1]), int16(y[i]))

			// (x2 + x3 X)(y2 + y3 X) mod X^2 + zeta
			p2 := -fieldMontMul(fieldMontMul(int16(x[i+3]), int16(y[i+3])), zeta)
			p2 += fieldMontMul(int16(x[i+2]), int16(y[i+2]))
			p3 := fieldMontMul(int16(x[i+2]), int16(y[i+3]))
			p3 += fieldMontMul(int16(x[i+3]), int16(y[i+2]))

			acc[i] += p0
			acc[i+1] += p1
			acc[i+2] += p2
			acc[i+3] += p3
		}
	}
	// Lift out the R^(-1) left by the products.
	var c nttElement
	for i := range c {
		c[i] = fieldFromSigned(fieldMontMul(acc[i], montR2))
	}
	return c
}
