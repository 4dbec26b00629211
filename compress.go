package mlkem

// compress maps x in [0, q) to round(2^d * x / q) mod 2^d.
// Implements FIPS 203 Compress_d in constant time: the division by q is
// replaced with a Barrett quotient that is corrected by at most two.
func compress(x fieldElement, d uint8) uint16 {
	// The dividend fits in 23 bits for d <= 11.
	dividend := uint32(x) << d
	quotient := uint32(uint64(dividend) * 5039 >> 24) // 5039 = floor(2^24 / q)
	remainder := dividend - quotient*q

	// Adjust the quotient for rounding: remainder is in [0, 2q).
	quotient += (q/2 - remainder) >> 31 & 1
	quotient += (q + q/2 - remainder) >> 31 & 1

	var mask uint32 = (1 << d) - 1
	return uint16(quotient & mask)
}

// decompress maps y in [0, 2^d) to round(q * y / 2^d).
// Implements FIPS 203 Decompress_d.
func decompress(y uint16, d uint8) fieldElement {
	dividend := uint32(y) * q
	quotient := dividend >> d
	// Round half up using the most significant dropped bit.
	quotient += dividend >> (d - 1) & 1
	return fieldElement(quotient)
}
