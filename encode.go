package mlkem

import "fmt"

// encodePoly12 appends the 12-bit encoding of a canonical polynomial to b.
// Implements FIPS 203 Algorithm 5 (ByteEncode_12).
func encodePoly12(b []byte, f *nttElement) []byte {
	out, p := sliceForAppend(b, encodingSize12)
	for i := 0; i < n; i += 2 {
		x := uint32(f[i]) | uint32(f[i+1])<<12
		p[0] = byte(x)
		p[1] = byte(x >> 8)
		p[2] = byte(x >> 16)
		p = p[3:]
	}
	return out
}

// decodePoly12 decodes a 12-bit encoded polynomial, rejecting any
// coefficient that is not below q.
// Implements FIPS 203 Algorithm 6 (ByteDecode_12) with the modulus check of
// Section 7.2.
func decodePoly12(b []byte) (nttElement, error) {
	var f nttElement
	if len(b) != encodingSize12 {
		return f, ErrInvalidLength
	}
	for i := 0; i < n; i += 2 {
		d := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		c0 := d & 0xfff
		c1 := d >> 12
		if c0 >= q || c1 >= q {
			return f, fmt.Errorf("%w: coefficient %d", ErrDecodeRange, i)
		}
		f[i] = fieldElement(c0)
		f[i+1] = fieldElement(c1)
		b = b[3:]
	}
	return f, nil
}

// compressPoly10 appends Compress_10 of f, packed at 10 bits per coefficient.
func compressPoly10(b []byte, f ringElement) []byte {
	out, p := sliceForAppend(b, encodingSize10)
	for i := 0; i < n; i += 4 {
		var x uint64
		x |= uint64(compress(f[i], 10))
		x |= uint64(compress(f[i+1], 10)) << 10
		x |= uint64(compress(f[i+2], 10)) << 20
		x |= uint64(compress(f[i+3], 10)) << 30
		p[0] = byte(x)
		p[1] = byte(x >> 8)
		p[2] = byte(x >> 16)
		p[3] = byte(x >> 24)
		p[4] = byte(x >> 32)
		p = p[5:]
	}
	return out
}

// decompressPoly10 is the inverse packing of compressPoly10 followed by
// Decompress_10. Every 10-bit value is valid, so it cannot fail.
func decompressPoly10(b []byte) ringElement {
	var f ringElement
	for i := 0; i < n; i += 4 {
		x := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 | uint64(b[4])<<32
		f[i] = decompress(uint16(x&0x3ff), 10)
		f[i+1] = decompress(uint16(x>>10&0x3ff), 10)
		f[i+2] = decompress(uint16(x>>20&0x3ff), 10)
		f[i+3] = decompress(uint16(x>>30&0x3ff), 10)
		b = b[5:]
	}
	return f
}

// compressPoly4 appends Compress_4 of f, two coefficients per byte with the
// even-indexed one in the low nibble.
func compressPoly4(b []byte, f ringElement) []byte {
	out, p := sliceForAppend(b, encodingSize4)
	for i := 0; i < n; i += 2 {
		p[i/2] = byte(compress(f[i], 4)) | byte(compress(f[i+1], 4))<<4
	}
	return out
}

// decompressPoly4 is the inverse packing of compressPoly4 followed by
// Decompress_4. Every nibble is valid, so it cannot fail.
func decompressPoly4(b []byte) ringElement {
	var f ringElement
	for i := 0; i < n; i += 2 {
		f[i] = decompress(uint16(b[i/2]&0x0f), 4)
		f[i+1] = decompress(uint16(b[i/2]>>4), 4)
	}
	return f
}

// polyFromMessage maps each message bit to 0 or round(q/2).
// Implements Decompress_1(ByteDecode_1(m)) in constant time.
func polyFromMessage(m *[messageSize]byte) ringElement {
	var f ringElement
	for i := 0; i < n; i++ {
		bit := uint16(m[i/8]>>(i%8)) & 1
		// -bit is all ones when bit is set
		f[i] = fieldElement(-bit & ((q + 1) / 2))
	}
	return f
}

// polyToMessage recovers the message bits as the nearest of 0 and q/2.
// Implements ByteEncode_1(Compress_1(f)).
func polyToMessage(f ringElement) [messageSize]byte {
	var m [messageSize]byte
	for i := 0; i < n; i++ {
		m[i/8] |= byte(compress(f[i], 1)) << (i % 8)
	}
	return m
}

// sliceForAppend takes a slice and a requested number of bytes. It returns a
// slice with the contents of the given slice followed by that many bytes and a
// second slice that aliases into it and contains only the extra bytes.
func sliceForAppend(in []byte, size int) (head, tail []byte) {
	if total := len(in) + size; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
