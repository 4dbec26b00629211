package mlkem

// encryptionKey is the K-PKE public key. The matrix A-hat is expanded once
// from rho and cached, since both encryption and re-encryption need it.
type encryptionKey struct {
	rho [32]byte
	t   [k768]nttElement
	a   [k768 * k768]nttElement
}

// decryptionKey is the K-PKE secret key, kept in the NTT domain.
type decryptionKey struct {
	s [k768]nttElement
}

// pkeKeyGen derives a K-PKE key pair from the 32-byte seed d.
// Implements FIPS 203 Algorithm 13 (K-PKE.KeyGen).
func pkeKeyGen(d *[32]byte) (ek encryptionKey, dk decryptionKey) {
	rho, sigma := hashG(d[:], []byte{k768})
	ek.rho = rho
	ek.a = expandMatrix(&rho)

	var nonce byte
	for i := range dk.s {
		b := prf(&sigma, nonce)
		dk.s[i] = ntt(samplePolyCBD(b[:]))
		nonce++
	}
	var e [k768]nttElement
	for i := range e {
		b := prf(&sigma, nonce)
		e[i] = ntt(samplePolyCBD(b[:]))
		nonce++
	}

	// t = A * s + e, left in the NTT domain
	for i := range ek.t {
		ek.t[i] = polyAdd(nttDot(ek.a[i*k768:(i+1)*k768], dk.s[:]), e[i])
	}
	return ek, dk
}

// bytes appends the encoded encryption key t || rho to b.
func (ek *encryptionKey) bytes(b []byte) []byte {
	for i := range ek.t {
		b = encodePoly12(b, &ek.t[i])
	}
	return append(b, ek.rho[:]...)
}

// parseEncryptionKey decodes an encryption key and expands its matrix.
// The modulus check of FIPS 203 Section 7.2 is applied to every coefficient.
func parseEncryptionKey(b []byte) (encryptionKey, error) {
	var ek encryptionKey
	if len(b) != PublicKeySize768 {
		return ek, lengthError("encapsulation key", len(b), PublicKeySize768)
	}
	for i := range ek.t {
		var err error
		ek.t[i], err = decodePoly12(b[:encodingSize12])
		if err != nil {
			return ek, err
		}
		b = b[encodingSize12:]
	}
	copy(ek.rho[:], b)
	ek.a = expandMatrix(&ek.rho)
	return ek, nil
}

// encrypt appends the encryption of m under randomness r to dst.
// Implements FIPS 203 Algorithm 14 (K-PKE.Encrypt).
func (ek *encryptionKey) encrypt(dst []byte, m, r *[32]byte) []byte {
	var nonce byte
	var y [k768]nttElement
	for i := range y {
		b := prf(r, nonce)
		y[i] = ntt(samplePolyCBD(b[:]))
		nonce++
	}
	var e1 [k768]ringElement
	for i := range e1 {
		b := prf(r, nonce)
		e1[i] = samplePolyCBD(b[:])
		nonce++
	}
	b := prf(r, nonce)
	e2 := samplePolyCBD(b[:])

	// u = NTT^-1(A^T * y) + e1
	var u [k768]ringElement
	var col [k768]nttElement
	for i := range u {
		for j := range col {
			col[j] = ek.a[j*k768+i]
		}
		u[i] = polyAdd(invNTT(nttDot(col[:], y[:])), e1[i])
	}

	// v = NTT^-1(t^T * y) + e2 + Decompress_1(m)
	v := polyAdd(invNTT(nttDot(ek.t[:], y[:])), e2)
	v = polyAdd(v, polyFromMessage(m))

	for i := range u {
		dst = compressPoly10(dst, u[i])
	}
	return compressPoly4(dst, v)
}

// decrypt recovers the message from a ciphertext of CiphertextSize768 bytes.
// Every ciphertext of that size decodes, so decrypt cannot fail.
// Implements FIPS 203 Algorithm 15 (K-PKE.Decrypt).
func (dk *decryptionKey) decrypt(c []byte) [messageSize]byte {
	var u [k768]nttElement
	for i := range u {
		u[i] = ntt(decompressPoly10(c[i*encodingSize10 : (i+1)*encodingSize10]))
	}
	v := decompressPoly4(c[k768*encodingSize10:])

	// w = v - NTT^-1(s^T * u)
	w := polySub(v, invNTT(nttDot(dk.s[:], u[:])))
	return polyToMessage(w)
}

// bytes appends the encoded decryption key to b.
func (dk *decryptionKey) bytes(b []byte) []byte {
	for i := range dk.s {
		b = encodePoly12(b, &dk.s[i])
	}
	return b
}
