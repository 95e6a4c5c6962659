// Package hmac implements RFC 2104 HMAC generically over any of raaz's
// block hashes. A hash package gets HMAC support for free by exposing a
// New() constructor whose Session satisfies the Session[D] constraint
// below and re-exporting a thin wrapper — see hash/sha256's hmac.go for
// the pattern every hash package follows.
//
// This mirrors what the standard library's crypto/hmac does with
// hash.Hash, generalized with a type parameter because raaz digests are
// fixed-size byte arrays (or, for BLAKE2, variable-length slices), not
// the growable []byte crypto/hmac's Sum(b []byte) appends to.
package hmac

import "github.com/gtank/raaz/internal/ctequal"

// Digest is anything a hash package's digest type can hand back as raw
// bytes.
type Digest interface {
	Bytes() []byte
}

// Session is the subset of a hash package's streaming Session that HMAC
// needs: absorb bytes, then finalize to a digest.
type Session[D Digest] interface {
	Write(p []byte) (int, error)
	Sum() D
}

// Sum computes HMAC(key, msg) per RFC 2104. newSession must return a
// fresh, unused hashing session each time it's called; Sum calls it twice
// for the inner/outer passes, plus once more to shrink a key longer than
// blockSize.
func Sum[D Digest](newSession func() Session[D], blockSize int, key, msg []byte) []byte {
	if len(key) > blockSize {
		s := newSession()
		_, _ = s.Write(key)
		key = s.Sum().Bytes()
	}
	if len(key) < blockSize {
		padded := make([]byte, blockSize)
		copy(padded, key)
		key = padded
	}

	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	for i := 0; i < blockSize; i++ {
		ipad[i] = key[i] ^ 0x36
		opad[i] = key[i] ^ 0x5c
	}

	inner := newSession()
	_, _ = inner.Write(ipad)
	_, _ = inner.Write(msg)
	innerSum := inner.Sum().Bytes()

	outer := newSession()
	_, _ = outer.Write(opad)
	_, _ = outer.Write(innerSum)
	return outer.Sum().Bytes()
}

// Equal does a constant-time comparison of two MACs.
func Equal(a, b []byte) bool {
	return ctequal.Equal(a, b)
}
