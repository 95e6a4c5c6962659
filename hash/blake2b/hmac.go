package blake2b

import "github.com/gtank/raaz/hmac"

// HMAC is an HMAC-BLAKE2b-512 value.
type HMAC [64]byte

func newHMACSession() hmac.Session[Digest] { return New512() }

// SumHMAC computes HMAC(key, msg) per RFC 2104, using full-width
// BLAKE2b-512 as the underlying hash.
func SumHMAC(key, msg []byte) HMAC {
	var out HMAC
	copy(out[:], hmac.Sum(newHMACSession, BlockSize, key, msg))
	return out
}

// Equal reports whether two MACs are the same, in constant time.
func (m HMAC) Equal(other HMAC) bool {
	return hmac.Equal(m[:], other[:])
}
