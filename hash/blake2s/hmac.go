package blake2s

import "github.com/gtank/raaz/hmac"

// HMAC is an HMAC-BLAKE2s-256 value.
type HMAC [32]byte

func newHMACSession() hmac.Session[Digest] { return New256() }

// SumHMAC computes HMAC(key, msg) per RFC 2104, using full-width
// BLAKE2s-256 as the underlying hash.
func SumHMAC(key, msg []byte) HMAC {
	var out HMAC
	copy(out[:], hmac.Sum(newHMACSession, BlockSize, key, msg))
	return out
}

// Equal reports whether two MACs are the same, in constant time.
func (m HMAC) Equal(other HMAC) bool {
	return hmac.Equal(m[:], other[:])
}
