package sha256

import "github.com/gtank/raaz/hmac"

// HMAC is an HMAC-SHA256 value, a distinct Go type from Digest even
// though both happen to be 32 bytes.
type HMAC [Size]byte

func newHMACSession() hmac.Session[Digest] { return New() }

// SumHMAC computes HMAC-SHA256(key, msg) per RFC 2104/RFC 4231.
func SumHMAC(key, msg []byte) HMAC {
	var out HMAC
	copy(out[:], hmac.Sum(newHMACSession, BlockSize, key, msg))
	return out
}

// Equal reports whether two MACs are the same, in constant time.
func (m HMAC) Equal(other HMAC) bool {
	return hmac.Equal(m[:], other[:])
}
