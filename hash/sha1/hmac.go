package sha1

import "github.com/gtank/raaz/hmac"

// HMAC is an HMAC-SHA1 value. Kept for interop with legacy systems only —
// see the package comment on why SHA-1 itself isn't exposed more widely.
type HMAC [Size]byte

func newHMACSession() hmac.Session[Digest] { return New() }

// SumHMAC computes HMAC-SHA1(key, msg) per RFC 2104/RFC 2202.
func SumHMAC(key, msg []byte) HMAC {
	var out HMAC
	copy(out[:], hmac.Sum(newHMACSession, BlockSize, key, msg))
	return out
}

// Equal reports whether two MACs are the same, in constant time.
func (m HMAC) Equal(other HMAC) bool {
	return hmac.Equal(m[:], other[:])
}
