// Package endian supplies the typed big/little-endian word conversions that
// the hash cores build their chaining state and block views on top of. It
// generalizes the teacher's blake2s/pack.go helpers (u32LE/putU32LE) to both
// endiannesses and both 32-/64-bit word widths: SHA-1/256/512 view their
// blocks as big-endian words, BLAKE2b/BLAKE2s as little-endian words.
package endian

// BEUint32 decodes a big-endian uint32 from the first 4 bytes of b.
func BEUint32(b []byte) uint32 {
	_ = b[3] // bounds check hint to the compiler, see golang.org/issue/14808
	return uint32(b[3]) | uint32(b[2])<<8 | uint32(b[1])<<16 | uint32(b[0])<<24
}

// PutBEUint32 encodes n as a big-endian uint32 into the first 4 bytes of b.
func PutBEUint32(b []byte, n uint32) {
	_ = b[3]
	b[0] = byte(n >> 24)
	b[1] = byte(n >> 16)
	b[2] = byte(n >> 8)
	b[3] = byte(n)
}

// BEUint64 decodes a big-endian uint64 from the first 8 bytes of b.
func BEUint64(b []byte) uint64 {
	_ = b[7]
	hi := BEUint32(b[0:4])
	lo := BEUint32(b[4:8])
	return uint64(hi)<<32 | uint64(lo)
}

// PutBEUint64 encodes n as a big-endian uint64 into the first 8 bytes of b.
func PutBEUint64(b []byte, n uint64) {
	_ = b[7]
	PutBEUint32(b[0:4], uint32(n>>32))
	PutBEUint32(b[4:8], uint32(n))
}

// LEUint32 decodes a little-endian uint32 from the first 4 bytes of b.
func LEUint32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// PutLEUint32 encodes n as a little-endian uint32 into the first 4 bytes of b.
func PutLEUint32(b []byte, n uint32) {
	_ = b[3]
	b[0] = byte(n)
	b[1] = byte(n >> 8)
	b[2] = byte(n >> 16)
	b[3] = byte(n >> 24)
}

// LEUint64 decodes a little-endian uint64 from the first 8 bytes of b.
func LEUint64(b []byte) uint64 {
	_ = b[7]
	lo := LEUint32(b[0:4])
	hi := LEUint32(b[4:8])
	return uint64(lo) | uint64(hi)<<32
}

// PutLEUint64 encodes n as a little-endian uint64 into the first 8 bytes of b.
func PutLEUint64(b []byte, n uint64) {
	_ = b[7]
	PutLEUint32(b[0:4], uint32(n))
	PutLEUint32(b[4:8], uint32(n>>32))
}
