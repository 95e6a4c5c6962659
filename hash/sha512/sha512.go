// Package sha512 implements SHA-512 (FIPS 180-4) on top of raaz's
// block-primitive framework. It follows the same pure-Go reimplementation
// style as hash/sha256, generalized to 64-bit words, 128-byte blocks and a
// 128-bit length field.
package sha512

import (
	"encoding/hex"
	"math/bits"

	"github.com/gtank/raaz/internal/block"
	"github.com/gtank/raaz/internal/ctequal"
	"github.com/gtank/raaz/internal/endian"
	"github.com/gtank/raaz/raazerr"
)

const (
	// Size is the digest size in bytes.
	Size = 64
	// BlockSize is the block size in bytes.
	BlockSize = 128
	alignment = 8
)

var iv = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

var k = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

// chainState is SHA-512's working state: eight 64-bit big-endian words, plus
// a 128-bit total-length counter (lo, hi) for the length field at
// finalisation.
type chainState struct {
	h        [8]uint64
	lengthLo uint64
	lengthHi uint64
}

func (s *chainState) addLength(n uint64) {
	old := s.lengthLo
	s.lengthLo += n
	if s.lengthLo < old {
		s.lengthHi++
	}
}

type primitive struct{}

func (primitive) BlockSize() int        { return BlockSize }
func (primitive) AdditionalBlocks() int { return 0 }
func (primitive) BufferAlignment() int  { return alignment }

func (primitive) ProcessBlocks(s *chainState, buf []byte, nBlocks int) {
	for i := 0; i < nBlocks; i++ {
		compress(s, buf[i*BlockSize:(i+1)*BlockSize])
	}
	s.addLength(uint64(nBlocks) * BlockSize)
}

func (primitive) ProcessLast(s *chainState, buf []byte, nBytes int) {
	s.addLength(uint64(nBytes))
	// SHA-512 encodes the bit length as a 128-bit big-endian integer; byte
	// counts in this implementation never approach 2^61, so the high word
	// of the *bit* length is just lengthHi<<3 | lengthLo's top 3 bits.
	bitLenHi := s.lengthHi<<3 | s.lengthLo>>61
	bitLenLo := s.lengthLo << 3

	buf[nBytes] = 0x80
	if nBytes >= BlockSize-16 {
		compress(s, buf)
		var second [BlockSize]byte
		endian.PutBEUint64(second[BlockSize-16:], bitLenHi)
		endian.PutBEUint64(second[BlockSize-8:], bitLenLo)
		compress(s, second[:])
		return
	}
	endian.PutBEUint64(buf[BlockSize-16:], bitLenHi)
	endian.PutBEUint64(buf[BlockSize-8:], bitLenLo)
	compress(s, buf)
}

func compress(s *chainState, blk []byte) {
	var w [80]uint64
	for i := 0; i < 16; i++ {
		w[i] = endian.BEUint64(blk[i*8 : i*8+8])
	}
	for i := 16; i < 80; i++ {
		s0 := bits.RotateLeft64(w[i-15], -1) ^ bits.RotateLeft64(w[i-15], -8) ^ (w[i-15] >> 7)
		s1 := bits.RotateLeft64(w[i-2], -19) ^ bits.RotateLeft64(w[i-2], -61) ^ (w[i-2] >> 6)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, h := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4], s.h[5], s.h[6], s.h[7]

	for i := 0; i < 80; i++ {
		s1 := bits.RotateLeft64(e, -14) ^ bits.RotateLeft64(e, -18) ^ bits.RotateLeft64(e, -41)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + k[i] + w[i]
		s0 := bits.RotateLeft64(a, -28) ^ bits.RotateLeft64(a, -34) ^ bits.RotateLeft64(a, -39)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		h, g, f, e = g, f, e, d+t1
		d, c, b, a = c, b, a, t1+t2
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
	s.h[4] += e
	s.h[5] += f
	s.h[6] += g
	s.h[7] += h
}

// Digest is a SHA-512 value, a distinct Go type from every other hash's
// digest in this module.
type Digest [Size]byte

// Session is a streaming SHA-512 hash.
type Session struct {
	state  chainState
	driver *block.Driver[chainState]
}

// New starts a new SHA-512 hashing session.
func New() *Session {
	s := &Session{state: chainState{h: iv}}
	s.driver = block.NewDriver[chainState](primitive{})
	return s
}

// Write absorbs more input. It implements io.Writer.
func (s *Session) Write(p []byte) (int, error) {
	s.driver.Absorb(primitive{}, &s.state, p)
	return len(p), nil
}

// Sum finalises the session (non-destructively — it may be called more than
// once) and returns the digest.
func (s *Session) Sum() Digest {
	st := s.state
	drv := *s.driver
	drv.Finish(primitive{}, &st)

	var out Digest
	for i := 0; i < 8; i++ {
		endian.PutBEUint64(out[i*8:], st.h[i])
	}
	return out
}

// Sum512 hashes data in one shot.
func Sum512(data []byte) Digest {
	s := New()
	_, _ = s.Write(data)
	return s.Sum()
}

// String renders the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Bytes returns the digest's bytes.
func (d Digest) Bytes() []byte {
	return d[:]
}

// Equal reports whether two digests are the same, in constant time.
func (d Digest) Equal(other Digest) bool {
	return ctequal.Equal(d[:], other[:])
}

// ParseDigest decodes a lowercase-hex digest of exactly Size bytes.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != Size*2 {
		return d, raazerr.ErrInvalidDigestEncoding
	}
	n, err := hex.Decode(d[:], []byte(s))
	if err != nil || n != Size {
		return Digest{}, raazerr.ErrInvalidDigestEncoding
	}
	return d, nil
}
