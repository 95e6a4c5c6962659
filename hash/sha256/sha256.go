// Package sha256 implements SHA-256 (FIPS 180-4) on top of raaz's
// block-primitive framework. The round constants, message schedule and
// compression loop are grounded on the reimplementation style seen across
// the example pack's pure-Go SHA-256 cores (e.g. solobase/packages/sha256),
// generalized here to stream through internal/block instead of padding the
// whole message up front.
package sha256

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
	Size = 32
	// BlockSize is the block size in bytes.
	BlockSize = 64
	// alignment is a safe default; SHA-256 has no SIMD buffer-alignment
	// requirement in this implementation, so it's just word alignment.
	alignment = 8
)

var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// chainState is SHA-256's working state: eight 32-bit big-endian words, plus
// the total-length counter the Merkle-Damgård padding needs at finalisation.
type chainState struct {
	h      [8]uint32
	length uint64 // total bytes absorbed
}

type primitive struct{}

func (primitive) BlockSize() int        { return BlockSize }
func (primitive) AdditionalBlocks() int { return 0 }
func (primitive) BufferAlignment() int  { return alignment }

func (primitive) ProcessBlocks(s *chainState, buf []byte, nBlocks int) {
	for i := 0; i < nBlocks; i++ {
		compress(s, buf[i*BlockSize:(i+1)*BlockSize])
	}
	s.length += uint64(nBlocks) * BlockSize
}

func (primitive) ProcessLast(s *chainState, buf []byte, nBytes int) {
	s.length += uint64(nBytes)
	bitLen := s.length * 8

	buf[nBytes] = 0x80
	if nBytes >= BlockSize-8 {
		compress(s, buf)
		var second [BlockSize]byte
		endian.PutBEUint64(second[BlockSize-8:], bitLen)
		compress(s, second[:])
		return
	}
	endian.PutBEUint64(buf[BlockSize-8:], bitLen)
	compress(s, buf)
}

func compress(s *chainState, blk []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = endian.BEUint32(blk[i*4 : i*4+4])
	}
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, h := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4], s.h[5], s.h[6], s.h[7]

	for i := 0; i < 64; i++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + k[i] + w[i]
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
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

// Digest is a SHA-256 value. Digests of different hashes are distinct Go
// types, so comparing a sha256.Digest to, say, a blake2b.Digest is a
// compile error rather than a runtime surprise.
type Digest [Size]byte

// Session is a streaming SHA-256 hash: initialise with New, Write repeatedly,
// then Sum once. Write never errors; SHA-256 over in-memory input is total.
type Session struct {
	state  chainState
	driver *block.Driver[chainState]
}

// New starts a new SHA-256 hashing session.
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

// Sum finalises the session and returns the digest. The session must not be
// written to again afterward.
func (s *Session) Sum() Digest {
	st := s.state // finalize on a copy; Sum may be called defensively more than once
	drv := *s.driver
	drv.Finish(primitive{}, &st)

	var out Digest
	for i := 0; i < 8; i++ {
		endian.PutBEUint32(out[i*4:], st.h[i])
	}
	return out
}

// Sum256 hashes data in one shot.
func Sum256(data []byte) Digest {
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
