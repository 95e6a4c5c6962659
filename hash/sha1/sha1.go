// Package sha1 implements SHA-1 (FIPS 180-4) on top of raaz's
// block-primitive framework, in the same style as hash/sha256.
//
// SHA-1 is cryptographically broken for collision resistance and is not
// exposed through the raaz facade's general-purpose hash set or the CLI's
// accepted hash names. It is kept — and fully tested — solely so
// sha1.SumHMAC/HMAC-SHA1 can interoperate with systems that still require
// it, per spec.md's own "legacy, HMAC-only" guidance.
package sha1

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
	Size = 20
	// BlockSize is the block size in bytes.
	BlockSize = 64
	alignment = 8
)

var iv = [5]uint32{
	0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0,
}

type chainState struct {
	h      [5]uint32
	length uint64
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
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = endian.BEUint32(blk[i*4 : i*4+4])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4]

	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = (b & c) | (^b & d)
			k = 0x5A827999
		case i < 40:
			f = b ^ c ^ d
			k = 0x6ED9EBA1
		case i < 60:
			f = (b & c) | (b & d) | (c & d)
			k = 0x8F1BBCDC
		default:
			f = b ^ c ^ d
			k = 0xCA62C1D6
		}
		t := bits.RotateLeft32(a, 5) + f + e + k + w[i]
		e = d
		d = c
		c = bits.RotateLeft32(b, 30)
		b = a
		a = t
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
	s.h[4] += e
}

// Digest is a SHA-1 value, a distinct Go type from every other hash's
// digest in this module.
type Digest [Size]byte

// Session is a streaming SHA-1 hash.
type Session struct {
	state  chainState
	driver *block.Driver[chainState]
}

// New starts a new SHA-1 hashing session.
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

// Sum finalises the session (non-destructively) and returns the digest.
func (s *Session) Sum() Digest {
	st := s.state
	drv := *s.driver
	drv.Finish(primitive{}, &st)

	var out Digest
	for i := 0; i < 5; i++ {
		endian.PutBEUint32(out[i*4:], st.h[i])
	}
	return out
}

// Sum1 hashes data in one shot.
func Sum1(data []byte) Digest {
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
