// Package blake2s implements the BLAKE2s secure hashing algorithm (RFC
// 7693) with support for keying, salting and personalization, streamed
// through raaz's block-primitive framework. BLAKE2s is optimized for 8-
// to 32-bit platforms and produces digests of any size between 1 and 32
// bytes.
package blake2s

import (
	"encoding/hex"
	"errors"
	"math/bits"

	"github.com/gtank/raaz/internal/block"
	"github.com/gtank/raaz/internal/ctequal"
	"github.com/gtank/raaz/internal/endian"
	"github.com/gtank/raaz/raazerr"
)

const (
	// KeyLength is the maximum key length in bytes.
	KeyLength = 32
	// MaxOutput is the maximum digest size in bytes.
	MaxOutput = 32
	// SaltLength is the max size of the salt, in bytes.
	SaltLength = 8
	// SeparatorLength is the max size of the personalization string, in bytes.
	SeparatorLength = 8
	// RoundCount is the number of G-function rounds for BLAKE2s.
	RoundCount = 10
	// BlockSize is the size of a block buffer in bytes.
	BlockSize = 64
	alignment = 16

	iv0 uint32 = 0x6a09e667
	iv1 uint32 = 0xbb67ae85
	iv2 uint32 = 0x3c6ef372
	iv3 uint32 = 0xa54ff53a
	iv4 uint32 = 0x510e527f
	iv5 uint32 = 0x9b05688c
	iv6 uint32 = 0x1f83d9ab
	iv7 uint32 = 0x5be0cd19
)

// sigma is the lookup table of permutations of 0..15 used by the BLAKE2
// round function.
var sigma = [10][16]uint32{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// parameterBlock holds the user-visible tweaks to a BLAKE2s instance.
type parameterBlock struct {
	digestSize      byte
	keyLength       byte
	salt            []byte
	personalization []byte
}

func (p *parameterBlock) marshal() []byte {
	buf := make([]byte, 32)
	buf[0] = p.digestSize
	buf[1] = p.keyLength
	buf[2] = 1 // fanout: sequential mode
	buf[3] = 1 // depth: sequential mode
	copy(buf[16:], p.salt)
	copy(buf[24:], p.personalization)
	return buf
}

// chainState is BLAKE2s's working state: eight 32-bit words plus the
// 64-bit little-endian byte counter (t0, t1).
type chainState struct {
	h      [8]uint32
	t0, t1 uint32
}

func initChainState(p *parameterBlock) chainState {
	pb := p.marshal()
	return chainState{h: [8]uint32{
		iv0 ^ endian.LEUint32(pb[0:4]),
		iv1 ^ endian.LEUint32(pb[4:8]),
		iv2 ^ endian.LEUint32(pb[8:12]),
		iv3 ^ endian.LEUint32(pb[12:16]),
		iv4 ^ endian.LEUint32(pb[16:20]),
		iv5 ^ endian.LEUint32(pb[20:24]),
		iv6 ^ endian.LEUint32(pb[24:28]),
		iv7 ^ endian.LEUint32(pb[28:32]),
	}}
}

func (s *chainState) addLength(n uint32) {
	old := s.t0
	s.t0 += n
	if s.t0 < old {
		s.t1++
	}
}

type primitive struct{}

func (primitive) BlockSize() int        { return BlockSize }
func (primitive) AdditionalBlocks() int { return 0 }
func (primitive) BufferAlignment() int  { return alignment }

func (primitive) ProcessBlocks(s *chainState, buf []byte, nBlocks int) {
	for i := 0; i < nBlocks; i++ {
		s.addLength(BlockSize)
		compress(s, buf[i*BlockSize:(i+1)*BlockSize], 0, 0)
	}
}

func (primitive) ProcessLast(s *chainState, buf []byte, nBytes int) {
	s.addLength(uint32(nBytes))
	for i := nBytes; i < BlockSize; i++ {
		buf[i] = 0
	}
	compress(s, buf, ^uint32(0), 0)
}

func compress(s *chainState, blk []byte, f0, f1 uint32) {
	var m [16]uint32
	for i := 0; i < 16; i++ {
		m[i] = endian.LEUint32(blk[i*4 : i*4+4])
	}

	v := [16]uint32{
		s.h[0], s.h[1], s.h[2], s.h[3], s.h[4], s.h[5], s.h[6], s.h[7],
		iv0, iv1, iv2, iv3,
		iv4 ^ s.t0, iv5 ^ s.t1, iv6 ^ f0, iv7 ^ f1,
	}

	for round := 0; round < RoundCount; round++ {
		schedule := &sigma[round]
		v[0], v[4], v[8], v[12] = g(v[0], v[4], v[8], v[12], m[schedule[0]], m[schedule[1]])
		v[1], v[5], v[9], v[13] = g(v[1], v[5], v[9], v[13], m[schedule[2]], m[schedule[3]])
		v[2], v[6], v[10], v[14] = g(v[2], v[6], v[10], v[14], m[schedule[4]], m[schedule[5]])
		v[3], v[7], v[11], v[15] = g(v[3], v[7], v[11], v[15], m[schedule[6]], m[schedule[7]])
		v[0], v[5], v[10], v[15] = g(v[0], v[5], v[10], v[15], m[schedule[8]], m[schedule[9]])
		v[1], v[6], v[11], v[12] = g(v[1], v[6], v[11], v[12], m[schedule[10]], m[schedule[11]])
		v[2], v[7], v[8], v[13] = g(v[2], v[7], v[8], v[13], m[schedule[12]], m[schedule[13]])
		v[3], v[4], v[9], v[14] = g(v[3], v[4], v[9], v[14], m[schedule[14]], m[schedule[15]])
	}

	for i := 0; i < 8; i++ {
		s.h[i] ^= v[i] ^ v[i+8]
	}
}

// g is the BLAKE2s mixing function. The table lookups happen in the
// caller so this has a better chance of inlining.
func g(a, b, c, d, m0, m1 uint32) (uint32, uint32, uint32, uint32) {
	a = a + b + m0
	d = bits.RotateLeft32(d^a, -16)
	c = c + d
	b = bits.RotateLeft32(b^c, -12)
	a = a + b + m1
	d = bits.RotateLeft32(d^a, -8)
	c = c + d
	b = bits.RotateLeft32(b^c, -7)
	return a, b, c, d
}

// Digest is a BLAKE2s value. Output length is a construction parameter
// rather than a fixed constant, so Digest is a slice.
type Digest []byte

// String renders the digest as lowercase hex.
func (d Digest) String() string { return hex.EncodeToString(d) }

// Bytes returns the digest's bytes.
func (d Digest) Bytes() []byte { return d }

// Equal reports whether two digests are the same, in constant time.
func (d Digest) Equal(other Digest) bool { return ctequal.Equal(d, other) }

// Session is a streaming, configurable BLAKE2s hash.
type Session struct {
	state  chainState
	driver *block.Driver[chainState]
	size   int
}

// New starts a BLAKE2s session producing an outputBytes-byte digest,
// optionally keyed, salted and personalized.
func New(key, salt, personalization []byte, outputBytes int) (*Session, error) {
	if outputBytes <= 0 || outputBytes > MaxOutput {
		return nil, errors.New("blake2s: invalid output size")
	}
	if len(key) > KeyLength {
		return nil, errors.New("blake2s: key too large")
	}
	if len(salt) > SaltLength {
		return nil, errors.New("blake2s: salt too large")
	}
	if len(personalization) > SeparatorLength {
		return nil, errors.New("blake2s: personalization string too large")
	}

	params := &parameterBlock{
		digestSize:      byte(outputBytes),
		keyLength:       byte(len(key)),
		salt:            make([]byte, SaltLength),
		personalization: make([]byte, SeparatorLength),
	}
	copy(params.salt, salt)
	copy(params.personalization, personalization)

	s := &Session{
		state: initChainState(params),
		size:  outputBytes,
	}
	s.driver = block.NewDriver[chainState](primitive{})

	if len(key) > 0 {
		keyBlock := make([]byte, BlockSize)
		copy(keyBlock, key)
		_, _ = s.Write(keyBlock)
	}

	return s, nil
}

// New256 starts an unkeyed BLAKE2s-256 session, the variant raaz's facade
// exposes.
func New256() *Session {
	s, _ := New(nil, nil, nil, 32)
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

	out := make(Digest, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = byte(st.h[i/4] >> (8 * uint(i%4)))
	}
	return out
}

// Sum256 computes the unkeyed BLAKE2s-256 digest of data in one shot.
func Sum256(data []byte) Digest {
	s := New256()
	_, _ = s.Write(data)
	return s.Sum()
}

// ParseDigest decodes a lowercase-hex digest of the given byte length.
func ParseDigest(s string, size int) (Digest, error) {
	if len(s) != size*2 {
		return nil, raazerr.ErrInvalidDigestEncoding
	}
	out := make(Digest, size)
	n, err := hex.Decode(out, []byte(s))
	if err != nil || n != size {
		return nil, raazerr.ErrInvalidDigestEncoding
	}
	return out, nil
}
