// Package chacha20 implements the ChaCha20 stream cipher as specified by
// RFC 7539: a 256-bit key, a 96-bit nonce, a 32-bit block counter, and 20
// rounds (ten applications of the double round).
//
// The quarter-round function below follows the same "lift the rotation
// amounts and mixing out of a loop body" idiom as the BLAKE2 G functions
// this module's hash packages are built on — both are ARX (add-rotate-xor)
// ciphers, and both read better unrolled than table-driven.
package chacha20

import (
	"math/bits"

	"github.com/gtank/raaz/internal/endian"
	"github.com/gtank/raaz/raazerr"
)

const (
	// KeySize is the ChaCha20 key size in bytes.
	KeySize = 32
	// NonceSize is the ChaCha20 (IETF) nonce size in bytes.
	NonceSize = 12
	// BlockSize is the size in bytes of one keystream block.
	BlockSize = 64
)

var constants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// Cipher is a ChaCha20 keystream generator. It is not safe for concurrent
// use; each goroutine encrypting a stream needs its own Cipher.
type Cipher struct {
	key     [8]uint32
	nonce   [3]uint32
	counter uint32

	block     [BlockSize]byte
	offset    int // bytes of block already consumed
	exhausted bool
}

// New constructs a Cipher starting at block counter 0, per RFC 7539.
func New(key [KeySize]byte, nonce [NonceSize]byte) *Cipher {
	return NewAt(key, nonce, 0)
}

// NewAt constructs a Cipher starting at the given initial block counter,
// letting a caller seek into the keystream (e.g. to skip block zero, which
// some protocols reserve for a Poly1305 key).
func NewAt(key [KeySize]byte, nonce [NonceSize]byte, counter uint32) *Cipher {
	c := &Cipher{counter: counter, offset: BlockSize}
	for i := 0; i < 8; i++ {
		c.key[i] = endian.LEUint32(key[i*4 : i*4+4])
	}
	for i := 0; i < 3; i++ {
		c.nonce[i] = endian.LEUint32(nonce[i*4 : i*4+4])
	}
	return c
}

func qr(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 16)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 12)
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 8)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 7)
	return a, b, c, d
}

// generateBlock runs the 20-round ChaCha20 block function at the current
// counter, fills c.block with its little-endian serialization, and
// advances the counter.
func (c *Cipher) generateBlock() {
	x0, x1, x2, x3 := constants[0], constants[1], constants[2], constants[3]
	x4, x5, x6, x7 := c.key[0], c.key[1], c.key[2], c.key[3]
	x8, x9, x10, x11 := c.key[4], c.key[5], c.key[6], c.key[7]
	x12, x13, x14, x15 := c.counter, c.nonce[0], c.nonce[1], c.nonce[2]

	for i := 0; i < 10; i++ {
		x0, x4, x8, x12 = qr(x0, x4, x8, x12)
		x1, x5, x9, x13 = qr(x1, x5, x9, x13)
		x2, x6, x10, x14 = qr(x2, x6, x10, x14)
		x3, x7, x11, x15 = qr(x3, x7, x11, x15)

		x0, x5, x10, x15 = qr(x0, x5, x10, x15)
		x1, x6, x11, x12 = qr(x1, x6, x11, x12)
		x2, x7, x8, x13 = qr(x2, x7, x8, x13)
		x3, x4, x9, x14 = qr(x3, x4, x9, x14)
	}

	words := [16]uint32{
		x0 + constants[0], x1 + constants[1], x2 + constants[2], x3 + constants[3],
		x4 + c.key[0], x5 + c.key[1], x6 + c.key[2], x7 + c.key[3],
		x8 + c.key[4], x9 + c.key[5], x10 + c.key[6], x11 + c.key[7],
		x12 + c.counter, x13 + c.nonce[0], x14 + c.nonce[1], x15 + c.nonce[2],
	}
	for i, w := range words {
		endian.PutLEUint32(c.block[i*4:], w)
	}

	c.counter++
	c.offset = 0
	if c.counter == 0 {
		// The block we just generated used the last valid counter value;
		// any further refill would repeat a keystream block.
		c.exhausted = true
	}
}

func (c *Cipher) refill() error {
	if c.exhausted {
		return raazerr.ErrCounterExhausted
	}
	c.generateBlock()
	return nil
}

// XORKeyStream XORs each byte of src with the next byte of keystream and
// writes the result to dst. dst and src may overlap exactly but dst must
// be at least as long as src. It returns ErrCounterExhausted if the
// stream's 32-bit block counter would wrap.
func (c *Cipher) XORKeyStream(dst, src []byte) error {
	if len(dst) < len(src) {
		panic("chacha20: dst shorter than src")
	}
	for i := 0; i < len(src); i++ {
		if c.offset == BlockSize {
			if err := c.refill(); err != nil {
				return err
			}
		}
		dst[i] = src[i] ^ c.block[c.offset]
		c.offset++
	}
	return nil
}
