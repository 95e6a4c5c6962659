// Package csprg implements the fast-key-erasure CSPRG: a ChaCha20-backed
// generator whose sampling buffer is refilled from a key that is
// immediately replaced and erased, so that recovering the generator's
// current state reveals nothing about bytes already handed out.
package csprg

import (
	"sync"

	"github.com/gtank/raaz/internal/securemem"
	"github.com/gtank/raaz/stream/chacha20"
)

const (
	keySize = chacha20.KeySize // 32
	ivSize  = 8
	bufSize = 1024
	keyMaterialSize = keySize + ivSize // 40: consumed to rekey on every refill

	blocksPerRefill = bufSize / chacha20.BlockSize // 16

	// reseedThresholdBytes is 2^30 blocks (~64 GiB) of output since the last
	// reseed, per spec.md §4.I.
	reseedThresholdBytes = uint64(1) << 30 * uint64(chacha20.BlockSize)
)

// Generator is fast-key-erasure PRG state: a ChaCha20 (key, iv, counter)
// and a 1024-byte sampling buffer. The key, iv and sampling buffer are held
// in locked, zeroising secure memory; the block counter, buffer position
// and bytes-since-seed count are ordinary struct fields outside it. A
// zero-value Generator is not usable; build one with New.
type Generator struct {
	mu sync.Mutex

	cell           *securemem.Cell // [0:32]=key [32:40]=iv [40:1064]=buf
	pos            int
	counter        uint32
	bytesSinceSeed uint64

	entropy EntropySource
	strict  bool
}

// New constructs a Generator backed by the given entropy source and
// performs the mandatory first-use reseed before returning.
func New(entropy EntropySource, strict bool) (*Generator, error) {
	cell, err := securemem.NewCell(keyMaterialSize+bufSize, strict)
	if err != nil {
		return nil, err
	}
	g := &Generator{
		cell:    cell,
		pos:     bufSize,
		entropy: entropy,
		strict:  strict,
	}
	if err := g.reseed(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) key() []byte { return g.cell.Bytes()[0:keySize] }
func (g *Generator) iv() []byte  { return g.cell.Bytes()[keySize:keyMaterialSize] }
func (g *Generator) buf() []byte { return g.cell.Bytes()[keyMaterialSize:] }

// reseed draws fresh key material from the entropy source, resets the
// block counter and byte accounting, and immediately refills the
// sampling buffer. Callers must hold g.mu.
func (g *Generator) reseed() error {
	seed, err := securemem.NewCell(keyMaterialSize, g.strict)
	if err != nil {
		return err
	}
	defer seed.Destroy()

	if err := g.entropy.Fill(seed.Bytes()); err != nil {
		return err
	}
	copy(g.key(), seed.Bytes()[0:keySize])
	copy(g.iv(), seed.Bytes()[keySize:keyMaterialSize])

	g.counter = 0
	g.bytesSinceSeed = 0
	return g.refill()
}

// refill runs ChaCha20 for blocksPerRefill blocks to fill buf, then
// performs the fast-key-erasure step: the new (key, iv) is taken from the
// first keyMaterialSize bytes of that output and those bytes are zeroed
// before anything else can read them. Callers must hold g.mu.
func (g *Generator) refill() error {
	var key [chacha20.KeySize]byte
	copy(key[:], g.key())
	var nonce [chacha20.NonceSize]byte
	copy(nonce[:], g.iv()) // iv occupies the low 8 bytes; top 4 stay zero

	c := chacha20.NewAt(key, nonce, g.counter)
	buf := g.buf()
	for i := range buf {
		buf[i] = 0
	}
	if err := c.XORKeyStream(buf, buf); err != nil {
		return err
	}
	g.counter += blocksPerRefill

	copy(g.key(), buf[0:keySize])
	copy(g.iv(), buf[keySize:keyMaterialSize])
	for i := 0; i < keyMaterialSize; i++ {
		buf[i] = 0
	}

	g.pos = keyMaterialSize
	return nil
}

// Draw fills out with fresh pseudorandom bytes, refilling and reseeding
// as needed. Every byte handed to the caller is zeroed in the sampling
// buffer first.
func (g *Generator) Draw(out []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.draw(out)
}

func (g *Generator) draw(out []byte) error {
	buf := g.buf()
	for len(out) > 0 {
		if g.pos == bufSize {
			if err := g.refill(); err != nil {
				return err
			}
			buf = g.buf()
		}
		take := len(out)
		if room := bufSize - g.pos; take > room {
			take = room
		}
		copy(out[:take], buf[g.pos:g.pos+take])
		for i := 0; i < take; i++ {
			buf[g.pos+i] = 0
		}
		g.pos += take
		g.bytesSinceSeed += uint64(take)
		out = out[take:]
	}

	if g.bytesSinceSeed >= reseedThresholdBytes {
		return g.reseed()
	}
	return nil
}

// Reseed forces an immediate reseed from the entropy source, outside the
// normal byte-count threshold.
func (g *Generator) Reseed() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reseed()
}

// BytesSinceSeed reports how many output bytes this generator has handed
// out since its last reseed. It exists as the "internal test hook" spec.md
// asks for to observe reseed behavior, and is otherwise not meaningful to
// application code.
func (g *Generator) BytesSinceSeed() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bytesSinceSeed
}

// Destroy zeroises and releases the generator's secure memory. Safe to
// call more than once.
func (g *Generator) Destroy() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cell.Destroy()
}
