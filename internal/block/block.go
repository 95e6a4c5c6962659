// Package block implements the primitive-agnostic driver described in
// spec.md §4.D: every block-oriented primitive (the SHA family, BLAKE2b/s,
// and ChaCha20's keystream generator) supplies only a block size, a state
// type, and two pure functions — ProcessBlocks for whole blocks, ProcessLast
// for the final partial block and its domain-specific padding — and this
// package supplies the absorb/finalize orchestration on top.
package block

import "unsafe"

// Primitive is the contract a block-oriented algorithm must satisfy to be
// driven by Driver. S is the primitive's chaining-state type.
type Primitive[S any] interface {
	// BlockSize is the number of bytes consumed per call to ProcessBlocks.
	BlockSize() int
	// AdditionalBlocks is the extra scratch the implementation needs beyond
	// the message buffer itself, expressed in whole blocks.
	AdditionalBlocks() int
	// BufferAlignment is the byte alignment ProcessBlocks/ProcessLast
	// require of the buffers they're handed.
	BufferAlignment() int
	// ProcessBlocks consumes nBlocks*BlockSize() bytes of aligned input,
	// updating state. Pure transformation; no I/O.
	ProcessBlocks(state *S, buf []byte, nBlocks int)
	// ProcessLast consumes the final partial block (0 <= nBytes < BlockSize())
	// and applies the primitive's padding/finalisation rule.
	ProcessLast(state *S, buf []byte, nBytes int)
}

// Driver orchestrates absorption and finalisation for any Primitive. It owns
// the partial-block buffer and the total-length counter; it is otherwise
// stateless with respect to the primitive it drives.
type Driver[S any] struct {
	blockSize     int
	alignment     int
	scratchBlocks int // capacity of scratch, in whole blocks

	buf    []byte // length == blockSize; buf[:offset] is pending input
	offset int

	lengthLo uint64
	lengthHi uint64 // carries on lengthLo overflow, giving a 128-bit count

	scratch []byte // aligned scratch for unaligned inbound slices
}

// NewDriver allocates a Driver sized for p.
func NewDriver[S any](p Primitive[S]) *Driver[S] {
	bs := p.BlockSize()
	align := p.BufferAlignment()
	if align < 1 {
		align = 1
	}
	scratchBlocks := p.AdditionalBlocks() + 1
	raw := make([]byte, scratchBlocks*bs+align)
	skip := 0
	if r := int(uintptr(unsafe.Pointer(&raw[0])) % uintptr(align)); r != 0 {
		skip = align - r
	}
	return &Driver[S]{
		blockSize:     bs,
		alignment:     align,
		scratchBlocks: scratchBlocks,
		buf:           make([]byte, bs),
		scratch:       raw[skip : skip+scratchBlocks*bs],
	}
}

// Len reports the total number of bytes absorbed so far, as a 128-bit
// little-endian-ordered (lo, hi) pair; hi is non-zero only after 2^64
// bytes. The hash primitives keep their own length counters in their
// chaining state and do not read this one.
func (d *Driver[S]) Len() (lo, hi uint64) {
	return d.lengthLo, d.lengthHi
}

func (d *Driver[S]) addLength(n uint64) {
	old := d.lengthLo
	d.lengthLo += n
	if d.lengthLo < old {
		d.lengthHi++
	}
}

// Absorb feeds data into the driver, calling p.ProcessBlocks for every
// whole block that becomes available and stashing any remainder in the
// partial-block buffer, exactly as spec.md §4.D describes.
func (d *Driver[S]) Absorb(p Primitive[S], state *S, data []byte) {
	bs := d.blockSize
	for len(data) > 0 {
		free := bs - d.offset
		if len(data) < free {
			copy(d.buf[d.offset:], data)
			d.offset += len(data)
			d.addLength(uint64(len(data)))
			return
		}

		// Fill the partial block to capacity and emit it.
		copy(d.buf[d.offset:], data[:free])
		data = data[free:]
		d.addLength(uint64(free))
		d.offset = bs
		p.ProcessBlocks(state, d.alignedView(d.buf), 1)
		d.offset = 0

		// Consume as many further whole blocks as possible straight out of
		// the caller's slice, without copying through the partial buffer.
		if nBlocks := len(data) / bs; nBlocks > 0 {
			consumed := nBlocks * bs
			d.processAligned(p, state, data[:consumed], nBlocks)
			d.addLength(uint64(consumed))
			data = data[consumed:]
		}
	}
}

// processAligned calls p.ProcessBlocks over nBlocks blocks of buf. When buf
// already satisfies the driver's alignment it's passed straight through;
// otherwise it's copied into the driver's scratch space scratchBlocks at a
// time, since scratch only ever holds that many blocks — handing the whole
// (possibly much larger) remainder to a single copy would silently truncate
// it below nBlocks*blockSize.
func (d *Driver[S]) processAligned(p Primitive[S], state *S, buf []byte, nBlocks int) {
	bs := d.blockSize
	if d.alignment <= 1 || isAligned(buf, d.alignment) {
		p.ProcessBlocks(state, buf, nBlocks)
		return
	}
	for nBlocks > 0 {
		chunkBlocks := d.scratchBlocks
		if chunkBlocks > nBlocks {
			chunkBlocks = nBlocks
		}
		chunkLen := chunkBlocks * bs
		n := copy(d.scratch, buf[:chunkLen])
		p.ProcessBlocks(state, d.scratch[:n], chunkBlocks)
		buf = buf[chunkLen:]
		nBlocks -= chunkBlocks
	}
}

// Finish zero-pads the pending partial block and calls p.ProcessLast on it.
// Finish leaves the driver's offset unchanged, but callers should treat a Driver as
// consumed after Finish — the hash-session lifecycle in spec.md §3 only
// allows one finalisation per session.
func (d *Driver[S]) Finish(p Primitive[S], state *S) {
	for i := d.offset; i < d.blockSize; i++ {
		d.buf[i] = 0
	}
	p.ProcessLast(state, d.buf, d.offset)
}

// alignedView returns buf if it already satisfies the driver's alignment
// contract, or a copy in the driver's aligned scratch space otherwise.
func (d *Driver[S]) alignedView(buf []byte) []byte {
	if d.alignment <= 1 || isAligned(buf, d.alignment) {
		return buf
	}
	n := copy(d.scratch, buf)
	return d.scratch[:n]
}

func isAligned(buf []byte, alignment int) bool {
	if len(buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&buf[0]))%uintptr(alignment) == 0
}
