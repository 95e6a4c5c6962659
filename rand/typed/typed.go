// Package typed provides the uniformly-distributed-only typed random API
// spec.md §4.J calls for: Fill synthesizes a value of T by drawing raw
// bytes from a csprg.Generator into its backing representation. This is
// sound only for types whose every bit pattern is equally likely and
// equally valid — plain integers — which is why Uniform is a closed set
// rather than an open interface: a refined type like "a die roll in
// 1..6" must not get a default filler from this package, because naively
// reducing uniform bytes mod 6 is not itself uniform.
package typed

import (
	"unsafe"

	"github.com/gtank/raaz/internal/securemem"
	"github.com/gtank/raaz/rand/csprg"
)

// Uniform is the closed set of types whose byte representation is
// uniformly distributed end to end, so Fill can synthesize one by
// drawing raw bytes with no bias-correction step.
type Uniform interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64
}

// Fill draws len(T) pseudorandom bytes from g and decodes them as a
// little-endian T.
func Fill[T Uniform](g *csprg.Generator) (T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	buf := make([]byte, size)
	if err := g.Draw(buf); err != nil {
		return zero, err
	}

	var out uint64
	for i := size - 1; i >= 0; i-- {
		out = out<<8 | uint64(buf[i])
	}
	for i := range buf {
		buf[i] = 0
	}
	return T(out), nil
}

// Bytes draws n fresh pseudorandom bytes from g.
func Bytes(g *csprg.Generator, n int) ([]byte, error) {
	out := make([]byte, n)
	if err := g.Draw(out); err != nil {
		return nil, err
	}
	return out, nil
}

// FillCell writes pseudorandom bytes directly into an existing secure
// cell, so a sensitive value (a freshly generated key, say) is never
// copied through ordinary, non-locked memory on its way in.
func FillCell(g *csprg.Generator, c *securemem.Cell) error {
	return g.Draw(c.Bytes())
}
