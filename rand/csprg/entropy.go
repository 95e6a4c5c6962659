package csprg

import (
	"crypto/rand"
	"io"

	"github.com/gtank/raaz/raazerr"
)

// EntropySource supplies seed material from outside the CSPRG, so tests
// can substitute a deterministic source without touching the OS. Spec.md
// treats the OS entropy source as an opaque black box: it's read from,
// never reasoned about statistically, and errors propagate rather than
// being retried internally.
type EntropySource interface {
	Fill(out []byte) error
}

// osEntropy draws from crypto/rand.Reader, Go's wrapper around the
// platform CSPRNG (getrandom(2), CryptGenRandom, /dev/urandom, ...).
// This is the one place this module is justified in relying on the
// standard library rather than a third-party dependency: spec.md frames
// OS entropy as a black box the rest of the system is seeded from, and
// crypto/rand.Reader already IS that platform-abstracted black box —
// there's no ecosystem library above it worth wrapping in its place.
type osEntropy struct{}

// OS is the default EntropySource, backed by crypto/rand.Reader.
var OS EntropySource = osEntropy{}

func (osEntropy) Fill(out []byte) error {
	if _, err := io.ReadFull(rand.Reader, out); err != nil {
		return raazerr.ErrEntropyUnavailable
	}
	return nil
}
