package hmac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeDigest and fakeSession are a minimal Session[D] implementation used
// to exercise the generic engine in isolation from any real block hash:
// a running multiply-add "digest" over 8-byte blocks (a plain XOR fold
// would let the key cancel out between the inner and outer passes). It
// has no cryptographic
// value; it exists only to pin down Sum's key-padding and inner/outer
// pass wiring independently of hash/sha256's own hmac_test.go.
const fakeBlockSize = 8

type fakeDigest [fakeBlockSize]byte

func (d fakeDigest) Bytes() []byte { return d[:] }

type fakeSession struct {
	state fakeDigest
}

func newFakeSession() Session[fakeDigest] { return &fakeSession{} }

func (s *fakeSession) Write(p []byte) (int, error) {
	for i, b := range p {
		s.state[i%fakeBlockSize] = s.state[i%fakeBlockSize]*31 + b
	}
	return len(p), nil
}

func (s *fakeSession) Sum() fakeDigest { return s.state }

func TestSumIsDeterministic(t *testing.T) {
	key := []byte("key")
	msg := []byte("message body")

	a := Sum(newFakeSession, fakeBlockSize, key, msg)
	b := Sum(newFakeSession, fakeBlockSize, key, msg)
	require.Equal(t, a, b)
}

func TestSumDependsOnKeyAndMessage(t *testing.T) {
	base := Sum(newFakeSession, fakeBlockSize, []byte("key"), []byte("msg"))

	differentKey := Sum(newFakeSession, fakeBlockSize, []byte("other-key"), []byte("msg"))
	require.NotEqual(t, base, differentKey)

	differentMsg := Sum(newFakeSession, fakeBlockSize, []byte("key"), []byte("other msg"))
	require.NotEqual(t, base, differentMsg)
}

func TestSumHandlesOversizedKeyByHashingIt(t *testing.T) {
	shortKey := []byte("short")
	longKey := []byte("this key is much longer than one block")

	// Both should produce a fixed-size, well-formed MAC; in particular,
	// an oversized key must not panic or get silently truncated instead
	// of shrunk through a hash pass.
	a := Sum(newFakeSession, fakeBlockSize, shortKey, []byte("msg"))
	b := Sum(newFakeSession, fakeBlockSize, longKey, []byte("msg"))
	require.Len(t, a, fakeBlockSize)
	require.Len(t, b, fakeBlockSize)
	require.NotEqual(t, a, b)
}

func TestEqual(t *testing.T) {
	a := Sum(newFakeSession, fakeBlockSize, []byte("key"), []byte("msg"))
	b := Sum(newFakeSession, fakeBlockSize, []byte("key"), []byte("msg"))
	c := Sum(newFakeSession, fakeBlockSize, []byte("key"), []byte("different"))

	require.True(t, Equal(a, b))
	require.False(t, Equal(a, c))
}
