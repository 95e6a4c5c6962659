// Package securemem provides the locked, zeroised byte regions that key
// material and CSPRG state live in. It wraps github.com/awnumar/memguard,
// which already implements the "lock pages where the OS allows it, wipe on
// release" discipline spec.md §3/§5 asks for; this package adds the
// strict/non-strict degraded-allocation policy and the guaranteed-release
// (defer-safe, idempotent Destroy) contract raaz's callers rely on.
package securemem

import (
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/sirupsen/logrus"

	"github.com/gtank/raaz/raazerr"
)

// Cell is a secure byte region: locked against paging where the platform
// supports it, zeroised on Destroy. A zero-value Cell is not usable; build
// one with NewCell.
type Cell struct {
	buf    *memguard.LockedBuffer
	plain  []byte // used only on the unlocked-fallback path
	locked bool
}

// NewCell allocates a secure region of n bytes. If the platform cannot lock
// the pages backing the region, strict controls what happens: in strict
// mode the allocation fails with raazerr.ErrSecureAllocFailure; otherwise a
// warning is logged and an ordinary (unlocked, but still zeroised-on-Destroy)
// heap buffer is used instead, matching spec.md §5's degraded-allocation
// policy.
func NewCell(n int, strict bool) (*Cell, error) {
	buf, err := lockedBuffer(n)
	if err != nil {
		if strict {
			return nil, fmt.Errorf("%w: %v", raazerr.ErrSecureAllocFailure, err)
		}
		logrus.WithError(err).Warn("raaz/securemem: locked allocation failed, falling back to unlocked memory")
		return &Cell{plain: make([]byte, n), locked: false}, nil
	}
	return &Cell{buf: buf, locked: true}, nil
}

// lockedBuffer isolates the memguard call so NewCell can treat any failure
// (including a panic, which memguard's safety facilities can raise on a
// catastrophic allocation failure) uniformly as an error.
func lockedBuffer(n int) (buf *memguard.LockedBuffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("memguard: %v", r)
		}
	}()
	b := memguard.NewBuffer(n)
	if b == nil || b.Size() != n {
		return nil, fmt.Errorf("memguard: buffer allocation returned no usable region")
	}
	return b, nil
}

// Bytes returns the region's backing slice. The slice is only valid until
// Destroy is called; callers must not retain it past that point.
func (c *Cell) Bytes() []byte {
	if c.locked {
		return c.buf.Bytes()
	}
	return c.plain
}

// Locked reports whether this cell's pages are actually locked against
// paging, as opposed to running on the degraded unlocked-fallback path.
func (c *Cell) Locked() bool {
	return c.locked
}

// Destroy zeroises the region and releases it. It is safe to call multiple
// times and safe to defer unconditionally on every exit path, including
// error paths — it is the scoped-release mechanism spec.md §5 requires in
// place of RAII/destructors.
func (c *Cell) Destroy() {
	if c.locked {
		c.buf.Destroy()
		return
	}
	for i := range c.plain {
		c.plain[i] = 0
	}
	c.plain = nil
}
