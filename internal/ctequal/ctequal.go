// Package ctequal is the single choke point for constant-time comparison
// used by every digest and HMAC type in raaz. The whole-library invariant is
// that comparing secrets never short-circuits on the first differing byte;
// crypto/subtle already implements exactly that loop (a single XOR-accumulate
// over the full length), so there is nothing to gain from a hand-rolled
// replacement here. See DESIGN.md for why this is the one place raaz leans
// on the standard library instead of a pack-sourced dependency.
package ctequal

import "crypto/subtle"

// Equal reports whether a and b hold the same bytes. Unlike bytes.Equal, the
// running time depends only on len(a) (once lengths are known to match),
// never on where the first mismatch occurs. Byte slices of different length
// are never equal, and that check is the only early exit.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
