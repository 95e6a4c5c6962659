package chacha20

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// TestBlockFunctionVector checks the first keystream block against RFC
// 7539 section 2.3.2's worked example: key bytes 0x00..0x1f, nonce
// 00:00:00:09:00:00:00:4a:00:00:00:00, block counter 1.
func TestBlockFunctionVector(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	nonce := [NonceSize]byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x4a, 0x00, 0x00, 0x00, 0x00}

	c := NewAt(key, nonce, 1)
	zero := make([]byte, BlockSize)
	out := make([]byte, BlockSize)
	if err := c.XORKeyStream(out, zero); err != nil {
		t.Fatalf("XORKeyStream: %v", err)
	}

	want, _ := hex.DecodeString(
		"10f1e7e4d13b5915500fdd1fa32071c4c7d1f4c733c068030422aa9ac3d46c4" +
			"ed2826446079faa0914c2d705d98b02a2b5129cd1de164eb9cbd083e8a2503c4e",
	)
	if !bytes.Equal(out, want) {
		t.Errorf("keystream block = %x, want %x", out, want)
	}
}

// TestXORIsInvolution checks that XOR-ing a ciphertext back with the
// same key/nonce/counter recovers the plaintext, streamed in arbitrary
// chunk sizes.
func TestXORIsInvolution(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i * 3)
	}
	var nonce [NonceSize]byte
	for i := range nonce {
		nonce[i] = byte(i)
	}

	plaintext := make([]byte, 500)
	for i := range plaintext {
		plaintext[i] = byte(i)
	}

	enc := New(key, nonce)
	ciphertext := make([]byte, len(plaintext))
	if err := enc.XORKeyStream(ciphertext, plaintext); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	dec := New(key, nonce)
	recovered := make([]byte, 0, len(plaintext))
	chunks := []int{1, 63, 64, 65, 200, 171}
	off := 0
	for _, n := range chunks {
		end := off + n
		if end > len(ciphertext) {
			end = len(ciphertext)
		}
		buf := make([]byte, end-off)
		if err := dec.XORKeyStream(buf, ciphertext[off:end]); err != nil {
			t.Fatalf("decrypt chunk: %v", err)
		}
		recovered = append(recovered, buf...)
		off = end
	}

	if !bytes.Equal(recovered, plaintext) {
		t.Fatal("decrypted stream does not match original plaintext")
	}
}

func TestCounterExhaustion(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	c := NewAt(key, nonce, ^uint32(0)) // last valid counter value

	buf := make([]byte, BlockSize)
	if err := c.XORKeyStream(buf, buf); err != nil {
		t.Fatalf("first block should succeed: %v", err)
	}

	if err := c.XORKeyStream(buf, buf); err == nil {
		t.Fatal("expected counter exhaustion error on second block")
	}
}

func TestDifferentNoncesProduceDifferentKeystreams(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	var nonceA, nonceB [NonceSize]byte
	nonceB[0] = 1

	zero := make([]byte, BlockSize)
	outA := make([]byte, BlockSize)
	outB := make([]byte, BlockSize)

	_ = New(key, nonceA).XORKeyStream(outA, zero)
	_ = New(key, nonceB).XORKeyStream(outB, zero)

	if bytes.Equal(outA, outB) {
		t.Fatal("different nonces must produce different keystreams")
	}
}
