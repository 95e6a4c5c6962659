package sha512

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestHMACVectors(t *testing.T) {
	key, _ := hex.DecodeString("0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	msg, _ := hex.DecodeString("4869205468657265")
	want, _ := hex.DecodeString(
		"87aa7cdea5ef619d4ff0b4241a1d6cb02379f4e2ce4ec2787ad0b30545e17cdedaa833b7d6b8a702038b274eaea3f4e4be9d914eeb61f1702e696c203a126854",
	)

	got := SumHMAC(key, msg)
	if !bytes.Equal(got[:], want) {
		t.Errorf("HMAC-SHA512(%x, %x) = %x, want %x", key, msg, got, want)
	}
}

func TestHMACEqual(t *testing.T) {
	a := SumHMAC([]byte("k"), []byte("m"))
	b := SumHMAC([]byte("k"), []byte("m"))
	if !a.Equal(b) {
		t.Fatal("identical HMACs compared unequal")
	}
}
