package sha256

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestHMACVectors(t *testing.T) {
	cases := []struct {
		key  string
		msg  string
		want string
	}{
		{
			"0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b",
			"4869205468657265",
			"b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
		},
		{
			"4a656665",
			"7768617420646f2079612077616e7420666f72206e6f7468696e673f",
			"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		},
	}
	for _, c := range cases {
		key, _ := hex.DecodeString(c.key)
		msg, _ := hex.DecodeString(c.msg)
		want, _ := hex.DecodeString(c.want)

		got := SumHMAC(key, msg)
		if !bytes.Equal(got[:], want) {
			t.Errorf("HMAC-SHA256(%x, %x) = %x, want %x", key, msg, got, want)
		}
	}
}

func TestHMACEqual(t *testing.T) {
	a := SumHMAC([]byte("k"), []byte("m"))
	b := SumHMAC([]byte("k"), []byte("m"))
	if !a.Equal(b) {
		t.Fatal("identical HMACs compared unequal")
	}
	c := SumHMAC([]byte("k"), []byte("n"))
	if a.Equal(c) {
		t.Fatal("distinct HMACs compared equal")
	}
}
