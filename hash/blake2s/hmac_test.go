package blake2s

import "testing"

func TestHMACDeterministicAndKeyed(t *testing.T) {
	a := SumHMAC([]byte("key"), []byte("message"))
	b := SumHMAC([]byte("key"), []byte("message"))
	if !a.Equal(b) {
		t.Fatal("HMAC must be deterministic")
	}

	c := SumHMAC([]byte("other-key"), []byte("message"))
	if a.Equal(c) {
		t.Fatal("different keys must produce different MACs")
	}
}
