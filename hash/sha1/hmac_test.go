package sha1

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
			"b617318655057264e28bc0b6fb378c8ef146be00",
		},
		{
			"4a656665",
			"7768617420646f2079612077616e7420666f72206e6f7468696e673f",
			"effcdf6ae5eb2fa2d27416d5f184df9c259a7c79",
		},
		{
			"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			"dddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddd",
			"125d7342b9ac11cd91a39af48aa17b4f63f175d3",
		},
		{
			// Key longer than the block size: exercises the key-hashing
			// branch in hmac.Sum before the inner/outer passes run.
			"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			"54657374205573696e67204c6172676572205468616e20426c6f636b2d53697a65204b6579202d2048617368204b6579204669727374",
			"aa4ae5e15272d00e95705637ce8a3b55ed402112",
		},
	}
	for _, c := range cases {
		key, _ := hex.DecodeString(c.key)
		msg, _ := hex.DecodeString(c.msg)
		want, _ := hex.DecodeString(c.want)

		got := SumHMAC(key, msg)
		if !bytes.Equal(got[:], want) {
			t.Errorf("HMAC-SHA1(%x, %x) = %x, want %x", key, msg, got, want)
		}
	}
}
