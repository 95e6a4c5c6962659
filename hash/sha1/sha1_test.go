package sha1

import "testing"

func TestStandardVectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{
			"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
			"84983e441c3bd26ebaae4aa1f95129e5e54670f1",
		},
		{
			"The quick brown fox jumps over the lazy dog",
			"2fd4e1c67a2d28fced849ee1bb76e7391b93eb12",
		},
	}
	for _, c := range cases {
		got := Sum1([]byte(c.in)).String()
		if got != c.want {
			t.Errorf("SHA-1(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestStreamingEquivalence(t *testing.T) {
	msg := make([]byte, 250)
	for i := range msg {
		msg[i] = byte(i * 17)
	}
	want := Sum1(msg)

	splits := [][]int{{1, 1, 1}, {63, 1, 186}, {64, 64, 64, 58}, {250}}
	for _, split := range splits {
		s := New()
		i := 0
		for _, n := range split {
			end := i + n
			if end > len(msg) {
				end = len(msg)
			}
			_, _ = s.Write(msg[i:end])
			i = end
		}
		if i < len(msg) {
			_, _ = s.Write(msg[i:])
		}
		if got := s.Sum(); got != want {
			t.Errorf("split %v: got %s, want %s", split, got, want)
		}
	}
}

func TestDigestHexRoundTrip(t *testing.T) {
	d := Sum1([]byte("raaz"))
	parsed, err := ParseDigest(d.String())
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if !parsed.Equal(d) {
		t.Fatalf("round trip mismatch")
	}
}

func TestParseDigestRejectsBadInput(t *testing.T) {
	if _, err := ParseDigest("not-hex-not-hex-not-hex"); err == nil {
		t.Fatal("expected error for non-hex input")
	}
	if _, err := ParseDigest("abcd"); err == nil {
		t.Fatal("expected error for wrong-length input")
	}
}

func TestEqualRejectsDifferentDigests(t *testing.T) {
	a := Sum1([]byte("a"))
	b := Sum1([]byte("b"))
	if a.Equal(b) {
		t.Fatal("distinct digests compared equal")
	}
}
