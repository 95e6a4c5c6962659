package blake2b

import "testing"

func TestStandardVectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{
			"",
			"786a02f742015903c6c6fd852552d272912f4740e15847618a86e217f71f5419d25e1031afee585313896444934eb04b903a685b1448b755d56f701afe9be8",
		},
		{
			"abc",
			"ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d17d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923",
		},
	}
	for _, c := range cases {
		got := Sum512([]byte(c.in)).String()
		if got != c.want {
			t.Errorf("BLAKE2b-512(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestStreamingEquivalence(t *testing.T) {
	msg := make([]byte, 300)
	for i := range msg {
		msg[i] = byte(i * 13)
	}
	want := Sum512(msg)

	splits := [][]int{{1, 1, 1}, {127, 1, 172}, {128, 128, 44}, {300}}
	for _, split := range splits {
		s := New512()
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
		if got := s.Sum(); got.String() != want.String() {
			t.Errorf("split %v: got %s, want %s", split, got, want)
		}
	}
}

func TestVariableOutputLength(t *testing.T) {
	for _, size := range []int{1, 16, 20, 32, 48, 64} {
		s, err := New(nil, nil, nil, size)
		if err != nil {
			t.Fatalf("New(size=%d): %v", size, err)
		}
		_, _ = s.Write([]byte("raaz"))
		if got := len(s.Sum()); got != size {
			t.Errorf("output size = %d, want %d", got, size)
		}
	}
}

func TestKeyedHash(t *testing.T) {
	key := make([]byte, KeyLength)
	for i := range key {
		key[i] = byte(i)
	}
	s, err := New(key, nil, nil, 64)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, _ = s.Write([]byte("message"))
	keyed := s.Sum()

	unkeyed := Sum512([]byte("message"))
	if keyed.Equal(unkeyed) {
		t.Fatal("keyed and unkeyed digests must differ")
	}
}

func TestSaltAndPersonalizationChangeOutput(t *testing.T) {
	base, err := New(nil, nil, nil, 32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, _ = base.Write([]byte("x"))
	baseSum := base.Sum()

	salted, err := New(nil, []byte("some-salt-value-"), nil, 32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, _ = salted.Write([]byte("x"))
	if salted.Sum().Equal(baseSum) {
		t.Fatal("salt must change the digest")
	}

	personalized, err := New(nil, nil, []byte("raaz-personal"), 32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, _ = personalized.Write([]byte("x"))
	if personalized.Sum().Equal(baseSum) {
		t.Fatal("personalization must change the digest")
	}
}

func TestRejectsOversizedParameters(t *testing.T) {
	if _, err := New(make([]byte, KeyLength+1), nil, nil, 32); err == nil {
		t.Fatal("expected error for oversized key")
	}
	if _, err := New(nil, make([]byte, SaltLength+1), nil, 32); err == nil {
		t.Fatal("expected error for oversized salt")
	}
	if _, err := New(nil, nil, nil, MaxOutput+1); err == nil {
		t.Fatal("expected error for oversized output")
	}
	if _, err := New(nil, nil, nil, 0); err == nil {
		t.Fatal("expected error for zero output")
	}
}

func TestDigestHexRoundTrip(t *testing.T) {
	d := Sum256([]byte("raaz"))
	parsed, err := ParseDigest(d.String(), 32)
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if !parsed.Equal(d) {
		t.Fatalf("round trip mismatch")
	}
}
