package endian

import "testing"

func TestBERoundTrip32(t *testing.T) {
	buf := make([]byte, 4)
	PutBEUint32(buf, 0xdeadbeef)
	if got := BEUint32(buf); got != 0xdeadbeef {
		t.Fatalf("got %x, want deadbeef", got)
	}
	if buf[0] != 0xde || buf[3] != 0xef {
		t.Fatalf("unexpected byte order: %x", buf)
	}
}

func TestLERoundTrip32(t *testing.T) {
	buf := make([]byte, 4)
	PutLEUint32(buf, 0xdeadbeef)
	if got := LEUint32(buf); got != 0xdeadbeef {
		t.Fatalf("got %x, want deadbeef", got)
	}
	if buf[0] != 0xef || buf[3] != 0xde {
		t.Fatalf("unexpected byte order: %x", buf)
	}
}

func TestBERoundTrip64(t *testing.T) {
	buf := make([]byte, 8)
	PutBEUint64(buf, 0x0102030405060708)
	if got := BEUint64(buf); got != 0x0102030405060708 {
		t.Fatalf("got %x", got)
	}
	if buf[0] != 0x01 || buf[7] != 0x08 {
		t.Fatalf("unexpected byte order: %x", buf)
	}
}

func TestLERoundTrip64(t *testing.T) {
	buf := make([]byte, 8)
	PutLEUint64(buf, 0x0102030405060708)
	if got := LEUint64(buf); got != 0x0102030405060708 {
		t.Fatalf("got %x", got)
	}
	if buf[0] != 0x08 || buf[7] != 0x01 {
		t.Fatalf("unexpected byte order: %x", buf)
	}
}
