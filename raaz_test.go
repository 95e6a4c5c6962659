package raaz

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInMemoryDigestsAreDeterministic(t *testing.T) {
	data := []byte("the quick brown fox")

	if SHA256(data) != SHA256(data) {
		t.Fatal("SHA256 not deterministic")
	}
	if SHA512(data) != SHA512(data) {
		t.Fatal("SHA512 not deterministic")
	}
	if !BLAKE2b(data).Equal(BLAKE2b(data)) {
		t.Fatal("BLAKE2b not deterministic")
	}
	if !BLAKE2s(data).Equal(BLAKE2s(data)) {
		t.Fatal("BLAKE2s not deterministic")
	}
}

func TestFileDigestsMatchInMemory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	data := []byte("contents used for both file and in-memory hashing")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sha256File, err := SHA256File(path)
	if err != nil {
		t.Fatalf("SHA256File: %v", err)
	}
	if sha256File != SHA256(data) {
		t.Fatal("SHA256File does not match in-memory SHA256")
	}

	sha512File, err := SHA512File(path)
	if err != nil {
		t.Fatalf("SHA512File: %v", err)
	}
	if sha512File != SHA512(data) {
		t.Fatal("SHA512File does not match in-memory SHA512")
	}

	b2bFile, err := BLAKE2bFile(path)
	if err != nil {
		t.Fatalf("BLAKE2bFile: %v", err)
	}
	if !b2bFile.Equal(BLAKE2b(data)) {
		t.Fatal("BLAKE2bFile does not match in-memory BLAKE2b")
	}

	b2sFile, err := BLAKE2sFile(path)
	if err != nil {
		t.Fatalf("BLAKE2sFile: %v", err)
	}
	if !b2sFile.Equal(BLAKE2s(data)) {
		t.Fatal("BLAKE2sFile does not match in-memory BLAKE2s")
	}
}

func TestFileDigestMissingFileReturnsIoError(t *testing.T) {
	_, err := SHA256File(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
