// Package raaz is the top-level facade over the module's hash, MAC,
// stream cipher and CSPRG components: one-shot digest functions over
// in-memory data and files, re-exported so callers who don't need
// streaming control or BLAKE2's salt/personalization knobs don't have to
// reach into hash/sha256, hash/blake2b, and so on directly.
package raaz

import (
	"io"
	"os"

	"github.com/gtank/raaz/hash/blake2b"
	"github.com/gtank/raaz/hash/blake2s"
	"github.com/gtank/raaz/hash/sha256"
	"github.com/gtank/raaz/hash/sha512"
	"github.com/gtank/raaz/raazerr"
)

// SHA256 computes the SHA-256 digest of data in one shot.
func SHA256(data []byte) sha256.Digest { return sha256.Sum256(data) }

// SHA512 computes the SHA-512 digest of data in one shot.
func SHA512(data []byte) sha512.Digest { return sha512.Sum512(data) }

// BLAKE2b computes the unkeyed BLAKE2b-512 digest of data in one shot.
func BLAKE2b(data []byte) blake2b.Digest { return blake2b.Sum512(data) }

// BLAKE2s computes the unkeyed BLAKE2s-256 digest of data in one shot.
func BLAKE2s(data []byte) blake2s.Digest { return blake2s.Sum256(data) }

// hashReader streams r into w, the Go realization of spec.md's abstract
// byte-source contract — io.Reader already is that contract here, so no
// separate interface is introduced.
func hashReader(w io.Writer, r io.Reader) error {
	_, err := io.Copy(w, r)
	return err
}

// SHA256File hashes the named file's contents.
func SHA256File(path string) (sha256.Digest, error) {
	s := sha256.New()
	if err := hashFile(path, s); err != nil {
		return sha256.Digest{}, err
	}
	return s.Sum(), nil
}

// SHA512File hashes the named file's contents.
func SHA512File(path string) (sha512.Digest, error) {
	s := sha512.New()
	if err := hashFile(path, s); err != nil {
		return sha512.Digest{}, err
	}
	return s.Sum(), nil
}

// BLAKE2bFile hashes the named file's contents with unkeyed BLAKE2b-512.
func BLAKE2bFile(path string) (blake2b.Digest, error) {
	s := blake2b.New512()
	if err := hashFile(path, s); err != nil {
		return nil, err
	}
	return s.Sum(), nil
}

// BLAKE2sFile hashes the named file's contents with unkeyed BLAKE2s-256.
func BLAKE2sFile(path string) (blake2s.Digest, error) {
	s := blake2s.New256()
	if err := hashFile(path, s); err != nil {
		return nil, err
	}
	return s.Sum(), nil
}

// hashFile opens path and streams it through w, reporting any I/O failure
// as a raazerr.IoError rather than a bare os/io error.
func hashFile(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return raazerr.NewIoError("open", path, err)
	}
	defer f.Close()

	if err := hashReader(w, f); err != nil {
		return raazerr.NewIoError("read", path, err)
	}
	return nil
}
