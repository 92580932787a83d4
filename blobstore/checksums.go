package blobstore

import (
	"io"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
)

// Checksums are the digests the service computed for an upload, hex encoded.
type Checksums struct {
	SHA1   string `json:"sha1"`
	SHA256 string `json:"sha256"`
}

// Digest is the sha256 checksum as an OCI digest.
func (c *Checksums) Digest() digest.Digest {
	return digest.NewDigestFromEncoded(digest.SHA256, c.SHA256)
}

func verifySHA256(path, encoded string) error {
	expected := digest.NewDigestFromEncoded(digest.SHA256, encoded)
	if err := expected.Validate(); err != nil {
		return errors.Wrapf(ErrChecksumMismatch, "service reported invalid sha256 '%s'", encoded)
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open '%s'", path)
	}
	defer f.Close()

	verifier := expected.Verifier()
	if _, err := io.Copy(verifier, f); err != nil {
		return errors.Wrapf(err, "failed to read '%s'", path)
	}

	if !verifier.Verified() {
		return errors.Wrapf(ErrChecksumMismatch, "sha256 of '%s' does not match %s", path, expected)
	}

	return nil
}
