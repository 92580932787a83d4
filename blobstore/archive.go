package blobstore

import (
	"os"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
)

// createEmptyArchive writes a zip archive with no entries to a temp file. The caller removes it.
func createEmptyArchive() (string, error) {
	f, err := os.CreateTemp("", "bits-empty-*.zip")
	if err != nil {
		return "", errors.Wrap(err, "failed to create empty archive")
	}

	zw := zip.NewWriter(f)
	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", errors.Wrap(err, "failed to write empty archive")
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(err, "failed to write empty archive")
	}

	return f.Name(), nil
}
