package blobstore

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// formPart is one field of a multipart body. Parts without a file name are plain fields carrying Value.
type formPart struct {
	Field       string
	FileName    string
	ContentType string
	Value       []byte
	Path        string
}

func filePart(field, fileName, contentType, path string) formPart {
	return formPart{
		Field:       field,
		FileName:    fileName,
		ContentType: contentType,
		Path:        path,
	}
}

// checkSourceFile rejects a path that cannot be sent as a file part before any request is made.
func checkSourceFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrFileDoesNotExist, "could not find file: %s", path)
		}
		return errors.Wrapf(err, "failed to stat '%s'", path)
	}

	if fi.IsDir() {
		return errors.Wrapf(ErrFileDoesNotExist, "'%s' is a directory", path)
	}

	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// streamMultipart encodes parts into a pipe so file contents are never held in memory. The caller must close
// the returned reader, which stops the writer if the request ended early.
func streamMultipart(parts []formPart) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeParts(mw, parts))
	}()

	return pr, mw.FormDataContentType()
}

func writeParts(mw *multipart.Writer, parts []formPart) error {
	for _, p := range parts {
		if p.FileName == "" {
			if err := mw.WriteField(p.Field, string(p.Value)); err != nil {
				return err
			}
			continue
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(p.Field), quoteEscaper.Replace(p.FileName)))
		h.Set("Content-Type", p.ContentType)

		w, err := mw.CreatePart(h)
		if err != nil {
			return err
		}

		if err := copyPart(w, p); err != nil {
			return err
		}
	}

	return mw.Close()
}

func copyPart(w io.Writer, p formPart) error {
	if p.Path == "" {
		_, err := io.Copy(w, bytes.NewReader(p.Value))
		return err
	}

	f, err := os.Open(p.Path)
	if err != nil {
		return errors.Wrapf(err, "failed to open '%s'", p.Path)
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
