package bitsfake

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zip"
)

// StashEntry is one element of an app-stash manifest.
type StashEntry struct {
	Fn   string `json:"fn,omitempty"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	Mode string `json:"mode,omitempty"`
}

// AddToStash stores content in the app stash and returns its sha1.
func (s *Server) AddToStash(content []byte) string {
	sum := sha1.Sum(content)
	key := hex.EncodeToString(sum[:])

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stash[key] = append([]byte{}, content...)

	return key
}

func (s *Server) stashed(sha string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.stash[sha]
	return data, ok
}

func (s *Server) matches(gctx *gin.Context) {
	var entries []StashEntry
	if err := gctx.ShouldBindJSON(&entries); err != nil {
		gctx.JSON(http.StatusUnprocessableEntity, gin.H{"description": "manifest must be a json array"})
		return
	}

	known := make([]StashEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := s.stashed(e.SHA1); ok {
			known = append(known, e)
		}
	}

	gctx.JSON(http.StatusOK, known)
}

func (s *Server) bundles(gctx *gin.Context) {
	mediaType, _, _ := mime.ParseMediaType(gctx.GetHeader("Content-Type"))

	var (
		manifest []byte
		err      error
	)

	if strings.HasPrefix(mediaType, "multipart/") {
		manifest, err = s.stashUpload(gctx)
	} else {
		manifest, err = io.ReadAll(gctx.Request.Body)
	}
	if err != nil {
		gctx.JSON(http.StatusBadRequest, gin.H{"description": err.Error()})
		return
	}

	var entries []StashEntry
	if err := json.Unmarshal(manifest, &entries); err != nil {
		gctx.JSON(http.StatusUnprocessableEntity, gin.H{"description": "manifest must be a json array"})
		return
	}

	bundle, missing := s.bundle(entries)
	if missing != "" {
		gctx.JSON(http.StatusNotFound, gin.H{"description": "unknown sha1 " + missing})
		return
	}

	gctx.Data(http.StatusOK, "application/zip", bundle)
}

// stashUpload reads the manifest part and adds every file of the uploaded entries zip to the stash.
func (s *Server) stashUpload(gctx *gin.Context) ([]byte, error) {
	manifest, err := readFormFile(gctx, "resources")
	if err != nil {
		return nil, err
	}

	entries, err := readFormFile(gctx, "application")
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(entries), int64(len(entries)))
	if err != nil {
		return nil, err
	}

	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}

		s.AddToStash(data)
	}

	return manifest, nil
}

func readFormFile(gctx *gin.Context, field string) ([]byte, error) {
	fh, err := gctx.FormFile(field)
	if err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// bundle zips the stashed content of every entry under its file name. It returns the first unknown sha1, if any.
func (s *Server) bundle(entries []StashEntry) ([]byte, string) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		data, ok := s.stashed(e.SHA1)
		if !ok {
			return nil, e.SHA1
		}

		fh := &zip.FileHeader{Name: e.Fn, Method: zip.Deflate}
		fh.SetMode(parseMode(e.Mode))

		w, err := zw.CreateHeader(fh)
		if err != nil {
			return nil, e.SHA1
		}
		if _, err := w.Write(data); err != nil {
			return nil, e.SHA1
		}
	}

	if err := zw.Close(); err != nil {
		return nil, ""
	}

	return buf.Bytes(), ""
}

func parseMode(m string) os.FileMode {
	var mode os.FileMode
	for _, c := range m {
		if c < '0' || c > '7' {
			return 0o644
		}
		mode = mode<<3 | os.FileMode(c-'0')
	}
	if mode == 0 {
		return 0o644
	}
	return mode
}
