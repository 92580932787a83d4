package bitsfake

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rmorlok/bitsclient/blobstore/signature"
)

const buildpackCachePrefix = "/buildpack_cache/entries/"

var formFields = map[string]string{
	"packages":        "package",
	"droplets":        "droplet",
	"buildpacks":      "buildpack",
	"buildpack_cache": "buildpack_cache",
}

type checksums struct {
	SHA1   string `json:"sha1"`
	SHA256 string `json:"sha256"`
}

func checksumsFor(data []byte) checksums {
	s1 := sha1.Sum(data)
	s256 := sha256.Sum256(data)
	return checksums{
		SHA1:   hex.EncodeToString(s1[:]),
		SHA256: hex.EncodeToString(s256[:]),
	}
}

func (s *Server) blob(gctx *gin.Context) {
	p := gctx.Request.URL.Path

	if gctx.Query(signature.QuerySignature) != "" {
		method := gctx.Request.Method
		if verb := gctx.Query("verb"); verb != "" {
			method = strings.ToUpper(verb)
		}

		if err := s.signer.VerifyQuery(gctx.Request.Context(), method, p, gctx.Request.URL.Query()); err != nil {
			gctx.JSON(http.StatusForbidden, gin.H{"description": err.Error()})
			return
		}
	}

	switch gctx.Request.Method {
	case http.MethodHead:
		s.head(gctx, p)
	case http.MethodGet:
		s.get(gctx, p)
	case http.MethodPut:
		s.put(gctx, p)
	case http.MethodDelete:
		s.delete(gctx, p)
	}
}

func (s *Server) head(gctx *gin.Context, p string) {
	if _, ok := s.Get(p); !ok {
		gctx.Status(http.StatusNotFound)
		return
	}

	if s.opts.RedirectDownloads {
		s.redirect(gctx, p)
		return
	}

	gctx.Status(http.StatusOK)
}

func (s *Server) get(gctx *gin.Context, p string) {
	if base, ok := strings.CutSuffix(p, "/metadata"); ok {
		if data, found := s.Get(base); found {
			sums := checksumsFor(data)
			gctx.JSON(http.StatusOK, gin.H{
				"key":    base[strings.LastIndex(base, "/")+1:],
				"size":   len(data),
				"sha1":   sums.SHA1,
				"sha256": sums.SHA256,
			})
			return
		}
	}

	data, ok := s.Get(p)
	if !ok {
		gctx.JSON(http.StatusNotFound, gin.H{"description": "blob not found"})
		return
	}

	if s.opts.RedirectDownloads {
		s.redirect(gctx, p)
		return
	}

	gctx.Data(http.StatusOK, "application/octet-stream", data)
}

func (s *Server) redirect(gctx *gin.Context, p string) {
	gctx.Header("Location", "http://"+gctx.Request.Host+backingPrefix+p)
	gctx.Status(http.StatusFound)
}

func (s *Server) put(gctx *gin.Context, p string) {
	field, ok := formFields[resourceTypeOf(p)]
	if !ok {
		gctx.Status(http.StatusNotFound)
		return
	}

	fh, err := gctx.FormFile(field)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, gin.H{"description": "missing form field " + field})
		return
	}

	f, err := fh.Open()
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, gin.H{"description": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, gin.H{"description": err.Error()})
		return
	}

	s.Put(p, data)
	gctx.JSON(http.StatusCreated, checksumsFor(data))
}

func (s *Server) delete(gctx *gin.Context, p string) {
	if strings.HasPrefix(p, buildpackCachePrefix) {
		s.deletePrefix(p)
		gctx.Status(http.StatusNoContent)
		return
	}

	s.mu.Lock()
	_, ok := s.blobs[p]
	delete(s.blobs, p)
	s.mu.Unlock()

	if !ok {
		gctx.JSON(http.StatusNotFound, gin.H{"description": "blob not found"})
		return
	}

	gctx.Status(http.StatusNoContent)
}

// deletePrefix removes p and everything below it. The collection root removes all entries.
func (s *Server) deletePrefix(p string) {
	dir := strings.TrimSuffix(p, "/") + "/"

	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.blobs {
		if k == p || strings.HasPrefix(k, dir) {
			delete(s.blobs, k)
		}
	}
}

func (s *Server) backing(gctx *gin.Context) {
	data, ok := s.Get(gctx.Param("path"))
	if !ok {
		gctx.Status(http.StatusNotFound)
		return
	}

	gctx.Data(http.StatusOK, "application/octet-stream", data)
}

func (s *Server) sign(gctx *gin.Context) {
	signed := s.signer.Sign(gctx.Request.Context(), http.MethodGet, gctx.Param("path"))
	gctx.String(http.StatusOK, "http://"+gctx.Request.Host+signed.String())
}

func resourceTypeOf(p string) string {
	if strings.HasPrefix(p, buildpackCachePrefix) {
		return "buildpack_cache"
	}

	rt, _, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")
	return rt
}
