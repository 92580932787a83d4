// Package bitsfake is an in-memory bits-service for tests. It stores blobs by resource path, verifies signed
// URLs, serves the app stash and can be told to delay, redirect or fail requests.
package bitsfake

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rmorlok/bitsclient/blobstore/signature"
	"github.com/rmorlok/bitsclient/internal/bctx"
	"github.com/rmorlok/bitsclient/internal/bslog"
)

const (
	DefaultUsername         = "admin"
	DefaultPassword         = "admin"
	DefaultSigningKeySecret = "fake-secret"
	DefaultSigningKeyID     = "fake-key"

	backingPrefix = "/backing"
)

type Options struct {
	Username         string
	Password         string
	SigningKeySecret string
	SigningKeyID     string

	// Delay holds every request this long before it is handled. The wait ends early if the client goes away.
	Delay time.Duration

	// DelayMethods restricts Delay to these methods. Empty means every method.
	DelayMethods []string

	// RedirectDownloads answers GET and HEAD on stored blobs with a 302 to the fake backing store.
	RedirectDownloads bool

	Logger *slog.Logger
}

type RecordedRequest struct {
	Method    string
	Path      string
	RequestID string
}

type Server struct {
	opts   Options
	signer *signature.Factory
	logger *slog.Logger
	engine *gin.Engine
	srv    *httptest.Server

	mu        sync.RWMutex
	blobs     map[string][]byte
	stash     map[string][]byte
	overrides map[string]int
	requests  []RecordedRequest
}

func New(opts Options) *Server {
	if opts.Username == "" {
		opts.Username = DefaultUsername
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	if opts.SigningKeySecret == "" {
		opts.SigningKeySecret = DefaultSigningKeySecret
	}
	if opts.SigningKeyID == "" {
		opts.SigningKeyID = DefaultSigningKeyID
	}

	gin.SetMode(gin.TestMode)

	s := &Server{
		opts:      opts,
		signer:    signature.NewFactory(opts.SigningKeySecret, opts.SigningKeyID),
		logger:    bslog.NewBuilder(opts.Logger).WithComponent("bitsfake").Build(),
		engine:    gin.New(),
		blobs:     make(map[string][]byte),
		stash:     make(map[string][]byte),
		overrides: make(map[string]int),
	}

	s.engine.Use(gin.Recovery(), s.record, s.delay, s.override)
	s.Register(s.engine)

	return s
}

// NewTestServer starts a fake listening on a local port and stops it when the test ends.
func NewTestServer(tb testing.TB, opts Options) *Server {
	s := New(opts)
	s.Start()
	tb.Cleanup(s.Close)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() {
	s.srv = httptest.NewServer(s.engine)
}

func (s *Server) Close() {
	if s.srv != nil {
		s.srv.Close()
	}
}

// URL is the base URL of the started server. It serves as both private and public endpoint.
func (s *Server) URL() string {
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

func (s *Server) Options() Options {
	return s.opts
}

func (s *Server) Signer() *signature.Factory {
	return s.signer
}

// Put stores a blob under its resource path, e.g. "/packages/abc".
func (s *Server) Put(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[path] = append([]byte{}, data...)
}

func (s *Server) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[path]
	if !ok {
		return nil, false
	}
	return append([]byte{}, data...), true
}

func (s *Server) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.blobs))
	for p := range s.blobs {
		paths = append(paths, p)
	}
	return paths
}

// Override makes every request for method and path answer with code.
func (s *Server) Override(method, path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = code
}

func (s *Server) Requests() []RecordedRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]RecordedRequest{}, s.requests...)
}

func (s *Server) record(gctx *gin.Context) {
	r := RecordedRequest{
		Method:    gctx.Request.Method,
		Path:      gctx.Request.URL.Path,
		RequestID: gctx.GetHeader(bctx.RequestIDHeader),
	}

	s.mu.Lock()
	s.requests = append(s.requests, r)
	s.mu.Unlock()

	s.logger.Debug("fake request", "method", r.Method, "path", r.Path, "vcap_request_id", r.RequestID)
	gctx.Next()
}

func (s *Server) delay(gctx *gin.Context) {
	if s.opts.Delay > 0 && s.delays(gctx.Request.Method) {
		if !sleep(gctx.Request.Context(), s.opts.Delay) {
			gctx.Abort()
			return
		}
	}
	gctx.Next()
}

func (s *Server) delays(method string) bool {
	if len(s.opts.DelayMethods) == 0 {
		return true
	}
	for _, m := range s.opts.DelayMethods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Server) override(gctx *gin.Context) {
	s.mu.RLock()
	code, ok := s.overrides[gctx.Request.Method+" "+gctx.Request.URL.Path]
	s.mu.RUnlock()

	if ok {
		gctx.String(code, http.StatusText(code))
		gctx.Abort()
		return
	}
	gctx.Next()
}

func (s *Server) Register(g gin.IRouter) {
	for _, prefix := range []string{"/packages", "/droplets", "/buildpacks", "/buildpack_cache/entries"} {
		g.Match([]string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete}, prefix+"/*key", s.blob)
	}

	g.GET("/sign/*path", gin.BasicAuth(gin.Accounts{s.opts.Username: s.opts.Password}), s.sign)
	g.GET(backingPrefix+"/*path", s.backing)
	g.POST("/app_stash/matches", s.matches)
	g.POST("/app_stash/bundles", s.bundles)
}
