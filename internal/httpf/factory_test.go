package httpf

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rmorlok/bitsclient/internal/bctx"
	"github.com/rmorlok/bitsclient/internal/bslog/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_DoesNotFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			w.Header().Set("Location", "/elsewhere")
			w.WriteHeader(http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	f, err := CreateFactory(Config{}, nil)
	require.NoError(t, err)

	resp, err := f.New().Request().Method(http.MethodGet).URL(srv.URL + "/start").Send()
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/elsewhere", resp.Header.Get("Location"))
}

func TestFactory_TierTimeouts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(300 * time.Millisecond):
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f, err := CreateFactory(Config{
		Timeouts: Timeouts{
			TierFast: 50 * time.Millisecond,
			TierSlow: 5 * time.Second,
		},
	}, nil)
	require.NoError(t, err)

	_, err = f.ForTier(TierFast).New().Request().Method(http.MethodHead).URL(srv.URL).Send()
	require.Error(t, err)
	assert.True(t, IsTimeout(err), "expected timeout, got %v", err)

	resp, err := f.ForTier(TierSlow).New().Request().Method(http.MethodHead).URL(srv.URL).Send()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFactory_LogsRequestAndResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	logger, h := mock.NewTestLogger(t)
	f, err := CreateFactory(Config{}, logger)
	require.NoError(t, err)

	ctx := bctx.WithRequestID(context.Background(), "req-42")
	_, err = f.ForTier(TierFast).New().
		Use(WithContext(ctx)).
		Request().
		Method(http.MethodDelete).
		URL(srv.URL+"/packages/abc").
		SetHeader(bctx.RequestIDHeader, "req-42").
		Send()
	require.NoError(t, err)

	assert.Equal(t, []string{"Request", "Response"}, h.Messages(slog.LevelInfo))

	entries := h.Entries()
	v, ok := entries[0].Attr("path")
	require.True(t, ok)
	assert.Equal(t, "/packages/abc", v.String())

	v, ok = entries[0].Attr("tier")
	require.True(t, ok)
	assert.Equal(t, "fast", v.String())

	v, ok = entries[1].Attr("code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusNoContent), v.Int64())

	v, ok = entries[1].Attr("vcap_request_id")
	require.True(t, ok)
	assert.Equal(t, "req-42", v.String())
}

func TestFactory_CACert(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := CreateFactory(Config{CACertPath: filepath.Join(dir, "nope.pem")}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read ca cert")
	})

	t.Run("not pem", func(t *testing.T) {
		p := filepath.Join(dir, "garbage.pem")
		require.NoError(t, os.WriteFile(p, []byte("not a cert"), 0o600))

		_, err := CreateFactory(Config{CACertPath: p}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no certificates found")
	})

	t.Run("trusts tls server", func(t *testing.T) {
		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		p := filepath.Join(dir, "server.pem")
		require.NoError(t, os.WriteFile(p, pemEncode(srv.Certificate().Raw), 0o600))

		f, err := CreateFactory(Config{CACertPath: p}, nil)
		require.NoError(t, err)

		resp, err := f.New().Request().Method(http.MethodGet).URL(srv.URL).Send()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestIsTimeout(t *testing.T) {
	assert.False(t, IsTimeout(nil))
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.False(t, IsTimeout(context.Canceled))
}
