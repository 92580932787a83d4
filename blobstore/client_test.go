package blobstore

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"github.com/rmorlok/bitsclient/internal/bctx"
	"github.com/rmorlok/bitsclient/internal/bslog/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genmock "gopkg.in/h2non/gentleman-mock.v2"
	gctx "gopkg.in/h2non/gentleman.v2/context"
	"gopkg.in/h2non/gentleman.v2/plugin"
	"gopkg.in/h2non/gock.v1"
)

const (
	testPrivateEndpoint = "http://bits.service.internal"
	testPublicEndpoint  = "https://bits.example.com"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		PrivateEndpoint:  testPrivateEndpoint,
		PublicEndpoint:   testPublicEndpoint,
		Username:         "admin",
		Password:         "admin-password",
		SigningKeySecret: "s3cr3t",
		SigningKeyID:     "key-id",
	}
}

// requestCounter counts every request that reaches the transport layer.
type requestCounter struct {
	n atomic.Int64
}

func (rc *requestCounter) plugin() plugin.Plugin {
	return plugin.NewRequestPlugin(func(ctx *gctx.Context, h gctx.Handler) {
		rc.n.Add(1)
		h.Next(ctx)
	})
}

func newTestClient(t *testing.T, rt ResourceType, opts ...Option) *Client {
	t.Helper()
	t.Cleanup(gock.Off)

	c, err := NewClient(testConfig(), rt, append([]Option{WithPlugins(genmock.Plugin)}, opts...)...)
	require.NoError(t, err)
	return c
}

func multipartMatcher(t *testing.T, onForm func(req *http.Request)) gock.MatchFunc {
	return func(req *http.Request, _ *gock.Request) (bool, error) {
		require.NoError(t, req.ParseMultipartForm(32<<20))
		onForm(req)
		return true, nil
	}
}

func TestNewClient(t *testing.T) {
	t.Run("missing resource type", func(t *testing.T) {
		_, err := NewClient(testConfig(), "")
		require.ErrorIs(t, err, ErrResourceTypeNotPresent)
	})

	t.Run("unknown resource type", func(t *testing.T) {
		_, err := NewClient(testConfig(), ResourceType("images"))
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig()
		cfg.Password = ""
		_, err := NewClient(cfg, Packages)
		require.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), "please provide password")
	})

	t.Run("missing ca cert", func(t *testing.T) {
		cfg := testConfig()
		cfg.CACertPath = filepath.Join(t.TempDir(), "missing.pem")
		_, err := NewClient(cfg, Packages)
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("valid", func(t *testing.T) {
		c, err := NewClient(testConfig(), Droplets)
		require.NoError(t, err)
		assert.Equal(t, Droplets, c.ResourceType())
	})
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		code     int
		expected bool
	}{
		{"ok", http.StatusOK, true},
		{"redirect", http.StatusFound, true},
		{"not found", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, Packages)
			genmock.New(testPrivateEndpoint).
				Head("/packages/abc").
				Reply(tt.code)

			exists, err := c.Exists(ctx, "abc")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
			assert.True(t, gock.IsDone())
		})
	}

	t.Run("server error", func(t *testing.T) {
		logger, h := mock.NewTestLogger(t)
		c := newTestClient(t, Packages, WithLogger(logger))
		genmock.New(testPrivateEndpoint).
			Head("/packages/abc").
			Reply(http.StatusInternalServerError)

		_, err := c.Exists(ctx, "abc")
		require.ErrorIs(t, err, ErrUnexpectedResponse)

		var be *BlobstoreError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, http.StatusInternalServerError, be.StatusCode())
		assert.Contains(t, h.Messages(slog.LevelError), "UnexpectedResponseCode")
	})

	t.Run("empty key", func(t *testing.T) {
		c := newTestClient(t, Packages)
		_, err := c.Exists(ctx, "")
		require.ErrorIs(t, err, ErrEmptyKey)
	})
}

func TestClient_RequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c := newTestClient(t, Droplets, WithRequestID("configured"))
		genmock.New(testPrivateEndpoint).
			Head("/droplets/abc").
			MatchHeader(bctx.RequestIDHeader, "^from-ctx$").
			Reply(http.StatusOK)

		_, err := c.Exists(bctx.WithRequestID(context.Background(), "from-ctx"), "abc")
		require.NoError(t, err)
		assert.True(t, gock.IsDone())
	})

	t.Run("configured fallback", func(t *testing.T) {
		c := newTestClient(t, Droplets, WithRequestID("configured"))
		genmock.New(testPrivateEndpoint).
			Head("/droplets/abc").
			MatchHeader(bctx.RequestIDHeader, "^configured$").
			Reply(http.StatusOK)

		_, err := c.Exists(context.Background(), "abc")
		require.NoError(t, err)
		assert.True(t, gock.IsDone())
	})
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := newTestClient(t, Packages)
		src := writeTemp(t, "package bits")

		var field string
		var content []byte
		var resources string
		genmock.New(testPrivateEndpoint).
			Put("/packages/abc").
			AddMatcher(multipartMatcher(t, func(req *http.Request) {
				for k := range req.MultipartForm.File {
					field = k
				}
				f, err := req.MultipartForm.File["package"][0].Open()
				require.NoError(t, err)
				content, _ = io.ReadAll(f)
				resources = req.FormValue("resources")
			})).
			Reply(http.StatusCreated).
			JSON(map[string]string{"sha1": "abc", "sha256": "def"})

		sums, err := c.Upload(ctx, UploadInput{
			SourcePath: src,
			Key:        "abc",
			Resources:  []map[string]string{{"fn": "app.rb", "sha1": "123"}},
		})
		require.NoError(t, err)
		assert.Equal(t, &Checksums{SHA1: "abc", SHA256: "def"}, sums)
		assert.Equal(t, "package", field)
		assert.Equal(t, "package bits", string(content))
		assert.JSONEq(t, `[{"fn":"app.rb","sha1":"123"}]`, resources)
		assert.True(t, gock.IsDone())
	})

	t.Run("buildpack cache field name", func(t *testing.T) {
		c := newTestClient(t, BuildpackCache)
		src := writeTemp(t, "cache")

		var field string
		genmock.New(testPrivateEndpoint).
			Put("/buildpack_cache/entries/app/stack").
			AddMatcher(multipartMatcher(t, func(req *http.Request) {
				for k := range req.MultipartForm.File {
					field = k
				}
			})).
			Reply(http.StatusCreated).
			JSON(map[string]string{"sha1": "abc", "sha256": "def"})

		_, err := c.Upload(ctx, UploadInput{SourcePath: src, Key: "app/stack"})
		require.NoError(t, err)
		assert.Equal(t, "buildpack_cache", field)
	})

	t.Run("empty source sends an empty zip", func(t *testing.T) {
		c := newTestClient(t, Droplets)

		var content []byte
		genmock.New(testPrivateEndpoint).
			Put("/droplets/abc").
			AddMatcher(multipartMatcher(t, func(req *http.Request) {
				f, err := req.MultipartForm.File["droplet"][0].Open()
				require.NoError(t, err)
				content, _ = io.ReadAll(f)
			})).
			Reply(http.StatusCreated).
			JSON(map[string]string{"sha1": "abc", "sha256": "def"})

		_, err := c.Upload(ctx, UploadInput{Key: "abc"})
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(content), 2)
		assert.Equal(t, "PK", string(content[:2]))
	})

	t.Run("empty body", func(t *testing.T) {
		c := newTestClient(t, Packages)
		genmock.New(testPrivateEndpoint).
			Put("/packages/abc").
			Reply(http.StatusCreated)

		_, err := c.Upload(ctx, UploadInput{SourcePath: writeTemp(t, "x"), Key: "abc"})
		require.ErrorIs(t, err, ErrUnexpectedResponse)
		assert.Contains(t, err.Error(), "expected body with json payload")
	})

	t.Run("missing keys", func(t *testing.T) {
		c := newTestClient(t, Packages)
		genmock.New(testPrivateEndpoint).
			Put("/packages/abc").
			Reply(http.StatusCreated).
			JSON(map[string]string{"sha1": "abc"})

		_, err := c.Upload(ctx, UploadInput{SourcePath: writeTemp(t, "x"), Key: "abc"})
		require.ErrorIs(t, err, ErrUnexpectedResponse)
		assert.Contains(t, err.Error(), "sha256")
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, Packages)
		genmock.New(testPrivateEndpoint).
			Put("/packages/abc").
			Reply(http.StatusInternalServerError).
			BodyString("disk full")

		_, err := c.Upload(ctx, UploadInput{SourcePath: writeTemp(t, "x"), Key: "abc"})
		var be *BlobstoreError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, http.StatusInternalServerError, be.StatusCode())
		assert.Equal(t, "disk full", string(be.Response.Body))
	})

	t.Run("missing source file makes no request", func(t *testing.T) {
		counter := &requestCounter{}
		c := newTestClient(t, Packages, WithPlugins(counter.plugin()))

		_, err := c.Upload(ctx, UploadInput{SourcePath: filepath.Join(t.TempDir(), "nope.zip"), Key: "abc"})
		require.ErrorIs(t, err, ErrFileDoesNotExist)
		assert.Equal(t, int64(0), counter.n.Load())
	})

	t.Run("directory source makes no request", func(t *testing.T) {
		counter := &requestCounter{}
		c := newTestClient(t, Packages, WithPlugins(counter.plugin()))

		_, err := c.Upload(ctx, UploadInput{SourcePath: t.TempDir(), Key: "abc"})
		require.ErrorIs(t, err, ErrFileDoesNotExist)
		require.NotErrorIs(t, err, ErrTransportTimeout)
		assert.Contains(t, err.Error(), "is a directory")
		assert.Equal(t, int64(0), counter.n.Load())
	})

	t.Run("verified checksums", func(t *testing.T) {
		cfg := testConfig()
		cfg.VerifyChecksums = true
		t.Cleanup(gock.Off)
		c, err := NewClient(cfg, Packages, WithPlugins(genmock.Plugin))
		require.NoError(t, err)

		genmock.New(testPrivateEndpoint).
			Put("/packages/abc").
			Reply(http.StatusCreated).
			JSON(map[string]string{"sha1": "abc", "sha256": digest.FromString("verified").Encoded()})
		genmock.New(testPrivateEndpoint).
			Put("/packages/def").
			Reply(http.StatusCreated).
			JSON(map[string]string{"sha1": "abc", "sha256": digest.FromString("something else").Encoded()})

		_, err = c.Upload(ctx, UploadInput{SourcePath: writeTemp(t, "verified"), Key: "abc"})
		require.NoError(t, err)

		_, err = c.Upload(ctx, UploadInput{SourcePath: writeTemp(t, "verified"), Key: "def"})
		require.ErrorIs(t, err, ErrChecksumMismatch)
	})
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("direct", func(t *testing.T) {
		c := newTestClient(t, Droplets)
		genmock.New(testPrivateEndpoint).
			Get("/droplets/abc").
			Reply(http.StatusOK).
			BodyString("droplet bits")

		dst := filepath.Join(t.TempDir(), "nested", "dir", "droplet.tgz")
		mode := os.FileMode(0o600)
		require.NoError(t, c.Download(ctx, DownloadInput{Key: "abc", DestinationPath: dst, Mode: &mode}))

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "droplet bits", string(data))

		info, err := os.Stat(dst)
		require.NoError(t, err)
		assert.Equal(t, mode, info.Mode().Perm())
	})

	t.Run("follows one redirect without service headers", func(t *testing.T) {
		c := newTestClient(t, Droplets, WithRequestID("req-1"))
		genmock.New(testPrivateEndpoint).
			Get("/droplets/abc").
			Reply(http.StatusFound).
			SetHeader("Location", "https://blobs.example.com/store/abc?sig=xyz")

		var leakedID string
		genmock.New("https://blobs.example.com").
			Get("/store/abc").
			AddMatcher(func(req *http.Request, _ *gock.Request) (bool, error) {
				leakedID = req.Header.Get(bctx.RequestIDHeader)
				return true, nil
			}).
			Reply(http.StatusOK).
			BodyString("from the backing store")

		dst := filepath.Join(t.TempDir(), "droplet.tgz")
		require.NoError(t, c.Download(ctx, DownloadInput{Key: "abc", DestinationPath: dst}))

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "from the backing store", string(data))
		assert.Empty(t, leakedID)
		assert.True(t, gock.IsDone())
	})

	t.Run("relative redirect", func(t *testing.T) {
		c := newTestClient(t, Droplets)
		genmock.New(testPrivateEndpoint).
			Get("/droplets/abc").
			Reply(http.StatusFound).
			SetHeader("Location", "/elsewhere/abc")
		genmock.New(testPrivateEndpoint).
			Get("/elsewhere/abc").
			Reply(http.StatusOK).
			BodyString("relocated")

		dst := filepath.Join(t.TempDir(), "droplet.tgz")
		require.NoError(t, c.Download(ctx, DownloadInput{Key: "abc", DestinationPath: dst}))

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "relocated", string(data))
	})

	t.Run("second redirect is not followed", func(t *testing.T) {
		c := newTestClient(t, Droplets)
		genmock.New(testPrivateEndpoint).
			Get("/droplets/abc").
			Reply(http.StatusFound).
			SetHeader("Location", "https://blobs.example.com/one")
		genmock.New("https://blobs.example.com").
			Get("/one").
			Reply(http.StatusFound).
			SetHeader("Location", "https://blobs.example.com/two")

		dst := filepath.Join(t.TempDir(), "droplet.tgz")
		err := c.Download(ctx, DownloadInput{Key: "abc", DestinationPath: dst})

		var be *BlobstoreError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, http.StatusFound, be.StatusCode())
		assert.NoFileExists(t, dst)
	})

	t.Run("not found leaves no file", func(t *testing.T) {
		c := newTestClient(t, Droplets)
		genmock.New(testPrivateEndpoint).
			Get("/droplets/abc").
			Reply(http.StatusNotFound)

		dst := filepath.Join(t.TempDir(), "droplet.tgz")
		err := c.Download(ctx, DownloadInput{Key: "abc", DestinationPath: dst})
		require.ErrorIs(t, err, ErrUnexpectedResponse)
		assert.NoFileExists(t, dst)
	})
}

func TestClient_CopyBetweenKeys(t *testing.T) {
	c := newTestClient(t, Buildpacks)

	genmock.New(testPrivateEndpoint).
		Get("/buildpacks/src").
		Reply(http.StatusOK).
		BodyString("buildpack zip")

	var copied []byte
	genmock.New(testPrivateEndpoint).
		Put("/buildpacks/dst").
		AddMatcher(multipartMatcher(t, func(req *http.Request) {
			f, err := req.MultipartForm.File["buildpack"][0].Open()
			require.NoError(t, err)
			copied, _ = io.ReadAll(f)
		})).
		Reply(http.StatusCreated).
		JSON(map[string]string{"sha1": "abc", "sha256": "def"})

	sums, err := c.CopyBetweenKeys(context.Background(), "src", "dst")
	require.NoError(t, err)
	assert.Equal(t, "abc", sums.SHA1)
	assert.Equal(t, "buildpack zip", string(copied))
	assert.True(t, gock.IsDone())
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		c := newTestClient(t, Packages)
		genmock.New(testPrivateEndpoint).
			Delete("/packages/abc").
			Reply(http.StatusNoContent)

		require.NoError(t, c.Delete(ctx, "abc"))
		assert.True(t, gock.IsDone())
	})

	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, Packages)
		genmock.New(testPrivateEndpoint).
			Delete("/packages/abc").
			Reply(http.StatusNotFound).
			BodyString("no such blob")

		err := c.Delete(ctx, "abc")
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "abc")
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "no such blob")
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, Packages)
		genmock.New(testPrivateEndpoint).
			Delete("/packages/abc").
			Reply(http.StatusInternalServerError)

		err := c.Delete(ctx, "abc")
		require.ErrorIs(t, err, ErrUnexpectedResponse)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete blob", func(t *testing.T) {
		c := newTestClient(t, Packages)
		genmock.New(testPrivateEndpoint).
			Delete("/packages/abc").
			Reply(http.StatusNoContent)

		require.NoError(t, c.DeleteBlob(ctx, mustBlob(t, c, "abc")))
		require.ErrorIs(t, c.DeleteBlob(ctx, nil), ErrEmptyKey)
	})
}

func TestClient_DeleteAll(t *testing.T) {
	ctx := context.Background()

	for _, rt := range []ResourceType{Packages, Droplets, Buildpacks} {
		t.Run("unsupported for "+rt.String(), func(t *testing.T) {
			counter := &requestCounter{}
			c := newTestClient(t, rt, WithPlugins(counter.plugin()))

			require.ErrorIs(t, c.DeleteAll(ctx), ErrUnsupportedOperation)
			require.ErrorIs(t, c.DeleteAllInPath(ctx, "app-guid"), ErrUnsupportedOperation)
			assert.Equal(t, int64(0), counter.n.Load())
		})
	}

	t.Run("buildpack cache", func(t *testing.T) {
		c := newTestClient(t, BuildpackCache)
		genmock.New(testPrivateEndpoint).
			Delete("^/buildpack_cache/entries/$").
			Reply(http.StatusNoContent)

		require.NoError(t, c.DeleteAll(ctx))
		assert.True(t, gock.IsDone())
	})

	t.Run("buildpack cache in path", func(t *testing.T) {
		c := newTestClient(t, BuildpackCache)
		genmock.New(testPrivateEndpoint).
			Delete("^/buildpack_cache/entries/app-guid$").
			Reply(http.StatusNoContent)

		require.NoError(t, c.DeleteAllInPath(ctx, "app-guid"))
		assert.True(t, gock.IsDone())
	})

	t.Run("404 is an error", func(t *testing.T) {
		c := newTestClient(t, BuildpackCache)
		genmock.New(testPrivateEndpoint).
			Delete("/buildpack_cache/entries/").
			Reply(http.StatusNotFound)

		require.ErrorIs(t, c.DeleteAll(ctx), ErrUnexpectedResponse)
	})
}

func TestClient_BuildpackMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		c := newTestClient(t, Buildpacks)
		genmock.New(testPrivateEndpoint).
			Get("/buildpacks/bp/metadata").
			Reply(http.StatusOK).
			JSON(map[string]any{"key": "bp", "sha256": "def"})

		md, err := c.BuildpackMetadata(ctx, "bp")
		require.NoError(t, err)
		assert.Equal(t, "def", md["sha256"])
	})

	t.Run("not json", func(t *testing.T) {
		c := newTestClient(t, Buildpacks)
		genmock.New(testPrivateEndpoint).
			Get("/buildpacks/bp/metadata").
			Reply(http.StatusOK).
			BodyString("<html>")

		_, err := c.BuildpackMetadata(ctx, "bp")
		require.ErrorIs(t, err, ErrUnexpectedResponse)
	})
}

func TestClient_PublicUploadURLForResourceType(t *testing.T) {
	c := newTestClient(t, Packages)
	ctx := bctx.WithFixedClock(context.Background(), testNow)

	u := c.PublicUploadURLForResourceType(ctx, Buildpacks, http.MethodPost)
	signed := c.signer.Sign(ctx, http.MethodPost, "/buildpacks")
	assert.Equal(t, testPublicEndpoint+signed.String()+"&async=true&verb=post", u)
}

func TestClient_SignedURLFromService(t *testing.T) {
	c := newTestClient(t, Packages)
	genmock.New(testPrivateEndpoint).
		Get("/sign/packages/abc").
		BasicAuth("admin", "admin-password").
		Reply(http.StatusOK).
		BodyString("https://bits.example.com/packages/abc?signature=x\n")

	u, err := c.SignedURLFromService(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://bits.example.com/packages/abc?signature=x", u)
}

func TestClient_ParseChecksums(t *testing.T) {
	c := newTestClient(t, Packages)
	ctx := context.Background()

	for _, body := range []string{"", "   ", "not json", `{"sha1":"a"}`, `{"sha256":"b"}`, `{"sha1":1,"sha256":2}`} {
		_, err := c.parseChecksums(ctx, &Response{StatusCode: http.StatusCreated, Body: []byte(body)})
		require.ErrorIs(t, err, ErrUnexpectedResponse, "body %q", body)
	}

	b, _ := json.Marshal(Checksums{SHA1: "a", SHA256: "b"})
	sums, err := c.parseChecksums(ctx, &Response{StatusCode: http.StatusCreated, Body: b})
	require.NoError(t, err)
	assert.Equal(t, "b", sums.SHA256)
}
