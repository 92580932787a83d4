// Package signature produces and checks the HMAC signed, expiring query strings the bits-service accepts on its
// public endpoint.
//
// The signed message is "<METHOD> <path> <secret> <expires>" and the signature is the lowercase hex encoding of
// HMAC-SHA256 over that message keyed with the secret. Client and service must agree on this layout out of band.
package signature

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rmorlok/bitsclient/internal/bctx"
)

// DefaultTTL is how long a signed URL remains valid.
const DefaultTTL = 3600 * time.Second

const (
	QuerySignature   = "signature"
	QueryExpires     = "expires"
	QueryAccessKeyId = "AccessKeyId"
)

var (
	ErrExpired          = errors.New("signature expired")
	ErrInvalidSignature = errors.New("signature does not match")
	ErrUnknownKey       = errors.New("unknown access key id")
)

// SignedPath is a resource path together with the query parameters that authorize access to it until Expires.
type SignedPath struct {
	Path        string
	Signature   string
	Expires     int64
	AccessKeyID string
}

// String renders the path and its signing parameters as "<path>?signature=..&expires=..&AccessKeyId=..".
func (s SignedPath) String() string {
	return fmt.Sprintf("%s?%s=%s&%s=%d&%s=%s",
		s.Path,
		QuerySignature, s.Signature,
		QueryExpires, s.Expires,
		QueryAccessKeyId, s.AccessKeyID,
	)
}

// ExpiresAt is the expiry as a time.
func (s SignedPath) ExpiresAt() time.Time {
	return time.Unix(s.Expires, 0).UTC()
}

// Factory signs resource paths with a single key.
type Factory struct {
	secret string
	keyID  string
	ttl    time.Duration
}

type Option func(*Factory)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(f *Factory) {
		f.ttl = ttl
	}
}

func NewFactory(secret, keyID string, opts ...Option) *Factory {
	f := &Factory{
		secret: secret,
		keyID:  keyID,
		ttl:    DefaultTTL,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Factory) TTL() time.Duration {
	return f.ttl
}

// Sign signs path for the given HTTP method. The expiry is computed from the clock on the context.
func (f *Factory) Sign(ctx context.Context, method, path string) SignedPath {
	expires := bctx.GetClock(ctx).Now().UTC().Add(f.ttl).Unix()

	return SignedPath{
		Path:        path,
		Signature:   Compute(f.secret, method, path, expires),
		Expires:     expires,
		AccessKeyID: f.keyID,
	}
}

// Verify checks a signature presented for method and path. Signatures whose expiry is not after the current
// time are rejected.
func (f *Factory) Verify(ctx context.Context, method, path, signature string, expires int64) error {
	expected := Compute(f.secret, method, path, expires)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return ErrInvalidSignature
	}

	if !bctx.GetClock(ctx).Now().UTC().Before(time.Unix(expires, 0)) {
		return ErrExpired
	}

	return nil
}

// VerifyQuery verifies the signing parameters found in a request's query string.
func (f *Factory) VerifyQuery(ctx context.Context, method, path string, query url.Values) error {
	if query.Get(QueryAccessKeyId) != f.keyID {
		return ErrUnknownKey
	}

	expires, err := strconv.ParseInt(query.Get(QueryExpires), 10, 64)
	if err != nil {
		return errors.Wrap(ErrInvalidSignature, "malformed expires")
	}

	return f.Verify(ctx, method, path, query.Get(QuerySignature), expires)
}

// Compute returns hex(HMAC-SHA256(secret, "<METHOD> <path> <secret> <expires>")).
func Compute(secret, method, path string, expires int64) string {
	message := fmt.Sprintf("%s %s %s %d", strings.ToUpper(method), path, secret, expires)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
