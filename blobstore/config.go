package blobstore

import (
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
)

const (
	DefaultRequestTimeout     = 900 * time.Second
	DefaultFastRequestTimeout = 10 * time.Second
)

// Config holds everything a Client needs to reach the bits-service. It is fixed at construction.
type Config struct {
	PrivateEndpoint  string
	PublicEndpoint   string
	Username         string
	Password         string
	SigningKeySecret string
	SigningKeyID     string

	// CACertPath is an optional PEM bundle trusted for TLS in addition to the system roots.
	CACertPath string

	// RequestTimeout bounds calls that move payload. Defaults to DefaultRequestTimeout.
	RequestTimeout time.Duration

	// FastRequestTimeout bounds metadata calls. Defaults to DefaultFastRequestTimeout.
	FastRequestTimeout time.Duration

	// VerifyChecksums compares the sha256 reported for an upload against the local file.
	VerifyChecksums bool
}

func (c *Config) requestTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return c.RequestTimeout
}

func (c *Config) fastRequestTimeout() time.Duration {
	if c.FastRequestTimeout <= 0 {
		return DefaultFastRequestTimeout
	}
	return c.FastRequestTimeout
}

// Validate reports every missing or malformed attribute at once. The result matches ErrConfiguration.
func (c *Config) Validate() error {
	result := &multierror.Error{}

	for _, e := range []struct {
		name  string
		value string
	}{
		{"private_endpoint", c.PrivateEndpoint},
		{"public_endpoint", c.PublicEndpoint},
		{"username", c.Username},
		{"password", c.Password},
		{"signing_key_secret", c.SigningKeySecret},
		{"signing_key_id", c.SigningKeyID},
	} {
		if e.value == "" {
			result = multierror.Append(result, fmt.Errorf("please provide %s", e.name))
		}
	}

	if c.PrivateEndpoint != "" {
		if _, err := parseEndpoint(c.PrivateEndpoint); err != nil {
			result = multierror.Append(result, fmt.Errorf("please provide valid http(s) private_endpoint: %w", err))
		}
	}

	if c.PublicEndpoint != "" {
		if _, err := parseEndpoint(c.PublicEndpoint); err != nil {
			result = multierror.Append(result, fmt.Errorf("please provide valid http(s) public_endpoint: %w", err))
		}
	}

	if c.RequestTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("request_timeout must not be negative"))
	}

	if c.FastRequestTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("fast_request_timeout must not be negative"))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme '%s'", u.Scheme)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("missing host in '%s'", raw)
	}

	return u, nil
}
