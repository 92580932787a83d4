package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rmorlok/bitsclient/internal/bslog"
	"github.com/rmorlok/bitsclient/internal/httpf"
	"gopkg.in/h2non/gentleman.v2"
)

const ComponentResourcePool = "bits_service_resource_pool"

// PoolConfig configures the app-stash client.
type PoolConfig struct {
	Endpoint string

	// RequestTimeout bounds every app-stash call. Defaults to DefaultRequestTimeout.
	RequestTimeout time.Duration

	CACertPath string
}

func (c *PoolConfig) Validate() error {
	result := &multierror.Error{}

	if c.Endpoint == "" {
		result = multierror.Append(result, errors.New("please provide endpoint"))
	} else if _, err := parseEndpoint(c.Endpoint); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "please provide valid http(s) endpoint"))
	}

	if c.RequestTimeout < 0 {
		result = multierror.Append(result, errors.New("request_timeout must not be negative"))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return nil
}

// ResourcePool talks to the app stash, which deduplicates application files across pushes.
type ResourcePool struct {
	endpoint  *url.URL
	f         httpf.F
	logger    *slog.Logger
	requestID string
}

func NewResourcePool(cfg PoolConfig, opts ...Option) (*ResourcePool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	endpoint, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(ErrConfiguration, err.Error())
	}

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	o := applyOptions(opts)
	logger := bslog.NewBuilder(o.logger).
		WithComponent(ComponentResourcePool).
		WithEndpoint(endpoint.Host).
		Build()

	f := o.factory
	if f == nil {
		f, err = httpf.CreateFactory(httpf.Config{
			CACertPath: cfg.CACertPath,
			Timeouts:   httpf.Timeouts{httpf.TierSlow: timeout},
			Plugins:    o.plugins,
		}, logger)
		if err != nil {
			return nil, errors.Wrap(ErrConfiguration, err.Error())
		}
	}

	return &ResourcePool{
		endpoint: endpoint,
		f: f.ForRequestInfo(httpf.RequestInfo{
			Component: ComponentResourcePool,
			Endpoint:  endpoint.Host,
			Tier:      httpf.TierSlow,
		}),
		logger:    logger,
		requestID: o.requestID,
	}, nil
}

// Matches sends a resource manifest and returns the service's answer listing the entries it already has.
func (p *ResourcePool) Matches(ctx context.Context, manifestJSON []byte) (*Response, error) {
	return p.post(ctx, "/app_stash/matches", manifestJSON)
}

// Bundles asks the service to assemble an application bundle from the manifest. When entriesPath is set the
// zip of new entries is uploaded alongside the manifest.
func (p *ResourcePool) Bundles(ctx context.Context, manifestJSON []byte, entriesPath string) (*Response, error) {
	if entriesPath == "" {
		return p.post(ctx, "/app_stash/bundles", manifestJSON)
	}

	if err := checkSourceFile(entriesPath); err != nil {
		return nil, err
	}

	body, contentType := streamMultipart([]formPart{
		{
			Field:       "resources",
			FileName:    "resources.json",
			ContentType: "application/json",
			Value:       manifestJSON,
		},
		filePart("application", "entries.zip", "application/octet-stream", entriesPath),
	})
	defer body.Close()

	return p.expectOK(ctx, p.request(ctx, "/app_stash/bundles").
		SetHeader("Content-Type", contentType).
		Body(body))
}

func (p *ResourcePool) post(ctx context.Context, path string, payload []byte) (*Response, error) {
	return p.expectOK(ctx, p.request(ctx, path).
		SetHeader("Content-Type", "application/json").
		Body(bytes.NewReader(payload)))
}

func (p *ResourcePool) request(ctx context.Context, path string) *gentleman.Request {
	return serviceRequest(ctx, p.f, http.MethodPost, joinEndpoint(p.endpoint.String(), path), p.requestID)
}

func (p *ResourcePool) expectOK(ctx context.Context, req *gentleman.Request) (*Response, error) {
	resp, err := send(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		bslog.NewBuilder(p.logger).
			WithCtx(ctx).
			Build().
			Error("UnexpectedResponseCode", "expected", http.StatusOK, "got", resp.StatusCode, "body", string(resp.Body))

		return nil, &UnexpectedResponseCodeError{
			Expected: http.StatusOK,
			Response: resp,
		}
	}

	return resp, nil
}

var _ ResourcePoolClient = &ResourcePool{}
