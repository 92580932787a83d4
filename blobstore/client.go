package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rmorlok/bitsclient/blobstore/signature"
	"github.com/rmorlok/bitsclient/internal/bctx"
	"github.com/rmorlok/bitsclient/internal/bslog"
	"github.com/rmorlok/bitsclient/internal/httpf"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/auth"
)

// Client manages the blobs of a single resource type on a bits-service. It is safe for concurrent use.
type Client struct {
	resourceType    ResourceType
	cfg             Config
	privateEndpoint *url.URL
	publicEndpoint  string
	signer          *signature.Factory
	logger          *slog.Logger
	requestID       string

	fast     httpf.F
	slow     httpf.F
	external httpf.F
}

// UploadInput describes a single upload. An empty SourcePath uploads an empty zip archive. Resources, when
// set, is marshalled to JSON and sent as the resources form field; json.RawMessage passes through verbatim.
type UploadInput struct {
	SourcePath string
	Key        string
	Resources  any
}

// DownloadInput describes a single download. Mode, when set, is applied to the written file.
type DownloadInput struct {
	Key             string
	DestinationPath string
	Mode            *os.FileMode
}

// NewClient validates cfg and builds a client for the given resource type.
func NewClient(cfg Config, resourceType ResourceType, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if resourceType == "" {
		return nil, ErrResourceTypeNotPresent
	}

	if !resourceType.IsValid() {
		return nil, errors.Wrapf(ErrConfiguration, "unknown resource type '%s'", resourceType)
	}

	private, err := parseEndpoint(cfg.PrivateEndpoint)
	if err != nil {
		return nil, errors.Wrap(ErrConfiguration, err.Error())
	}

	o := applyOptions(opts)
	logger := bslog.NewBuilder(o.logger).
		WithComponent(bslog.ComponentBitsServiceClient).
		WithResourceType(resourceType.String()).
		Build()

	f := o.factory
	if f == nil {
		f, err = httpf.CreateFactory(httpf.Config{
			CACertPath: cfg.CACertPath,
			Timeouts: httpf.Timeouts{
				httpf.TierFast: cfg.fastRequestTimeout(),
				httpf.TierSlow: cfg.requestTimeout(),
			},
			Plugins: o.plugins,
		}, logger)
		if err != nil {
			return nil, errors.Wrap(ErrConfiguration, err.Error())
		}
	}

	service := httpf.RequestInfo{
		Component: bslog.ComponentBitsServiceClient,
		Endpoint:  private.Host,
	}

	return &Client{
		resourceType:    resourceType,
		cfg:             cfg,
		privateEndpoint: private,
		publicEndpoint:  strings.TrimSuffix(cfg.PublicEndpoint, "/"),
		signer:          signature.NewFactory(cfg.SigningKeySecret, cfg.SigningKeyID),
		logger:          logger,
		requestID:       o.requestID,
		fast:            f.ForRequestInfo(service).ForTier(httpf.TierFast),
		slow:            f.ForRequestInfo(service).ForTier(httpf.TierSlow),
		external: f.ForRequestInfo(httpf.RequestInfo{
			Component: "redirect",
			Tier:      httpf.TierSlow,
		}),
	}, nil
}

func (c *Client) ResourceType() ResourceType {
	return c.resourceType
}

func (c *Client) path(key string) string {
	return ResourcePath(c.resourceType, key)
}

func (c *Client) privateURL(p string) string {
	return joinEndpoint(c.privateEndpoint.String(), p)
}

// request starts a call to the private endpoint carrying the service headers.
func (c *Client) request(ctx context.Context, f httpf.F, method, p string) *gentleman.Request {
	return serviceRequest(ctx, f, method, c.privateURL(p), c.requestID)
}

func (c *Client) do(req *gentleman.Request) (*gentleman.Response, error) {
	return do(req)
}

func (c *Client) send(req *gentleman.Request) (*Response, error) {
	return send(req)
}

func serviceRequest(ctx context.Context, f httpf.F, method, target, requestID string) *gentleman.Request {
	req := f.New().
		Use(httpf.WithContext(ctx)).
		Request().
		Method(method).
		URL(target)

	if id := bctx.RequestIDOr(ctx, requestID); id != "" {
		req.SetHeader(bctx.RequestIDHeader, id)
	}

	return req
}

func do(req *gentleman.Request) (*gentleman.Response, error) {
	resp, err := req.Send()
	if err != nil {
		return nil, transportError(err)
	}
	return resp, nil
}

func send(req *gentleman.Request) (*Response, error) {
	resp, err := do(req)
	if err != nil {
		return nil, err
	}
	return snapshot(resp)
}

func transportError(err error) error {
	if httpf.IsTimeout(err) {
		return fmt.Errorf("%w: %w", ErrTransportTimeout, err)
	}
	return errors.Wrap(err, "bits-service request failed")
}

// Exists reports whether the service knows the key. A redirect counts as present.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	resp, err := c.send(c.request(ctx, c.fast, http.MethodHead, c.path(key)))
	if err != nil {
		return false, err
	}

	if err := c.validateResponseCode(ctx, resp, http.StatusOK, http.StatusFound, http.StatusNotFound); err != nil {
		return false, err
	}

	return resp.StatusCode != http.StatusNotFound, nil
}

// Upload stores the source file under the key and returns the checksums the service computed.
func (c *Client) Upload(ctx context.Context, in UploadInput) (*Checksums, error) {
	if in.Key == "" {
		return nil, ErrEmptyKey
	}

	source := in.SourcePath
	if source == "" {
		archive, err := createEmptyArchive()
		if err != nil {
			return nil, err
		}
		defer os.Remove(archive)
		source = archive
	}

	if err := checkSourceFile(source); err != nil {
		return nil, err
	}

	var parts []formPart
	if in.Resources != nil {
		resources, err := json.Marshal(in.Resources)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal resources")
		}
		parts = append(parts, formPart{Field: "resources", Value: resources})
	}
	parts = append(parts, filePart(c.resourceType.Singular(), filepath.Base(source), "application/octet-stream", source))

	body, contentType := streamMultipart(parts)
	defer body.Close()

	resp, err := c.send(
		c.request(ctx, c.slow, http.MethodPut, c.path(in.Key)).
			SetHeader("Content-Type", contentType).
			Body(body),
	)
	if err != nil {
		return nil, err
	}

	if err := c.validateResponseCode(ctx, resp, http.StatusCreated); err != nil {
		return nil, err
	}

	sums, err := c.parseChecksums(ctx, resp)
	if err != nil {
		return nil, err
	}

	if c.cfg.VerifyChecksums {
		if err := verifySHA256(source, sums.SHA256); err != nil {
			return nil, err
		}
	}

	return sums, nil
}

func (c *Client) parseChecksums(ctx context.Context, resp *Response) (*Checksums, error) {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, c.malformed(ctx, resp, "expected body with json payload")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, c.malformed(ctx, resp, "expected body with json payload")
	}

	for _, k := range []string{"sha1", "sha256"} {
		if _, ok := raw[k]; !ok {
			return nil, c.malformed(ctx, resp, "expected body to contain keys sha1, sha256")
		}
	}

	var sums Checksums
	if err := json.Unmarshal(resp.Body, &sums); err != nil {
		return nil, c.malformed(ctx, resp, "expected sha1 and sha256 to be strings")
	}

	return &sums, nil
}

func (c *Client) malformed(ctx context.Context, resp *Response, reason string) error {
	bslog.NewBuilder(c.logger).
		WithCtx(ctx).
		Build().
		Error("UnexpectedResponseBody", "reason", reason, "code", resp.StatusCode, "body", string(resp.Body))

	return &BlobstoreError{
		Expected: []int{resp.StatusCode},
		Response: resp,
		Reason:   reason,
	}
}

// Download writes the blob to the destination path, following at most one redirect. The destination is only
// created once the service answered with the content.
func (c *Client) Download(ctx context.Context, in DownloadInput) error {
	if in.Key == "" {
		return ErrEmptyKey
	}

	if in.DestinationPath == "" {
		return errors.New("destination path must not be empty")
	}

	resp, err := c.do(c.request(ctx, c.slow, http.MethodGet, c.path(in.Key)))
	if err != nil {
		return err
	}

	resp, err = c.followRedirect(ctx, resp)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		snap, err := snapshot(resp)
		if err != nil {
			return err
		}
		return c.validateResponseCode(ctx, snap, http.StatusOK)
	}
	defer resp.Close()

	return writeFile(in.DestinationPath, resp.RawResponse.Body, in.Mode)
}

func writeFile(dst string, r io.Reader, mode *os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for '%s'", dst)
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open '%s'", dst)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return transportError(err)
	}

	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to write '%s'", dst)
	}

	if mode != nil {
		if err := os.Chmod(dst, *mode); err != nil {
			return errors.Wrapf(err, "failed to set mode on '%s'", dst)
		}
	}

	return nil
}

// CopyBetweenKeys copies a blob through a local scratch file. The copy is not atomic.
func (c *Client) CopyBetweenKeys(ctx context.Context, srcKey, dstKey string) (*Checksums, error) {
	scratch, err := os.CreateTemp("", "bits-copy-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scratch file")
	}
	scratchPath := scratch.Name()
	scratch.Close()
	defer os.Remove(scratchPath)

	if err := c.Download(ctx, DownloadInput{Key: srcKey, DestinationPath: scratchPath}); err != nil {
		return nil, err
	}

	return c.Upload(ctx, UploadInput{SourcePath: scratchPath, Key: dstKey})
}

// Delete removes a blob. A blob the service does not know is ErrNotFound.
func (c *Client) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	resp, err := c.send(c.request(ctx, c.fast, http.MethodDelete, c.path(key)))
	if err != nil {
		return err
	}

	if err := c.validateResponseCode(ctx, resp, http.StatusNoContent, http.StatusNotFound); err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(ErrNotFound, "key '%s' (code %d, body %q)", key, resp.StatusCode, string(resp.Body))
	}

	return nil
}

// DeleteAll removes every blob of the collection. Only the buildpack cache supports it.
func (c *Client) DeleteAll(ctx context.Context) error {
	if err := c.requireBuildpackCache("delete all"); err != nil {
		return err
	}

	return c.deleteCollection(ctx, c.path(""))
}

// DeleteAllInPath removes every buildpack cache entry below the given path.
func (c *Client) DeleteAllInPath(ctx context.Context, p string) error {
	if err := c.requireBuildpackCache("delete all in path"); err != nil {
		return err
	}

	return c.deleteCollection(ctx, c.path(p))
}

func (c *Client) requireBuildpackCache(op string) error {
	if c.resourceType != BuildpackCache {
		return errors.Wrapf(ErrUnsupportedOperation, "%s is only supported for %s, not %s", op, BuildpackCache, c.resourceType)
	}
	return nil
}

func (c *Client) deleteCollection(ctx context.Context, p string) error {
	resp, err := c.send(c.request(ctx, c.fast, http.MethodDelete, p))
	if err != nil {
		return err
	}

	return c.validateResponseCode(ctx, resp, http.StatusNoContent)
}

// Blob returns a handle for the key. No network call is made.
func (c *Client) Blob(key string) (BlobHandle, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	return &Blob{
		key:    key,
		client: c,
	}, nil
}

func (c *Client) DeleteBlob(ctx context.Context, b BlobHandle) error {
	if b == nil {
		return ErrEmptyKey
	}
	return c.Delete(ctx, b.Key())
}

// BuildpackMetadata fetches the metadata document the service keeps for a blob.
func (c *Client) BuildpackMetadata(ctx context.Context, key string) (map[string]any, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	resp, err := c.send(c.request(ctx, c.slow, http.MethodGet, c.path(key)+"/metadata"))
	if err != nil {
		return nil, err
	}

	if err := c.validateResponseCode(ctx, resp, http.StatusOK); err != nil {
		return nil, err
	}

	var metadata map[string]any
	if err := json.Unmarshal(resp.Body, &metadata); err != nil {
		return nil, c.malformed(ctx, resp, "expected metadata json object")
	}

	return metadata, nil
}

// PublicUploadURLForResourceType signs the collection path of a resource type for asynchronous uploads.
func (c *Client) PublicUploadURLForResourceType(ctx context.Context, rt ResourceType, method string) string {
	signed := c.signer.Sign(ctx, method, "/"+rt.String())
	return c.publicEndpoint + signed.String() + "&async=true&verb=" + strings.ToLower(method)
}

// SignedURLFromService asks the service to sign the blob's path.
//
// Deprecated: signatures are computed locally; see Blob.
func (c *Client) SignedURLFromService(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	resp, err := c.send(
		c.request(ctx, c.fast, http.MethodGet, "/sign"+c.path(key)).
			Use(auth.Basic(c.cfg.Username, c.cfg.Password)),
	)
	if err != nil {
		return "", err
	}

	if err := c.validateResponseCode(ctx, resp, http.StatusOK); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body)), nil
}

var _ Blobstore = &Client{}
