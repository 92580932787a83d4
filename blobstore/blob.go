package blobstore

import (
	"context"
	"net/http"
)

// Blob is a handle on a single key. It holds no state of its own and every URL is computed on demand.
type Blob struct {
	key    string
	client *Client
}

func (b *Blob) Key() string {
	if b == nil {
		return ""
	}
	return b.key
}

// Guid is the key under its cloud controller name.
func (b *Blob) Guid() string {
	return b.Key()
}

// PublicDownloadURL is a signed GET URL on the public endpoint.
func (b *Blob) PublicDownloadURL(ctx context.Context) string {
	signed := b.client.signer.Sign(ctx, http.MethodGet, b.client.path(b.key))
	return b.client.publicEndpoint + signed.String()
}

// PublicUploadURL is a signed PUT URL on the public endpoint that uploads asynchronously.
func (b *Blob) PublicUploadURL(ctx context.Context) string {
	signed := b.client.signer.Sign(ctx, http.MethodPut, b.client.path(b.key))
	return b.client.publicEndpoint + signed.String() + "&async=true&verb=put"
}

// InternalDownloadURL asks the private endpoint where the blob lives. A redirect yields the backing store's
// location, anything else the private URL of the blob.
func (b *Blob) InternalDownloadURL(ctx context.Context) (string, error) {
	c := b.client
	p := c.path(b.key)

	resp, err := c.send(c.request(ctx, c.slow, http.MethodHead, p))
	if err != nil {
		return "", err
	}

	if loc := resp.Location(); resp.StatusCode == http.StatusFound && loc != "" {
		return loc, nil
	}

	return c.privateURL(p), nil
}

var _ BlobHandle = &Blob{}
