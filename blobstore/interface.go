package blobstore

import "context"

//go:generate mockgen -source=./interface.go -destination=./mock/blobstore.go -package=mock

// Blobstore is the set of operations a Client offers for its resource type.
type Blobstore interface {
	ResourceType() ResourceType
	Exists(ctx context.Context, key string) (bool, error)
	Upload(ctx context.Context, in UploadInput) (*Checksums, error)
	Download(ctx context.Context, in DownloadInput) error
	CopyBetweenKeys(ctx context.Context, srcKey, dstKey string) (*Checksums, error)
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context) error
	DeleteAllInPath(ctx context.Context, path string) error
	Blob(key string) (BlobHandle, error)
	DeleteBlob(ctx context.Context, b BlobHandle) error
	BuildpackMetadata(ctx context.Context, key string) (map[string]any, error)
	PublicUploadURLForResourceType(ctx context.Context, rt ResourceType, method string) string
	SignedURLFromService(ctx context.Context, key string) (string, error)
}

// BlobHandle exposes the URLs of a single blob.
type BlobHandle interface {
	Key() string
	Guid() string
	PublicDownloadURL(ctx context.Context) string
	PublicUploadURL(ctx context.Context) string
	InternalDownloadURL(ctx context.Context) (string, error)
}

// ResourcePoolClient is the app-stash API.
type ResourcePoolClient interface {
	Matches(ctx context.Context, manifestJSON []byte) (*Response, error)
	Bundles(ctx context.Context, manifestJSON []byte, entriesPath string) (*Response, error)
}
