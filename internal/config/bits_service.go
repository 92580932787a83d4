package config

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rmorlok/bitsclient/blobstore"
	"github.com/rmorlok/bitsclient/internal/config/common"
)

// BitsService is the connection configuration for the blobstore client.
type BitsService struct {
	PrivateEndpoint    string                `json:"private_endpoint" yaml:"private_endpoint"`
	PublicEndpoint     string                `json:"public_endpoint" yaml:"public_endpoint"`
	Username           *common.StringValue   `json:"username" yaml:"username"`
	Password           *common.StringValue   `json:"password" yaml:"password"`
	SigningKeySecret   *common.StringValue   `json:"signing_key_secret" yaml:"signing_key_secret"`
	SigningKeyID       string                `json:"signing_key_id" yaml:"signing_key_id"`
	CACertPath         string                `json:"ca_cert_path,omitempty" yaml:"ca_cert_path,omitempty"`
	RequestTimeout     *common.HumanDuration `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty"`
	FastRequestTimeout *common.HumanDuration `json:"fast_request_timeout,omitempty" yaml:"fast_request_timeout,omitempty"`
	VerifyChecksums    bool                  `json:"verify_checksums,omitempty" yaml:"verify_checksums,omitempty"`
}

func (b *BitsService) Validate(vc *common.ValidationContext) error {
	return common.Collect(
		vc.Endpoint("private_endpoint", b.PrivateEndpoint),
		vc.Endpoint("public_endpoint", b.PublicEndpoint),
		vc.RequiredSecret("username", b.Username),
		vc.RequiredSecret("password", b.Password),
		vc.RequiredSecret("signing_key_secret", b.SigningKeySecret),
		vc.Required("signing_key_id", b.SigningKeyID),
		vc.PositiveDuration("request_timeout", b.RequestTimeout),
		vc.PositiveDuration("fast_request_timeout", b.FastRequestTimeout),
	)
}

// BlobstoreConfig resolves the credentials and produces the client configuration.
func (b *BitsService) BlobstoreConfig(ctx context.Context) (blobstore.Config, error) {
	username, err := b.Username.GetValue(ctx)
	if err != nil {
		return blobstore.Config{}, errors.Wrap(err, "failed to resolve bits_service.username")
	}

	password, err := b.Password.GetValue(ctx)
	if err != nil {
		return blobstore.Config{}, errors.Wrap(err, "failed to resolve bits_service.password")
	}

	secret, err := b.SigningKeySecret.GetValue(ctx)
	if err != nil {
		return blobstore.Config{}, errors.Wrap(err, "failed to resolve bits_service.signing_key_secret")
	}

	return blobstore.Config{
		PrivateEndpoint:    b.PrivateEndpoint,
		PublicEndpoint:     b.PublicEndpoint,
		Username:           username,
		Password:           password,
		SigningKeySecret:   secret,
		SigningKeyID:       b.SigningKeyID,
		CACertPath:         b.CACertPath,
		RequestTimeout:     b.RequestTimeout.DurationOr(blobstore.DefaultRequestTimeout),
		FastRequestTimeout: b.FastRequestTimeout.DurationOr(blobstore.DefaultFastRequestTimeout),
		VerifyChecksums:    b.VerifyChecksums,
	}, nil
}
