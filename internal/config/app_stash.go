package config

import (
	"github.com/rmorlok/bitsclient/blobstore"
	"github.com/rmorlok/bitsclient/internal/config/common"
)

type AppStash struct {
	Endpoint       string                `json:"endpoint" yaml:"endpoint"`
	RequestTimeout *common.HumanDuration `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty"`
	CACertPath     string                `json:"ca_cert_path,omitempty" yaml:"ca_cert_path,omitempty"`
}

func (a *AppStash) Validate(vc *common.ValidationContext) error {
	return common.Collect(
		vc.Endpoint("endpoint", a.Endpoint),
		vc.PositiveDuration("request_timeout", a.RequestTimeout),
	)
}

func (a *AppStash) PoolConfig() blobstore.PoolConfig {
	return blobstore.PoolConfig{
		Endpoint:       a.Endpoint,
		RequestTimeout: a.RequestTimeout.DurationOr(blobstore.DefaultRequestTimeout),
		CACertPath:     a.CACertPath,
	}
}
