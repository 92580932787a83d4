package blobstore

import (
	"log/slog"

	"github.com/rmorlok/bitsclient/internal/httpf"
	"gopkg.in/h2non/gentleman.v2/plugin"
)

type options struct {
	logger    *slog.Logger
	requestID string
	plugins   []plugin.Plugin
	factory   httpf.F
}

// Option customizes a Client or ResourcePool.
type Option func(*options)

// WithLogger sets the logger used for request and error logs. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRequestID sets the X-VCAP-REQUEST-ID sent when the call context does not carry one.
func WithRequestID(id string) Option {
	return func(o *options) {
		o.requestID = id
	}
}

// WithPlugins installs gentleman plugins on every request the client makes.
func WithPlugins(p ...plugin.Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, p...)
	}
}

// withFactory replaces the http client factory; used by tests.
func withFactory(f httpf.F) Option {
	return func(o *options) {
		o.factory = f
	}
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
