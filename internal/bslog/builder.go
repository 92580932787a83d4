// Package bslog holds the slog conventions shared by the bits-service client: component and resource type
// attributes, the request id taken from the context and a logger that discards everything.
package bslog

import (
	"context"
	"log/slog"

	"github.com/rmorlok/bitsclient/internal/bctx"
)

// ComponentBitsServiceClient is the component name used by everything that talks to the bits-service.
const ComponentBitsServiceClient = "bits_service_client"

// Builder adds the standard attributes to a logger. The zero value is not usable; start from NewBuilder.
type Builder struct {
	l *slog.Logger
}

// NewBuilder starts from l. A nil logger discards everything.
func NewBuilder(l *slog.Logger) Builder {
	return Builder{l: OrNoop(l)}
}

func (b Builder) WithComponent(component string) Builder {
	return Builder{l: b.l.With("component", component)}
}

func (b Builder) WithResourceType(resourceType string) Builder {
	return Builder{l: b.l.With("resource_type", resourceType)}
}

func (b Builder) WithEndpoint(endpoint string) Builder {
	return Builder{l: b.l.With("endpoint", endpoint)}
}

// WithCtx attaches the request id carried by the context, if any.
func (b Builder) WithCtx(ctx context.Context) Builder {
	if id := bctx.RequestID(ctx); id != "" {
		return Builder{l: b.l.With("vcap_request_id", id)}
	}
	return b
}

func (b Builder) Build() *slog.Logger {
	return b.l
}

func NewNoopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrNoop returns l, or a logger that discards everything when l is nil.
func OrNoop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return NewNoopLogger()
	}
	return l
}
