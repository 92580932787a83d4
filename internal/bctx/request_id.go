package bctx

import (
	"context"

	"github.com/google/uuid"
)

// RequestIDHeader is the header used to correlate a call across the services that handle it.
const RequestIDHeader = "X-VCAP-REQUEST-ID"

const (
	requestIDKey          ctxKey = "requestID"
	requestIDGeneratorKey ctxKey = "requestIDGenerator"
)

// RequestIDGenerator mints a request id for work that arrives without one.
type RequestIDGenerator func() string

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the correlation id carried by the context, or the empty string.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestIDOr returns the request id on the context, falling back to the provided default.
func RequestIDOr(ctx context.Context, fallback string) string {
	if id := RequestID(ctx); id != "" {
		return id
	}
	return fallback
}

func WithRequestIDGenerator(ctx context.Context, g RequestIDGenerator) context.Context {
	return context.WithValue(ctx, requestIDGeneratorKey, g)
}

// EnsureRequestID returns ctx unchanged when it carries a request id. Otherwise it attaches one from the
// generator on the context, a random uuid by default.
func EnsureRequestID(ctx context.Context) context.Context {
	if RequestID(ctx) != "" {
		return ctx
	}

	gen := RequestIDGenerator(uuid.NewString)
	if g, ok := ctx.Value(requestIDGeneratorKey).(RequestIDGenerator); ok && g != nil {
		gen = g
	}

	return WithRequestID(ctx, gen())
}
