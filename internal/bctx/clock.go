package bctx

import (
	"context"
	"time"

	"k8s.io/utils/clock"
	tclock "k8s.io/utils/clock/testing"
)

const clockKey ctxKey = "clock"

// WithClock sets a clock on the context. Signing and request timing read the clock from here so that
// tests can pin the current time.
func WithClock(ctx context.Context, clock clock.Clock) context.Context {
	return context.WithValue(ctx, clockKey, clock)
}

// WithFixedClock sets a fake clock that always reports the given time.
func WithFixedClock(ctx context.Context, t time.Time) context.Context {
	return WithClock(ctx, tclock.NewFakeClock(t))
}

var realClock = clock.RealClock{}

// GetClock returns the clock set on the context, or a real clock if none has been set.
func GetClock(ctx context.Context) clock.Clock {
	if ctx == nil {
		return realClock
	}

	if val, ok := ctx.Value(clockKey).(clock.Clock); ok {
		return val
	}

	return realClock
}
