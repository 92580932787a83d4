package httpf

import (
	stdcontext "context"
	"net/http"

	"gopkg.in/h2non/gentleman.v2/context"
	"gopkg.in/h2non/gentleman.v2/plugin"
)

// DisableRedirects makes 3xx responses surface to the caller instead of being followed. The bits-service
// uses redirects to hand off to a backing store and callers decide what to do with the Location.
func DisableRedirects() plugin.Plugin {
	return plugin.NewRequestPlugin(func(ctx *context.Context, h context.Handler) {
		ctx.Client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		h.Next(ctx)
	})
}

// WithContext binds the outgoing request to ctx so that cancellation and context values (clock, request id)
// reach the transport.
func WithContext(ctx stdcontext.Context) plugin.Plugin {
	return plugin.NewRequestPlugin(func(gctx *context.Context, h context.Handler) {
		gctx.SetCancelContext(ctx)
		h.Next(gctx)
	})
}
