package httpf

import (
	"log/slog"
	"net/http"

	"github.com/rmorlok/bitsclient/internal/bctx"
)

// RoundTripperFactory wraps the transport of a client built for ri. Returning nil leaves the transport
// unwrapped.
type RoundTripperFactory interface {
	NewRoundTripper(ri RequestInfo, transport http.RoundTripper) http.RoundTripper
}

type loggingRoundTripperFactory struct {
	logger *slog.Logger
}

func (f *loggingRoundTripperFactory) NewRoundTripper(ri RequestInfo, transport http.RoundTripper) http.RoundTripper {
	return &LoggingRoundTripper{
		requestInfo: ri,
		transport:   transport,
		logger:      f.logger,
	}
}

// LoggingRoundTripper logs every request and response passing through it, and logs timeouts separately so
// they can be told apart from other transport failures.
type LoggingRoundTripper struct {
	requestInfo RequestInfo
	transport   http.RoundTripper
	logger      *slog.Logger
}

// RoundTrip implements the http.RoundTripper interface
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	clock := bctx.GetClock(ctx)
	startTime := clock.Now()
	requestID := req.Header.Get(bctx.RequestIDHeader)

	t.logger.Info("Request",
		"method", req.Method,
		"path", req.URL.Path,
		"address", req.URL.Hostname(),
		"port", req.URL.Port(),
		"tier", string(t.requestInfo.Tier),
		"vcap_request_id", requestID,
	)

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		if IsTimeout(err) {
			t.logger.Info("Request timeout",
				"method", req.Method,
				"path", req.URL.Path,
				"address", req.URL.Hostname(),
				"port", req.URL.Port(),
				"tier", string(t.requestInfo.Tier),
				"vcap_request_id", requestID,
			)
		} else {
			t.logger.Error("Request failed", "error", err, "method", req.Method, "path", req.URL.Path, "vcap_request_id", requestID)
		}
		return resp, err
	}

	t.logger.Info("Response",
		"code", resp.StatusCode,
		"vcap_request_id", requestID,
		"duration_ms", clock.Since(startTime).Milliseconds(),
	)

	return resp, nil
}
