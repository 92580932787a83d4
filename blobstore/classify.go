package blobstore

import (
	"context"
	"log/slog"
	"slices"

	"github.com/rmorlok/bitsclient/internal/bslog"
)

// classify accepts a response whose code is in the expected set. Anything else is a BlobstoreError carrying
// the response. Callers branch on the exact code afterwards.
func classify(resp *Response, expected ...int) error {
	if resp != nil && slices.Contains(expected, resp.StatusCode) {
		return nil
	}

	return &BlobstoreError{
		Expected: expected,
		Response: resp,
	}
}

func (c *Client) validateResponseCode(ctx context.Context, resp *Response, expected ...int) error {
	return classifyAndLog(ctx, c.logger, resp, expected...)
}

func classifyAndLog(ctx context.Context, logger *slog.Logger, resp *Response, expected ...int) error {
	err := classify(resp, expected...)
	if err != nil {
		var code int
		var body string
		if resp != nil {
			code = resp.StatusCode
			body = string(resp.Body)
		}

		bslog.NewBuilder(logger).
			WithCtx(ctx).
			Build().
			Error("UnexpectedResponseCode", "expected", expected, "got", code, "body", body)
	}

	return err
}
