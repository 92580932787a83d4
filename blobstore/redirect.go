package blobstore

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rmorlok/bitsclient/internal/httpf"
	"gopkg.in/h2non/gentleman.v2"
)

func redirectLocation(code int, header http.Header) (string, bool) {
	if code != http.StatusFound || header == nil {
		return "", false
	}

	loc := header.Get("Location")
	return loc, loc != ""
}

// followRedirect follows a single 302 with a plain GET. The backing store gets none of the service headers.
// The response of the second request is returned as is, even if it is another redirect.
func (c *Client) followRedirect(ctx context.Context, resp *gentleman.Response) (*gentleman.Response, error) {
	loc, ok := redirectLocation(resp.StatusCode, resp.Header)
	if !ok {
		return resp, nil
	}
	resp.Close()

	target, err := c.privateEndpoint.Parse(loc)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid redirect location '%s'", loc)
	}

	return c.do(
		c.external.New().
			Use(httpf.WithContext(ctx)).
			Request().
			Method(http.MethodGet).
			URL(target.String()),
	)
}
