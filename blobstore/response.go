package blobstore

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
	"gopkg.in/h2non/gentleman.v2"
)

// Response is a fully read snapshot of a bits-service response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Location is the redirect target of the response, if any.
func (r *Response) Location() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return r.Header.Get("Location")
}

// snapshot reads the remaining body of resp and closes it.
func snapshot(resp *gentleman.Response) (*Response, error) {
	defer resp.Close()

	r := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}

	if resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return r, nil
	}

	body, err := io.ReadAll(resp.RawResponse.Body)
	if err != nil {
		return r, errors.Wrap(err, "failed to read bits-service response body")
	}
	r.Body = body

	return r, nil
}
