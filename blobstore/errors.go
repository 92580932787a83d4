package blobstore

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrConfiguration is returned at construction when an endpoint or credential is missing or invalid.
	ErrConfiguration = errors.New("invalid bits-service configuration")

	// ErrResourceTypeNotPresent is returned at construction when no resource type was given.
	ErrResourceTypeNotPresent = errors.New("must specify resource type")

	// ErrUnsupportedOperation is returned, before any network activity, when an operation is not valid for the
	// client's resource type.
	ErrUnsupportedOperation = errors.New("operation not supported for resource type")

	// ErrNotFound is returned when the service reports a blob as absent and the operation needs it to exist.
	ErrNotFound = errors.New("blob not found")

	// ErrEmptyKey is returned when an operation that addresses a single blob is given an empty key.
	ErrEmptyKey = errors.New("blob key must not be empty")

	// ErrFileDoesNotExist is returned when a local file an operation reads from is missing.
	ErrFileDoesNotExist = errors.New("file does not exist")

	// ErrTransportTimeout is returned when a request exceeded the timeout of its tier. The request may still
	// have taken effect on the service.
	ErrTransportTimeout = errors.New("bits-service request timed out")

	// ErrChecksumMismatch is returned when checksum verification is enabled and the digest reported by the
	// service does not match the uploaded file.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrUnexpectedResponse matches every BlobstoreError and UnexpectedResponseCodeError.
	ErrUnexpectedResponse = errors.New("unexpected response from bits-service")
)

// BlobstoreError reports a response outside the expected status codes, or a success response whose body was
// not what the operation needs.
type BlobstoreError struct {
	Expected []int
	Response *Response
	Reason   string
}

func (e *BlobstoreError) Error() string {
	return describeResponse(e.Reason, e.Expected, e.Response)
}

func (e *BlobstoreError) Is(target error) bool {
	return target == ErrUnexpectedResponse
}

// StatusCode is the code of the offending response, or 0 if there was none.
func (e *BlobstoreError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// UnexpectedResponseCodeError is returned by the app-stash calls when the service answers with a code other
// than the expected one. The raw response is kept for diagnostics.
type UnexpectedResponseCodeError struct {
	Expected int
	Response *Response
}

func (e *UnexpectedResponseCodeError) Error() string {
	return describeResponse("", []int{e.Expected}, e.Response)
}

func (e *UnexpectedResponseCodeError) Is(target error) bool {
	return target == ErrUnexpectedResponse
}

func describeResponse(reason string, expected []int, resp *Response) string {
	detail := struct {
		Reason       string `json:"reason,omitempty"`
		Expected     []int  `json:"expected_codes,omitempty"`
		ResponseCode int    `json:"response_code"`
		ResponseBody string `json:"response_body"`
	}{
		Reason:   reason,
		Expected: expected,
	}

	if resp != nil {
		detail.ResponseCode = resp.StatusCode
		detail.ResponseBody = string(resp.Body)
	}

	b, err := json.Marshal(detail)
	if err != nil {
		return ErrUnexpectedResponse.Error()
	}

	return ErrUnexpectedResponse.Error() + ": " + string(b)
}
