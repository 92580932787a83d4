package common

import (
	"fmt"
	"net/url"

	"github.com/hashicorp/go-multierror"
)

// ValidationError is a problem with the value at Path, e.g. "bits_service.password".
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationContext tracks where in the configuration tree a value being validated lives.
type ValidationContext struct {
	Path string
}

func (c *ValidationContext) PushField(field string) *ValidationContext {
	if c.Path == "" {
		return &ValidationContext{Path: field}
	}
	return &ValidationContext{Path: c.Path + "." + field}
}

func (c *ValidationContext) NewError(message string) *ValidationError {
	return &ValidationError{Path: c.Path, Message: message}
}

func (c *ValidationContext) NewErrorf(format string, args ...any) *ValidationError {
	return c.NewError(fmt.Sprintf(format, args...))
}

func (c *ValidationContext) NewErrorForField(field, message string) *ValidationError {
	return c.PushField(field).NewError(message)
}

func (c *ValidationContext) NewErrorfForField(field, format string, args ...any) *ValidationError {
	return c.PushField(field).NewErrorf(format, args...)
}

func (c *ValidationContext) Required(field, value string) error {
	if value == "" {
		return c.NewErrorForField(field, "is required")
	}
	return nil
}

// RequiredSecret checks that a source is configured. The source is not resolved.
func (c *ValidationContext) RequiredSecret(field string, value *StringValue) error {
	if value == nil || value.Inner() == nil {
		return c.NewErrorForField(field, "is required")
	}
	return nil
}

// Endpoint accepts an absolute http or https URL with a host. Empty is reported as missing.
func (c *ValidationContext) Endpoint(field, value string) error {
	if value == "" {
		return c.NewErrorForField(field, "is required")
	}

	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return c.NewErrorfForField(field, "must be an http(s) url, got '%s'", value)
	}

	return nil
}

// PositiveDuration accepts an unset duration.
func (c *ValidationContext) PositiveDuration(field string, d *HumanDuration) error {
	if d != nil && d.Duration <= 0 {
		return c.NewErrorForField(field, "must be positive")
	}
	return nil
}

// Collect joins the non-nil errors. It returns nil when there are none.
func Collect(errs ...error) error {
	result := &multierror.Error{}
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
