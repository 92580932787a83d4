package common

import (
	"context"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
)

// StringValueType is one way of supplying a string, typically a credential.
type StringValueType interface {
	// HasValue reports whether GetValue would produce a value right now.
	HasValue(ctx context.Context) bool

	GetValue(ctx context.Context) (string, error)
}

// StringValue is a secret or setting that can be given inline, or read from an environment variable, a file or
// a base64 blob.
type StringValue struct {
	InnerVal StringValueType `json:"-" yaml:"-"`
}

func (sv *StringValue) Inner() StringValueType {
	if sv == nil {
		return nil
	}
	return sv.InnerVal
}

func (sv *StringValue) HasValue(ctx context.Context) bool {
	if sv == nil || sv.InnerVal == nil {
		return false
	}
	return sv.InnerVal.HasValue(ctx)
}

func (sv *StringValue) GetValue(ctx context.Context) (string, error) {
	if sv == nil || sv.InnerVal == nil {
		return "", errors.New("string value is not configured")
	}
	return sv.InnerVal.GetValue(ctx)
}

func (StringValue) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "object", Required: []string{"value"}},
			{Type: "object", Required: []string{"env_var"}},
			{Type: "object", Required: []string{"path"}},
			{Type: "object", Required: []string{"base64"}},
		},
	}
}

var _ StringValueType = (*StringValue)(nil)
