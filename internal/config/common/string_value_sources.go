package common

import (
	"context"
	"encoding/base64"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// StringValueDirect is a value written into the config file.
type StringValueDirect struct {
	Value string `json:"value" yaml:"value"`

	// IsDirectString is set when the value was a plain scalar. It is written back out the same way.
	IsDirectString bool `json:"-" yaml:"-"`
}

func (d *StringValueDirect) HasValue(context.Context) bool {
	return d.Value != ""
}

func (d *StringValueDirect) GetValue(context.Context) (string, error) {
	return d.Value, nil
}

func (d StringValueDirect) MarshalYAML() (any, error) {
	if d.IsDirectString {
		return d.Value, nil
	}
	return map[string]string{"value": d.Value}, nil
}

// StringValueEnvVar reads an environment variable, falling back to Default when it is unset or empty.
type StringValueEnvVar struct {
	EnvVar  string  `json:"env_var" yaml:"env_var"`
	Default *string `json:"default,omitempty" yaml:"default,omitempty"`
}

func (e *StringValueEnvVar) lookup() (string, bool) {
	if val := os.Getenv(e.EnvVar); val != "" {
		return val, true
	}
	if e.Default != nil {
		return *e.Default, true
	}
	return "", false
}

func (e *StringValueEnvVar) HasValue(context.Context) bool {
	_, ok := e.lookup()
	return ok
}

func (e *StringValueEnvVar) GetValue(context.Context) (string, error) {
	val, ok := e.lookup()
	if !ok {
		return "", errors.Errorf("environment variable '%s' is not set", e.EnvVar)
	}
	return val, nil
}

// StringValueFile reads a file such as a mounted secret. A leading ~ is expanded and surrounding whitespace
// is trimmed.
type StringValueFile struct {
	Path string `json:"path" yaml:"path"`
}

func (f *StringValueFile) HasValue(context.Context) bool {
	path, err := homedir.Expand(f.Path)
	if err != nil {
		return false
	}

	_, err = os.Stat(path)
	return err == nil
}

func (f *StringValueFile) GetValue(context.Context) (string, error) {
	path, err := homedir.Expand(f.Path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to expand path '%s'", f.Path)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.Errorf("file '%s' does not exist", f.Path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read '%s'", f.Path)
	}

	return strings.TrimSpace(string(data)), nil
}

// StringValueBase64 decodes padded, unpadded or url-safe base64.
type StringValueBase64 struct {
	Base64 string `json:"base64" yaml:"base64"`
}

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

func (b *StringValueBase64) HasValue(context.Context) bool {
	return b.Base64 != ""
}

func (b *StringValueBase64) GetValue(context.Context) (string, error) {
	encoded := strings.TrimSpace(b.Base64)
	for _, enc := range base64Encodings {
		if decoded, err := enc.DecodeString(encoded); err == nil {
			return string(decoded), nil
		}
	}
	return "", errors.New("invalid base64 value")
}

var (
	_ StringValueType = (*StringValueDirect)(nil)
	_ StringValueType = (*StringValueEnvVar)(nil)
	_ StringValueType = (*StringValueFile)(nil)
	_ StringValueType = (*StringValueBase64)(nil)
)
