package common

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStringValue(t *testing.T) {
	ctx := context.Background()

	t.Run("yaml round trip", func(t *testing.T) {
		def := "fallback"
		tests := []struct {
			name string
			Val  StringValueType
		}{
			{name: "inline", Val: &StringValueDirect{Value: "admin", IsDirectString: true}},
			{name: "value object", Val: &StringValueDirect{Value: "admin"}},
			{name: "base64", Val: &StringValueBase64{Base64: "c2VjcmV0"}},
			{name: "env var", Val: &StringValueEnvVar{EnvVar: "BITS_PASSWORD"}},
			{name: "env var with default", Val: &StringValueEnvVar{EnvVar: "BITS_PASSWORD", Default: &def}},
			{name: "file", Val: &StringValueFile{Path: "/var/vcap/secret"}},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				data, err := yaml.Marshal(&StringValue{test.Val})
				require.NoError(t, err)

				var output StringValue
				require.NoError(t, yaml.Unmarshal(data, &output))
				require.Equal(t, test.Val, output.InnerVal)
			})
		}
	})

	t.Run("inline scalar", func(t *testing.T) {
		var sv StringValue
		require.NoError(t, yaml.Unmarshal([]byte(`admin`), &sv))
		v, err := sv.GetValue(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin", v)
	})

	t.Run("env var", func(t *testing.T) {
		t.Setenv("BITS_TEST_PASSWORD", "from-env")

		var sv StringValue
		require.NoError(t, yaml.Unmarshal([]byte(`env_var: BITS_TEST_PASSWORD`), &sv))
		assert.True(t, sv.HasValue(ctx))
		v, err := sv.GetValue(ctx)
		require.NoError(t, err)
		assert.Equal(t, "from-env", v)
	})

	t.Run("env var missing", func(t *testing.T) {
		sv := StringValue{&StringValueEnvVar{EnvVar: "BITS_TEST_DEFINITELY_UNSET"}}
		assert.False(t, sv.HasValue(ctx))
		_, err := sv.GetValue(ctx)
		require.Error(t, err)
	})

	t.Run("file", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "secret")
		require.NoError(t, os.WriteFile(p, []byte("from-file\n"), 0o600))

		var sv StringValue
		require.NoError(t, yaml.Unmarshal([]byte(`path: `+p), &sv))
		v, err := sv.GetValue(ctx)
		require.NoError(t, err)
		assert.Equal(t, "from-file", v)
	})

	t.Run("file missing", func(t *testing.T) {
		sv := StringValue{&StringValueFile{Path: filepath.Join(t.TempDir(), "missing")}}
		assert.False(t, sv.HasValue(ctx))
		_, err := sv.GetValue(ctx)
		require.Error(t, err)
	})

	t.Run("base64", func(t *testing.T) {
		sv := StringValue{&StringValueBase64{Base64: base64.StdEncoding.EncodeToString([]byte("s3cr3t"))}}
		v, err := sv.GetValue(ctx)
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", v)

		v, err = (&StringValue{&StringValueBase64{Base64: "czNjcjN0"}}).GetValue(ctx)
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", v)

		v, err = (&StringValue{&StringValueBase64{Base64: base64.RawURLEncoding.EncodeToString([]byte("k?>"))}}).GetValue(ctx)
		require.NoError(t, err)
		assert.Equal(t, "k?>", v)

		_, err = (&StringValue{&StringValueBase64{Base64: "!!"}}).GetValue(ctx)
		require.Error(t, err)
	})

	t.Run("unknown structure", func(t *testing.T) {
		var sv StringValue
		require.Error(t, yaml.Unmarshal([]byte(`other: x`), &sv))
		require.Error(t, yaml.Unmarshal([]byte(`[a, b]`), &sv))
	})

	t.Run("conflicting sources", func(t *testing.T) {
		var sv StringValue
		err := yaml.Unmarshal([]byte("env_var: BITS_PASSWORD\npath: /var/vcap/secret\n"), &sv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "conflicting sources env_var, path")
	})

	t.Run("env var default", func(t *testing.T) {
		def := "fallback"
		sv := StringValue{&StringValueEnvVar{EnvVar: "BITS_TEST_DEFINITELY_UNSET", Default: &def}}
		assert.True(t, sv.HasValue(ctx))
		v, err := sv.GetValue(ctx)
		require.NoError(t, err)
		assert.Equal(t, "fallback", v)
	})

	t.Run("unset", func(t *testing.T) {
		var sv *StringValue
		assert.False(t, sv.HasValue(ctx))
		_, err := sv.GetValue(ctx)
		require.Error(t, err)
	})
}
