package bctx

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, RequestID(ctx))
	require.Equal(t, "fallback", RequestIDOr(ctx, "fallback"))

	ctx = WithRequestID(ctx, "some-value")
	require.Equal(t, "some-value", RequestID(ctx))
	require.Equal(t, "some-value", RequestIDOr(ctx, "fallback"))
}

func TestEnsureRequestID(t *testing.T) {
	t.Run("keeps existing", func(t *testing.T) {
		ctx := EnsureRequestID(WithRequestID(context.Background(), "existing"))
		require.Equal(t, "existing", RequestID(ctx))
	})
	t.Run("mints from generator", func(t *testing.T) {
		ctx := WithRequestIDGenerator(context.Background(), func() string { return "minted" })
		require.Equal(t, "minted", RequestID(EnsureRequestID(ctx)))
	})
	t.Run("empty id is replaced", func(t *testing.T) {
		ctx := WithRequestIDGenerator(WithRequestID(context.Background(), ""), func() string { return "minted" })
		require.Equal(t, "minted", RequestID(EnsureRequestID(ctx)))
	})
	t.Run("mints random uuid", func(t *testing.T) {
		ctx := EnsureRequestID(context.Background())
		_, err := uuid.Parse(RequestID(ctx))
		require.NoError(t, err)
	})
}
