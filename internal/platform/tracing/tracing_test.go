package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestExtractTraceContext(t *testing.T) {
	t.Run("valid traceparent joins the remote trace", func(t *testing.T) {
		parent := "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

		ctx := ExtractTraceContext(context.Background(), parent, "vendor=state")

		sc := trace.SpanContextFromContext(ctx)
		require.True(t, sc.IsValid())
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", sc.TraceID().String())
		assert.Equal(t, "00f067aa0ba902b7", sc.SpanID().String())
		assert.Equal(t, "vendor=state", sc.TraceState().String())
	})

	t.Run("empty traceparent leaves the context untouched", func(t *testing.T) {
		ctx := ExtractTraceContext(context.Background(), "", "")
		assert.False(t, trace.SpanContextFromContext(ctx).IsValid())
	})

	t.Run("malformed traceparent yields no span context", func(t *testing.T) {
		ctx := ExtractTraceContext(context.Background(), "not-a-traceparent", "")
		assert.False(t, trace.SpanContextFromContext(ctx).IsValid())
	})
}
