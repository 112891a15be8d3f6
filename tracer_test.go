package keycloakauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNoopTracer(t *testing.T) {
	tracer := &NoopTracer{}
	ctx, span := tracer.StartSpan(context.Background(), "test_span")

	assert.Equal(t, context.Background(), ctx, "NoopTracer should return the context unchanged")

	_, ok := span.(*NoopSpan)
	assert.True(t, ok, "Should return a NoopSpan")

	// Span methods should not panic.
	span.SetTag("tag", "value")
	span.Finish()
}

func TestOpenTelemetryTracer(t *testing.T) {
	tp := noop.NewTracerProvider()
	tracer := NewOpenTelemetryTracer(tp.Tracer("test"))

	ctx, span := tracer.StartSpan(context.Background(), "test_span")
	assert.NotNil(t, ctx)

	_, ok := span.(*OpenTelemetrySpan)
	assert.True(t, ok, "Should return an OpenTelemetrySpan")

	// Span methods should not panic.
	span.SetTag("tag", "value")
	span.Finish()
}
