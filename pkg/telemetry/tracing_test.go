package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInjectTraceContext(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	attrs := InjectTraceContext(ctx)
	require.Contains(t, attrs, "traceparent")
	assert.Equal(t, "String", *attrs["traceparent"].DataType)
	assert.Contains(t, *attrs["traceparent"].StringValue, span.SpanContext().TraceID().String())

	carrier := sqsCarrier{attrs: attrs}
	extracted := otel.GetTextMapPropagator().Extract(context.Background(), carrier)
	assert.Contains(t, carrier.Keys(), "traceparent")
	assert.NotEmpty(t, carrier.Get("traceparent"))
	assert.Empty(t, carrier.Get("missing"))
	assert.NotNil(t, extracted)
}

func TestInitTracer_None(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "test", ExporterNone, "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_Unknown(t *testing.T) {
	_, err := InitTracer(context.Background(), "test", "zipkin", "")
	assert.Error(t, err)
}
