package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestEnrichContextWithLogger_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	ctx = EnrichContextWithLogger(ctx)
	log.Ctx(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), span.SpanContext().TraceID().String())
	assert.Contains(t, buf.String(), `"span_id"`)
}

func TestEnrichContextWithLogger_NoSpan(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, EnrichContextWithLogger(ctx))
}
