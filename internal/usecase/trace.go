package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "soccergraph/usecase"

// startUsecaseSpan opens a span per operation. Without an installed
// exporter this is a noop tracer; the embedding process decides.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}
