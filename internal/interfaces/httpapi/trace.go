package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("roster-wayback/internal/interfaces/httpapi")

// startSpan opens a handler span under the otelhttp request span. Filtered
// routes such as /healthz have no parent and get the parent (noop) span back.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func teamAttr(teamID string) attribute.KeyValue {
	return attribute.String("roster.team_id", teamID)
}

func playerAttr(playerID string) attribute.KeyValue {
	return attribute.String("roster.player_id", playerID)
}
