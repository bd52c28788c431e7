package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestStartSpan_NoParentReturnsParent(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.Healthz", teamAttr("Astralis"))
	defer span.End()

	if got != ctx {
		t.Fatalf("expected context unchanged without parent span")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected invalid span context without parent span")
	}
}

func TestStartSpan_KeepsTraceOfParent(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	got, span := startSpan(ctx, "httpapi.Handler.GetPlayer", playerAttr("device"))
	defer span.End()

	if trace.SpanContextFromContext(got).TraceID() != parent.TraceID() {
		t.Fatalf("expected child span in the parent trace")
	}
}
