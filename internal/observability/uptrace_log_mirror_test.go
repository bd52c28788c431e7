package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/daterange"
	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestSkipRules(t *testing.T) {
	if !skipHealthProbes(zapcore.InfoLevel, "http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if skipHealthProbes(zapcore.InfoLevel, "http request", []any{"path", "/v1/teams/Astralis/rosters"}) {
		t.Fatalf("did not expect roster request log to be skipped")
	}
	if skipHealthProbes(zapcore.InfoLevel, "liquipedia request failed", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}

	belowInfo := skipBelow(zapcore.InfoLevel)
	if !belowInfo(zapcore.DebugLevel, "team page fetched", nil) {
		t.Fatalf("expected debug entry to be skipped")
	}
	if belowInfo(zapcore.WarnLevel, "liquipedia circuit opened", nil) {
		t.Fatalf("did not expect warn entry to be skipped")
	}

	m := &uptraceLogMirror{skip: []skipRule{skipHealthProbes, belowInfo}}
	if !m.skipped(zapcore.DebugLevel, "anything", nil) || m.skipped(zapcore.InfoLevel, "rescrape finished", nil) {
		t.Fatalf("unexpected combined skip result")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"team_url", "https://liquipedia.net/counterstrike/Astralis", "attempt", 2, "records"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "team_url" || attrs[0].Value.AsString() != "https://liquipedia.net/counterstrike/Astralis" {
		t.Fatalf("unexpected team_url attribute")
	}
	if attrs[1].Key != "attempt" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute")
	}
	if attrs[2].Key != "records" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected records attribute")
	}
}

func TestToOTelLogValue(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"teams":   11,
		"replace": true,
	}, 0)
	if v.Kind() != otellog.KindMap || len(v.AsMap()) != 2 {
		t.Fatalf("expected map value with 2 items, got %s", v.Kind())
	}

	if got := toOTelLogValue(errors.New("boom"), 0).AsString(); got != "boom" {
		t.Fatalf("unexpected error value %q", got)
	}
	if got := toOTelLogValue(1500*time.Millisecond, 0).AsString(); got != "1.5s" {
		t.Fatalf("unexpected duration value %q", got)
	}
	if got := toOTelLogValue([]string{"a", "b"}, 0); got.Kind() != otellog.KindSlice {
		t.Fatalf("expected slice value, got %s", got.Kind())
	}
	if got := toOTelLogValue(time.Date(2016, time.January, 19, 0, 0, 0, 0, time.UTC), 0).AsString(); got != "2016-01-19" {
		t.Fatalf("unexpected date value %q", got)
	}
	if got := toOTelLogValue(daterange.Date(2016, time.January, 19), 0).AsString(); got != "2016-01-19" {
		t.Fatalf("unexpected roster date value %q", got)
	}
	if got := toOTelLogValue(uint16(7), 0).AsInt64(); got != 7 {
		t.Fatalf("unexpected uint value %d", got)
	}
	if got := toOTelLogValue(daterange.Never(), 0).AsString(); got != "never" {
		t.Fatalf("unexpected range value %q", got)
	}
}

func TestToOTelSeverity(t *testing.T) {
	if toOTelSeverity(zapcore.WarnLevel) != otellog.SeverityWarn {
		t.Fatalf("unexpected warn severity")
	}
	if toOTelSeverity(zapcore.ErrorLevel) != otellog.SeverityError {
		t.Fatalf("unexpected error severity")
	}
}
