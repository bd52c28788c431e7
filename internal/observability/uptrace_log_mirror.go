package observability

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"
)

const (
	uptraceLogInstrumentation = "roster-wayback/internal/platform/logging"
	maxLogValueDepth          = 3
)

// skipRule drops an entry before it is exported.
type skipRule func(level logging.Level, msg string, args []any) bool

// skipHealthProbes drops access logs of liveness checks.
func skipHealthProbes(_ logging.Level, msg string, args []any) bool {
	if msg != "http request" {
		return false
	}
	path, _ := argValue(args, "path").(string)
	return path == "/healthz"
}

// skipBelow drops entries under min. The crawler logs every page at debug.
func skipBelow(min logging.Level) skipRule {
	return func(level logging.Level, _ string, _ []any) bool {
		return level < min
	}
}

type uptraceLogMirror struct {
	logger otellog.Logger
	skip   []skipRule
}

func newUptraceLogMirror(serviceVersion string, rules ...skipRule) *uptraceLogMirror {
	return &uptraceLogMirror{
		logger: otelglobal.Logger(uptraceLogInstrumentation, otellog.WithInstrumentationVersion(serviceVersion)),
		skip:   rules,
	}
}

func (m *uptraceLogMirror) skipped(level logging.Level, msg string, args []any) bool {
	return slices.ContainsFunc(m.skip, func(rule skipRule) bool {
		return rule(level, msg, args)
	})
}

// Emit has the logging.MirrorFunc signature.
func (m *uptraceLogMirror) Emit(ctx context.Context, level logging.Level, msg string, args ...any) {
	if m.skipped(level, msg, args) {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	severity := toOTelSeverity(level)
	if !m.logger.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
		return
	}

	now := time.Now().UTC()
	var record otellog.Record
	record.SetTimestamp(now)
	record.SetObservedTimestamp(now)
	record.SetSeverity(severity)
	record.SetSeverityText(strings.ToUpper(level.String()))
	record.SetEventName(msg)
	record.SetBody(otellog.StringValue(msg))
	if attrs := buildOTelLogAttributes(args); len(attrs) > 0 {
		record.AddAttributes(attrs...)
	}

	m.logger.Emit(ctx, record)
}

func argValue(args []any, key string) any {
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok && k == key {
			return args[i+1]
		}
	}
	return nil
}

// buildOTelLogAttributes pairs key/value args. A non-string key is named by
// its position and a trailing key without a value becomes an empty attribute.
func buildOTelLogAttributes(args []any) []otellog.KeyValue {
	attrs := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, _ := args[i].(string)
		if strings.TrimSpace(key) == "" {
			key = "arg_" + strconv.Itoa(i/2)
		}
		if i+1 == len(args) {
			attrs = append(attrs, otellog.Empty(key))
			break
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: toOTelLogValue(args[i+1], 0)})
	}
	return attrs
}

func toOTelSeverity(level zapcore.Level) otellog.Severity {
	switch {
	case level <= zapcore.DebugLevel:
		return otellog.SeverityDebug
	case level == zapcore.InfoLevel:
		return otellog.SeverityInfo
	case level == zapcore.WarnLevel:
		return otellog.SeverityWarn
	case level == zapcore.ErrorLevel:
		return otellog.SeverityError
	default:
		return otellog.SeverityFatal
	}
}

func toOTelLogValue(value any, depth int) otellog.Value {
	switch v := value.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case []byte:
		return otellog.BytesValue(slices.Clone(v))
	case time.Time:
		// Roster dates are UTC midnights and read better without a clock.
		if v.Equal(v.Truncate(24*time.Hour)) && v.Location() == time.UTC {
			return otellog.StringValue(v.Format(time.DateOnly))
		}
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case error:
		return otellog.StringValue(v.Error())
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	}

	if depth >= maxLogValueDepth {
		return otellog.StringValue(fmt.Sprint(value))
	}

	rv := reflect.ValueOf(value)
	switch {
	case rv.CanInt():
		return otellog.Int64Value(rv.Int())
	case rv.CanUint():
		if u := rv.Uint(); u <= math.MaxInt64 {
			return otellog.Int64Value(int64(u))
		}
		return otellog.StringValue(fmt.Sprint(value))
	case rv.CanFloat():
		return otellog.Float64Value(rv.Float())
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return otellog.Value{}
		}
		return toOTelLogValue(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		items := make([]otellog.Value, rv.Len())
		for i := range items {
			items[i] = toOTelLogValue(rv.Index(i).Interface(), depth+1)
		}
		return otellog.SliceValue(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return otellog.StringValue(fmt.Sprint(value))
		}
		kvs := make([]otellog.KeyValue, 0, rv.Len())
		for _, key := range rv.MapKeys() {
			kvs = append(kvs, otellog.KeyValue{
				Key:   key.String(),
				Value: toOTelLogValue(rv.MapIndex(key).Interface(), depth+1),
			})
		}
		slices.SortFunc(kvs, func(a, b otellog.KeyValue) int { return strings.Compare(a.Key, b.Key) })
		return otellog.MapValue(kvs...)
	default:
		return otellog.StringValue(fmt.Sprint(value))
	}
}
