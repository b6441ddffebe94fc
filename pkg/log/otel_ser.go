package log

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ SpanEventRecorder = &OtelSpanEventRecorder{}

const (
	missingAttributeValue = "MISSING"
	invalidAttributeKey   = "invalidKeysAndValues"
)

// OtelSpanEventRecorder records log entries as OpenTelemetry span events.
type OtelSpanEventRecorder struct {
	span trace.Span
}

func NewOtelSpanEventRecorder(span trace.Span) *OtelSpanEventRecorder {
	return &OtelSpanEventRecorder{span: span}
}

func (ser *OtelSpanEventRecorder) TraceID() string {
	return ser.span.SpanContext().TraceID().String()
}

func (ser *OtelSpanEventRecorder) SpanID() string {
	return ser.span.SpanContext().SpanID().String()
}

func (ser *OtelSpanEventRecorder) RecordEvent(name string, keysAndValues ...any) {
	ser.span.AddEvent(name, trace.WithAttributes(kvToOtelAttributes(keysAndValues...)...))
}

func (ser *OtelSpanEventRecorder) RecordError(name string, keysAndValues ...any) {
	ser.span.AddEvent(name, trace.WithAttributes(kvToOtelAttributes(keysAndValues...)...))
	ser.span.SetStatus(codes.Error, name)
}

// kvToOtelAttributes converts alternating key/value pairs into attributes.
// A trailing key without a value gets missingAttributeValue; the first
// non-string key stops conversion and the remainder is stored verbatim.
func kvToOtelAttributes(keysAndValues ...any) []attribute.KeyValue {
	if len(keysAndValues)%2 != 0 {
		keysAndValues = append(keysAndValues, missingAttributeValue)
	}

	attributes := make([]attribute.KeyValue, 0, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			attributes = append(attributes, attribute.String(invalidAttributeKey, fmt.Sprint(keysAndValues[i:])))
			break
		}

		switch v := keysAndValues[i+1].(type) {
		case bool:
			attributes = append(attributes, attribute.Bool(key, v))
		case int:
			attributes = append(attributes, attribute.Int(key, v))
		case int8:
			attributes = append(attributes, attribute.Int64(key, int64(v)))
		case int16:
			attributes = append(attributes, attribute.Int64(key, int64(v)))
		case int32:
			attributes = append(attributes, attribute.Int64(key, int64(v)))
		case int64:
			attributes = append(attributes, attribute.Int64(key, v))
		case uint8:
			attributes = append(attributes, attribute.Int64(key, int64(v)))
		case uint16:
			attributes = append(attributes, attribute.Int64(key, int64(v)))
		case uint32:
			attributes = append(attributes, attribute.Int64(key, int64(v)))
		case float32:
			attributes = append(attributes, attribute.Float64(key, float64(v)))
		case float64:
			attributes = append(attributes, attribute.Float64(key, v))
		case fmt.Stringer:
			attributes = append(attributes, attribute.String(key, v.String()))
		default:
			attributes = append(attributes, attribute.String(key, fmt.Sprint(v)))
		}
	}

	return attributes
}
