package otel

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type scopeImpl struct {
	span oteltrace.Span
}

func (s *scopeImpl) End() {
	s.span.End()
}

func (s *scopeImpl) TraceError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scopeImpl) AddEvent(name string) {
	s.span.AddEvent(name)
}

// SetAttribute records value under key. Nil pointers are skipped so optional
// todo dates do not show up as "<nil>".
func (s *scopeImpl) SetAttribute(key string, value any) {
	if kv, ok := keyValue(key, value); ok {
		s.span.SetAttributes(kv)
	}
}

func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

func keyValue(key string, value any) (attribute.KeyValue, bool) {
	switch val := value.(type) {
	case nil:
		return attribute.KeyValue{}, false
	case bool:
		return attribute.Bool(key, val), true
	case *bool:
		if val == nil {
			return attribute.KeyValue{}, false
		}

		return attribute.Bool(key, *val), true
	case string:
		return attribute.String(key, val), true
	case *string:
		if val == nil {
			return attribute.KeyValue{}, false
		}

		return attribute.String(key, *val), true
	case int:
		return attribute.Int(key, val), true
	case int64:
		return attribute.Int64(key, val), true
	case float64:
		return attribute.Float64(key, val), true
	case time.Time:
		return attribute.String(key, val.Format(time.RFC3339)), true
	case []string:
		return attribute.StringSlice(key, val), true
	default:
		return attribute.String(key, fmt.Sprintf("%v", val)), true
	}
}

func NewScope(span oteltrace.Span) Scope {
	return &scopeImpl{
		span: span,
	}
}
