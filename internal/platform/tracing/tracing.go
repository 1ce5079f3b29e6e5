// Package tracing wraps OpenTelemetry's tracer behind a small interface so
// domain packages can record spans without depending on its APIs directly.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute is a key/value pair attached to a span.
type Attribute struct {
	Key   string
	Value string
}

// String builds a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Span is a unit of work being traced. End must be called exactly once.
type Span interface {
	End(err error)
}

// Tracer starts spans for named operations.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// OTelTracer is an OpenTelemetry-backed Tracer.
type OTelTracer struct {
	tracer trace.Tracer
}

// Option configures the OTelTracer.
type Option func(*OTelTracer)

// WithTracer allows injecting a custom OpenTelemetry tracer.
// Useful for testing or when a pre-configured tracer is available.
func WithTracer(t trace.Tracer) Option {
	return func(o *OTelTracer) {
		o.tracer = t
	}
}

// New creates an OpenTelemetry-backed tracer. By default it uses the global
// tracer provider under the given instrumentation name.
func New(name string, opts ...Option) *OTelTracer {
	t := &OTelTracer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.tracer == nil {
		t.tracer = otel.Tracer(name)
	}
	return t
}

// Start creates a new span with the given name and attributes.
func (t *OTelTracer) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	otelAttrs := make([]attribute.KeyValue, len(attrs))
	for i, a := range attrs {
		otelAttrs[i] = attribute.String(a.Key, a.Value)
	}
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(otelAttrs...))
	return ctx, &otelSpan{span: span}
}

type otelSpan struct {
	span trace.Span
}

// End completes the span, recording any error.
func (s *otelSpan) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}

// Noop returns a tracer that records nothing. Used when tracing is not wired.
func Noop() Tracer {
	return noopTracer{}
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}
