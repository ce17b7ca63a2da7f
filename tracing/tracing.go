// Package tracing wires the client facade's Publish/Subscribe/reconnect
// operations to OpenTelemetry spans, an ambient observability concern this
// corpus's broker-side sibling (chenquan-lighthouse) carries via
// go.opentelemetry.io/otel. Tracing is opt-in: client.Options.Tracer
// defaults to the global no-op tracer, so a caller who never configures
// this package pays nothing for it.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/breezymind/mqttcore/client"

// Tracer returns the named tracer this package's helpers use by default
// when a caller does not supply their own trace.Tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartPublish starts a span around a Publish call, tagged with the topic
// and QoS so a trace backend can correlate publishes with broker behavior.
func StartPublish(ctx context.Context, tracer trace.Tracer, topic string, qos byte) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mqtt.publish", trace.WithAttributes(
		attribute.String("mqtt.topic", topic),
		attribute.Int("mqtt.qos", int(qos)),
	))
}

// StartSubscribe starts a span around a Subscribe call.
func StartSubscribe(ctx context.Context, tracer trace.Tracer, topic string, qos byte) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mqtt.subscribe", trace.WithAttributes(
		attribute.String("mqtt.topic", topic),
		attribute.Int("mqtt.qos", int(qos)),
	))
}

// StartReconnect starts a span around one reconnect attempt.
func StartReconnect(ctx context.Context, tracer trace.Tracer) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mqtt.reconnect")
}

// EndWithError records err on span (if non-nil) and ends it.
func EndWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
