package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "boardbridge"

// StartChainSpan starts a span for one form-call chain (add, remove, list).
func StartChainSpan(ctx context.Context, operation, userID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "chain",
		trace.WithAttributes(
			attribute.String("chain.operation", operation),
			attribute.String("chain.user_id", userID),
		),
	)
}

// StartDeliverySpan starts a span for an incoming webhook delivery.
func StartDeliverySpan(ctx context.Context, actionID, channelID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "delivery",
		trace.WithAttributes(
			attribute.String("delivery.action_id", actionID),
			attribute.String("delivery.channel_id", channelID),
		),
	)
}
