package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "propmate"

// StartPollSpan starts a span for one queue poll cycle.
func StartPollSpan(ctx context.Context, orgID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "queue.poll",
		trace.WithAttributes(
			attribute.String("org.id", orgID),
		),
	)
}

// StartViewSpan starts a span for a queue view computation.
func StartViewSpan(ctx context.Context, key string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "queue.view",
		trace.WithAttributes(
			attribute.String("view.key", key),
		),
	)
}

// StartDetailSpan starts a span for an issue detail fetch.
func StartDetailSpan(ctx context.Context, issueID int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "issue.detail",
		trace.WithAttributes(
			attribute.Int("issue.id", issueID),
		),
	)
}
