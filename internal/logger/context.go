package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	orgIDKey
)

// WithRequestID stores the per-request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the correlation ID, or an empty string outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithOrgID stores the organization the request acts on behalf of.
func WithOrgID(ctx context.Context, org string) context.Context {
	return context.WithValue(ctx, orgIDKey, org)
}

// OrgID returns the organization ID, or an empty string when unscoped.
func OrgID(ctx context.Context) string {
	org, _ := ctx.Value(orgIDKey).(string)
	return org
}

// RequestAttrs returns the identifying attributes for request-scoped log
// lines. Unset values are omitted so background jobs log clean lines.
func RequestAttrs(ctx context.Context) []any {
	attrs := make([]any, 0, 2)
	if id := RequestID(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	if org := OrgID(ctx); org != "" {
		attrs = append(attrs, slog.String("org_id", org))
	}
	return attrs
}
