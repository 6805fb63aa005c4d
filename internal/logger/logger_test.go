package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo}, // unknown defaults to info
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestID(ctx); got != "" {
		t.Fatalf("expected empty id on bare context, got %q", got)
	}

	ctx = WithRequestID(ctx, "req-42")
	if got := RequestID(ctx); got != "req-42" {
		t.Fatalf("expected req-42, got %q", got)
	}
}

func TestOrgIDContext(t *testing.T) {
	ctx := context.Background()
	if got := OrgID(ctx); got != "" {
		t.Fatalf("expected empty org on bare context, got %q", got)
	}

	ctx = WithOrgID(ctx, "org-7")
	if got := OrgID(ctx); got != "org-7" {
		t.Fatalf("expected org-7, got %q", got)
	}
	// The two values live under separate keys.
	if got := RequestID(ctx); got != "" {
		t.Fatalf("org id leaked into request id: %q", got)
	}
}

func TestRequestAttrs(t *testing.T) {
	if attrs := RequestAttrs(context.Background()); len(attrs) != 0 {
		t.Fatalf("expected no attrs on bare context, got %v", attrs)
	}

	ctx := WithOrgID(WithRequestID(context.Background(), "req-42"), "org-7")
	attrs := RequestAttrs(ctx)
	if len(attrs) != 2 {
		t.Fatalf("expected request_id and org_id attrs, got %v", attrs)
	}
	id, ok := attrs[0].(slog.Attr)
	if !ok || id.Key != "request_id" || id.Value.String() != "req-42" {
		t.Fatalf("first attr = %v", attrs[0])
	}
	org, ok := attrs[1].(slog.Attr)
	if !ok || org.Key != "org_id" || org.Value.String() != "org-7" {
		t.Fatalf("second attr = %v", attrs[1])
	}
}
