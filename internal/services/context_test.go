package services_test

import (
	"context"
	"testing"

	"vidbridge/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRequestID(ctx, "req-123")
	ctx = services.WithTransport(ctx, "http")

	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
	if transport, ok := services.TransportFromContext(ctx); !ok || transport != "http" {
		t.Fatalf("unexpected transport: %v %v", transport, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	if got := services.WithRequestID(ctx, ""); got != ctx {
		t.Fatal("expected blank request id to return original context")
	}
	if _, ok := services.TransportFromContext(services.WithTransport(ctx, "")); ok {
		t.Fatal("expected blank transport to be absent")
	}
}
