package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestInit(t *testing.T) {
	logger := Init("test-service", slog.LevelInfo)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestSymbol_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// No symbol set
	if s := Symbol(ctx); s != "" {
		t.Errorf("expected empty symbol, got %q", s)
	}

	// Set and retrieve
	ctx = WithSymbol(ctx, "AAPL")
	if s := Symbol(ctx); s != "AAPL" {
		t.Errorf("expected 'AAPL', got %q", s)
	}
}

func TestLogWithSymbol(t *testing.T) {
	ctx := context.Background()

	// No symbol
	attrs := LogWithSymbol(ctx)
	if attrs != nil {
		t.Errorf("expected nil attrs when no symbol, got %v", attrs)
	}

	// With symbol set
	ctx = WithSymbol(ctx, "GGAL")
	attrs = LogWithSymbol(ctx)
	if len(attrs) == 0 {
		t.Fatal("expected non-empty attrs with symbol set")
	}
}
