// Package logger provides structured logging using Go 1.21's log/slog.
// It sets up a JSON handler with service-level context and provides
// symbol propagation through context.Context, so every log line emitted
// while working on a symbol carries it.
package logger

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey string

const symbolKey ctxKey = "symbol"

// Init creates and returns a structured logger for the given service.
// The logger outputs JSON to stdout with the service name embedded.
func Init(service string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(
		slog.String("service", service),
	)

	// Set as default so log/slog.Info() etc. also use structured output
	slog.SetDefault(logger)

	return logger
}

// WithSymbol stores the symbol being worked on in the context.
func WithSymbol(ctx context.Context, symbol string) context.Context {
	return context.WithValue(ctx, symbolKey, symbol)
}

// Symbol extracts the symbol from context. Returns "" if not set.
func Symbol(ctx context.Context) string {
	if v, ok := ctx.Value(symbolKey).(string); ok {
		return v
	}
	return ""
}

// LogWithSymbol returns slog attributes including the symbol from context.
// Usage: slog.Info("msg", logger.LogWithSymbol(ctx)...)
func LogWithSymbol(ctx context.Context) []any {
	s := Symbol(ctx)
	if s == "" {
		return nil
	}
	return []any{slog.String("symbol", s)}
}
