// Package logger пишет структурированные JSON-логи с именем сервиса,
// хостом и request_id.
package logger

import (
	"context"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
)

type ctxKey struct{}

// New создаёт JSON-логгер. level: debug, info, warn, error.
func New(service, level string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(h).With(
		slog.String("service", service),
		slog.String("hostname", hostname()),
	)
}

// WithContext кладёт логгер в контекст запроса
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext достаёт логгер из контекста, иначе slog.Default()
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func hostname() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	// fallback
	addrs, _ := net.InterfaceAddrs()
	if len(addrs) > 0 {
		return addrs[0].String()
	}
	return "unknown-host"
}
