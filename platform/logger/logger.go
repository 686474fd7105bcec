// Package logger wraps slog with the structured events the API emits.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a slog.Logger with typed helpers for recurring events, so every
// occurrence of an event carries the same keys.
type Logger struct {
	*slog.Logger
}

// New logs text at debug level in development and JSON at info level elsewhere.
func New(env string) *Logger {
	return newWithWriter(env, os.Stdout)
}

func newWithWriter(env string, w io.Writer) *Logger {
	if strings.EqualFold(env, "development") {
		return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	}
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))}
}

func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

func (l *Logger) HTTPError(method, path string, status int, err error, clientIP string) {
	l.Error("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
		slog.String("client_ip", clientIP),
	)
}

// AuthEvent records a sign-in or sign-up attempt. Failures carry the reason
// and are logged at warn level.
func (l *Logger) AuthEvent(event, email string, success bool, reason string) {
	attrs := []any{
		slog.String("event", event),
		slog.String("email", email),
		slog.Bool("success", success),
	}
	if success {
		l.Info("auth_event", attrs...)
		return
	}
	l.Warn("auth_event", append(attrs, slog.String("reason", reason))...)
}

func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// AgentCall records one gateway round trip made for a named agent.
func (l *Logger) AgentCall(agent string, latencyMs float64, err error) {
	attrs := []any{
		slog.String("agent", agent),
		slog.Float64("latency_ms", latencyMs),
	}
	if err != nil {
		l.Warn("agent_call", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	l.Info("agent_call", attrs...)
}

// ParseFallback records a reply that could not be read as structured data
// and was replaced by a default.
func (l *Logger) ParseFallback(agent string, responseLen int, reason string) {
	l.Warn("parse_fallback",
		slog.String("agent", agent),
		slog.Int("response_len", responseLen),
		slog.String("reason", reason),
	)
}

func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
