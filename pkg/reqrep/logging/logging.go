package logging

import (
	"context"
	"log/slog"
)

// Logger is what connections and peers log through. Every call takes the
// context of the operation being logged.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New adapts l. A nil l logs to slog.Default().
func New(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogAdapter{l}
}

type slogAdapter struct {
	l *slog.Logger
}

func (a slogAdapter) Debug(ctx context.Context, msg string, args ...any) {
	a.l.Log(ctx, slog.LevelDebug, msg, args...)
}

func (a slogAdapter) Info(ctx context.Context, msg string, args ...any) {
	a.l.Log(ctx, slog.LevelInfo, msg, args...)
}

func (a slogAdapter) Warn(ctx context.Context, msg string, args ...any) {
	a.l.Log(ctx, slog.LevelWarn, msg, args...)
}

func (a slogAdapter) Error(ctx context.Context, msg string, args ...any) {
	a.l.Log(ctx, slog.LevelError, msg, args...)
}

func (a slogAdapter) With(args ...any) Logger { return slogAdapter{a.l.With(args...)} }

// Nop discards everything.
func Nop() Logger { return nop{} }

type nop struct{}

func (nop) Debug(context.Context, string, ...any) {}
func (nop) Info(context.Context, string, ...any)  {}
func (nop) Warn(context.Context, string, ...any)  {}
func (nop) Error(context.Context, string, ...any) {}
func (n nop) With(...any) Logger                  { return n }

const payloadMask = "[redacted]"

// Redacted stands in for a payload under key. Message bytes never reach a
// log line; only their size does.
func Redacted(key string) slog.Attr { return slog.String(key, payloadMask) }

// Placeholder is the value Redacted logs.
func Placeholder() string { return payloadMask }
