package logging

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
)

// NewZap adapts a zap logger to Logger. Arguments follow the slog convention of
// alternating keys and values; slog.Attr values are accepted as well. Passing
// nil yields a no-op zap logger.
func NewZap(z *zap.Logger) Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &zapLogger{s: z.Sugar()}
}

type zapLogger struct {
	s *zap.SugaredLogger
}

func (l *zapLogger) Debug(_ context.Context, msg string, args ...any) {
	l.s.Debugw(msg, zapArgs(args)...)
}

func (l *zapLogger) Info(_ context.Context, msg string, args ...any) {
	l.s.Infow(msg, zapArgs(args)...)
}

func (l *zapLogger) Warn(_ context.Context, msg string, args ...any) {
	l.s.Warnw(msg, zapArgs(args)...)
}

func (l *zapLogger) Error(_ context.Context, msg string, args ...any) {
	l.s.Errorw(msg, zapArgs(args)...)
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{s: l.s.With(zapArgs(args)...)}
}

// zapArgs turns slog.Attr entries into zap fields, which the sugared logger
// accepts inline among key/value pairs.
func zapArgs(args []any) []any {
	out := make([]any, 0, len(args))
	for _, a := range args {
		if attr, ok := a.(slog.Attr); ok {
			out = append(out, zap.Any(attr.Key, attr.Value.Resolve().Any()))
			continue
		}
		out = append(out, a)
	}
	return out
}
