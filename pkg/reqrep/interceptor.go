package reqrep

import (
	"context"
	"time"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/logging"
)

// Call describes one exchange as seen by interceptors. Request must be
// treated as read-only.
type Call struct {
	Driver  string
	Address string
	Mode    Mode
	Request []byte
}

// Invoker performs the exchange described by call.
type Invoker func(ctx context.Context, call *Call) ([]byte, error)

// Interceptor wraps an exchange. It must call next at most once.
type Interceptor func(ctx context.Context, call *Call, next Invoker) ([]byte, error)

// chain composes ics around final, ics[0] outermost.
func chain(final Invoker, ics []Interceptor) Invoker {
	for i := len(ics) - 1; i >= 0; i-- {
		ic, next := ics[i], final
		final = func(ctx context.Context, call *Call) ([]byte, error) {
			return ic(ctx, call, next)
		}
	}
	return final
}

// LoggingInterceptor logs every exchange at debug level and failures at warn.
// Payloads are never logged.
func LoggingInterceptor(l logging.Logger) Interceptor {
	if l == nil {
		l = logging.Nop()
	}
	return func(ctx context.Context, call *Call, next Invoker) ([]byte, error) {
		start := time.Now()
		reply, err := next(ctx, call)
		args := []any{
			"driver", call.Driver,
			"address", call.Address,
			"mode", call.Mode.String(),
			"request_bytes", len(call.Request),
			"duration", time.Since(start),
			logging.Redacted("payload"),
		}
		if err != nil {
			l.Warn(ctx, "reqrep: exchange failed", append(args, "error", err)...)
			return nil, err
		}
		l.Debug(ctx, "reqrep: exchange", append(args, "reply_bytes", len(reply))...)
		return reply, nil
	}
}
