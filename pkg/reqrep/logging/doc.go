// Package logging provides a minimal logging facade for reqrep.
//
// The Logger interface wraps the context-aware subset of log/slog, so
// applications can plug in their own implementation for testing, redaction, or
// integration with an existing logging system.
//
// # Implementations
//
//	logger := logging.New(nil)              // slog.Default()
//	logger := logging.New(slog.New(handler)) // custom slog handler
//	logger := logging.NewZap(z)              // *zap.Logger
//	logger := logging.Nop()                  // discard
//
// Setup builds a zap logger from a Config (level, console or json encoding,
// stdout/stderr/file outputs, optional lumberjack rotation for files):
//
//	z, err := logging.Setup(logging.Config{Level: "debug", Format: "json", Outputs: []string{"stderr"}})
//	if err != nil {
//	    return err
//	}
//	defer z.Sync()
//	conn, err := reqrep.Dial(ctx, addr, reqrep.WithLogger(logging.NewZap(z)))
//
// # Redaction
//
// Message payloads are opaque and may carry anything. reqrep never logs them;
// it records sizes and marks the payload with Redacted:
//
//	logger.Debug(ctx, "exchange completed", logging.Redacted("payload"), "reply_bytes", n)
//	// payload="[redacted]"
package logging
