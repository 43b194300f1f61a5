// Package logging is the structured logging facade used by the server.
// SlogLogger backs it with log/slog.
package logging

import "context"

// Logger takes a message plus alternating key/value pairs:
//
//	log.Info(ctx, "rpc", "method", method, "code", code)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
