// Package logging defines the structured-logging interface used by the
// server, with a log/slog implementation. Attributes stored in a context
// with ContextWith are added to every record logged with that context.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "user migrated", "from", "staff", "to", "operators")
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

type attrsKey struct{}

// ContextWith returns a copy of ctx carrying args in addition to any
// pairs already stored there.
func ContextWith(ctx context.Context, args ...any) context.Context {
	prev := contextArgs(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(append(merged, prev...), args...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

func contextArgs(ctx context.Context) []any {
	args, _ := ctx.Value(attrsKey{}).([]any)
	return args
}
