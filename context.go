package marklog

import "context"

type loggerContextKey struct{}

// ContextWithLogger returns a child context carrying logger.
func ContextWithLogger(ctx context.Context, logger *Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// LoggerFromContext extracts the logger stored by ContextWithLogger. It
// returns a nil *Logger, which discards everything, when there is none.
func LoggerFromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerContextKey{}).(*Logger)
	return logger
}

// Ctx is shorthand for LoggerFromContext.
func Ctx(ctx context.Context) *Logger {
	return LoggerFromContext(ctx)
}
