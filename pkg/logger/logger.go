package logger

import (
	"context"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const loggerKey ctxKey = "logger"

var global = zap.NewNop().Sugar()

// Run builds the process logger for the given level and makes it the
// fallback returned by Log when a context carries no logger.
func Run(level string) *zap.SugaredLogger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		log.Printf("logger: unknown level `%s`, using info", level)
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	if lvl > zapcore.DebugLevel {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		log.Fatalf("logger: can't build zap logger, %v", err)
	}
	global = l.Sugar()
	return global
}

func WithLogger(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Log returns the logger stored in ctx, or the process logger.
func Log(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return global
	}
	if l, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok && l != nil {
		return l
	}
	return global
}
