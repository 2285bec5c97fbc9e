// Package logger provides a structured logging facility using zap logger.
// It offers context-aware logging, environment-specific encoders and helper
// functions for the different log levels. Logs are diagnostics only: purl
// writes them to the error stream so stdout carries nothing but fetched content.
package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment selects the human-readable console encoder.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment selects the JSON encoder.
	ProductionEnvironment = "production"

	// DefaultLevel keeps a normal invocation silent unless something goes wrong.
	DefaultLevel = "warn"
)

// defaultLogger is the package-level logger used when no logger is found in context.
var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// Options configure the default logger.
type Options struct {
	// Environment is either DevelopmentEnvironment or ProductionEnvironment.
	Environment string
	// Level is a zap level name ("debug", "info", "warn", "error"). Empty means DefaultLevel.
	Level string
	// Output receives the log entries. Nil means stderr.
	Output zapcore.WriteSyncer
}

// Setup initializes the default logger from opts.
func Setup(opts Options) error {
	levelName := opts.Level
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("could not parse log level: %w", err)
	}

	out := opts.Output
	if out == nil {
		out = zapcore.Lock(os.Stderr)
	}

	var encoder zapcore.Encoder
	if opts.Environment == ProductionEnvironment {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	defaultLogger = zap.New(zapcore.NewCore(encoder, out, zap.NewAtomicLevelAt(level)))

	return nil
}

// key is a custom type used as a context key for storing and retrieving logger instances.
type key struct{}

// Get retrieves a logger from the provided context.
// If no logger is found in the context, it returns the default logger.
func Get(ctx context.Context) *zap.Logger {
	if logger, _ := ctx.Value(key{}).(*zap.Logger); logger != nil {
		return logger
	}

	return defaultLogger
}

// WithLogger creates a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// WithFields creates a new context with a logger that includes the specified fields.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// IsDebug checks if the logger in the context is configured at debug level.
func IsDebug(ctx context.Context) bool {
	return Get(ctx).Core().Enabled(zap.DebugLevel)
}

// Sync flushes any buffered log entries of the logger in ctx.
func Sync(ctx context.Context) error {
	return Get(ctx).Sync()
}

// Debug logs a message at debug level with the given fields.
func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

// Info logs a message at info level with the given fields.
func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

// Warn logs a message at warn level with the given fields.
func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

// Error logs a message at error level with the given fields.
func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}
