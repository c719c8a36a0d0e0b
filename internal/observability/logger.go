package observability

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/supplykz/supplier-console/config"
	"github.com/supplykz/supplier-console/internal/shared"
)

// Logger provides structured logging with context awareness.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
}

// Field represents a structured log field.
type Field = zap.Field

// NewLogger builds a zap logger from the observability config.
// Output goes to stderr so command output on stdout stays clean.
func NewLogger(cfg config.ObservabilityConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zcfg zap.Config
	switch cfg.LogFormat {
	case "json":
		zcfg = zap.NewProductionConfig()
	default:
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.DisableStacktrace = level > zapcore.DebugLevel

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// ContextLogger adds the request ID carried by ctx to every entry.
type ContextLogger struct {
	base *zap.Logger
}

// NewContextLogger wraps base; a nil base logs nothing.
func NewContextLogger(base *zap.Logger) *ContextLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &ContextLogger{base: base}
}

func (l *ContextLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.with(ctx).Debug(msg, fields...)
}

func (l *ContextLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.with(ctx).Info(msg, fields...)
}

func (l *ContextLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.with(ctx).Warn(msg, fields...)
}

func (l *ContextLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.with(ctx).Error(msg, fields...)
}

// Zap returns the underlying logger.
func (l *ContextLogger) Zap() *zap.Logger {
	return l.base
}

func (l *ContextLogger) with(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.base
	}
	if id := shared.RequestID(ctx); id != "" {
		return l.base.With(zap.String("request_id", id))
	}
	return l.base
}
