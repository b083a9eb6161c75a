package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across the service.
// The *Obj variants attach an event name and a field map to the entry.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)

	DebugObj(msg, event string, obj map[string]any)
	InfoObj(msg, event string, obj map[string]any)
	WarnObj(msg, event string, obj map[string]any)
	ErrorObj(msg, event string, obj map[string]any)

	With(fields ...zap.Field) Logger
	Sync() error
}

// Options configures New.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

type zapLogger struct {
	l *zap.Logger
}

// New builds a zap-backed Logger.
func New(opts Options) (Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("log format %q is not supported", opts.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &zapLogger{l: l}, nil
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return &zapLogger{l: l}
}

func (z *zapLogger) Debug(msg string, fields ...zap.Field) { z.l.Debug(msg, fields...) }
func (z *zapLogger) Info(msg string, fields ...zap.Field)  { z.l.Info(msg, fields...) }
func (z *zapLogger) Warn(msg string, fields ...zap.Field)  { z.l.Warn(msg, fields...) }
func (z *zapLogger) Error(msg string, fields ...zap.Field) { z.l.Error(msg, fields...) }

func (z *zapLogger) DebugObj(msg, event string, obj map[string]any) {
	z.l.Debug(msg, objFields(event, obj)...)
}

func (z *zapLogger) InfoObj(msg, event string, obj map[string]any) {
	z.l.Info(msg, objFields(event, obj)...)
}

func (z *zapLogger) WarnObj(msg, event string, obj map[string]any) {
	z.l.Warn(msg, objFields(event, obj)...)
}

func (z *zapLogger) ErrorObj(msg, event string, obj map[string]any) {
	z.l.Error(msg, objFields(event, obj)...)
}

func (z *zapLogger) With(fields ...zap.Field) Logger { return &zapLogger{l: z.l.With(fields...)} }

func (z *zapLogger) Sync() error { return z.l.Sync() }

// objFields turns an event name and a field map into zap fields.
func objFields(event string, obj map[string]any) []zap.Field {
	fields := make([]zap.Field, 0, len(obj)+1)
	if event != "" {
		fields = append(fields, zap.String("event", event))
	}
	for k, v := range obj {
		fields = append(fields, zap.Any(k, v))
	}
	return fields
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...zap.Field)             {}
func (NopLogger) Info(string, ...zap.Field)              {}
func (NopLogger) Warn(string, ...zap.Field)              {}
func (NopLogger) Error(string, ...zap.Field)             {}
func (NopLogger) DebugObj(string, string, map[string]any) {}
func (NopLogger) InfoObj(string, string, map[string]any)  {}
func (NopLogger) WarnObj(string, string, map[string]any)  {}
func (NopLogger) ErrorObj(string, string, map[string]any) {}
func (n NopLogger) With(...zap.Field) Logger              { return n }
func (NopLogger) Sync() error                             { return nil }
