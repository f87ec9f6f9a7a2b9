// Package logger provides structured logging for the harvester.
package logger

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface is the logging contract the rest of the application depends
// on. Fields are variadic key/value pairs.
type Interface interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	Fatal(msg string, fields ...any)
	With(fields ...any) Interface
	WithComponent(component string) Interface
	WithRunID(runID string) Interface
	WithError(err error) Interface
	WithDuration(d time.Duration) Interface
}

// Config configures the logger.
type Config struct {
	// Level is the minimum logging level (debug, info, warn, error).
	Level string
	// Encoding selects "console" or "json" output.
	Encoding string
	// Development enables colored, human-oriented console output.
	Development bool
}

// Logger implements Interface on top of zap.
type Logger struct {
	zapLogger *zap.Logger
}

var logLevels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}

// New builds a logger writing to stdout with the configured level and
// encoding. Unset fields fall back to info-level console output.
func New(cfg Config) (Interface, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "console"
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	if cfg.Development {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(levelFor(cfg.Level)),
		Development:      cfg.Development,
		Encoding:         cfg.Encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stdout"},
	}

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{zapLogger: zapLogger}, nil
}

func levelFor(level string) zapcore.Level {
	if lvl, ok := logLevels[strings.ToLower(level)]; ok {
		return lvl
	}
	return zapcore.InfoLevel
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...any) {
	l.zapLogger.Debug(msg, toZapFields(fields)...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...any) {
	l.zapLogger.Info(msg, toZapFields(fields)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...any) {
	l.zapLogger.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...any) {
	l.zapLogger.Error(msg, toZapFields(fields)...)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, fields ...any) {
	l.zapLogger.Fatal(msg, toZapFields(fields)...)
}

// With returns a logger carrying the given fields.
func (l *Logger) With(fields ...any) Interface {
	return &Logger{zapLogger: l.zapLogger.With(toZapFields(fields)...)}
}

// WithComponent tags log lines with a component name.
func (l *Logger) WithComponent(component string) Interface {
	return l.With("component", component)
}

// WithRunID tags log lines with the harvest run id.
func (l *Logger) WithRunID(runID string) Interface {
	return l.With("run_id", runID)
}

// WithError attaches an error to the logger.
func (l *Logger) WithError(err error) Interface {
	return l.With("error", err)
}

// WithDuration attaches a duration to the logger.
func (l *Logger) WithDuration(d time.Duration) Interface {
	return l.With("duration", d)
}

// toZapFields converts variadic key/value pairs to zap fields. Keys must
// be strings; a trailing key without a value is dropped.
func toZapFields(fields []any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	zapFields := make([]zap.Field, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		zapFields = append(zapFields, zap.Any(key, fields[i+1]))
	}

	return zapFields
}
