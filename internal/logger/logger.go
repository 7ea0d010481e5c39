// Package logger builds the zap loggers used by every binary in this repo.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a production logger with JSON encoding. Debug mode lowers the
// level to debug; stack traces are attached at error level and above.
func New(debugMode bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debugMode {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.SecondsDurationEncoder
	cfg.DisableStacktrace = false
	return cfg.Build()
}

// NewDevelopment creates a console-encoded logger for local runs and the
// configure CLI.
func NewDevelopment(debugMode bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if debugMode {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// Sync flushes buffered entries; safe on nil loggers and before exit.
func Sync(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}
	return logger.Sync()
}
