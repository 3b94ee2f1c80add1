// README: zap logger construction (console encoder, ISO8601 timestamps).
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger at the named level (debug, info, warn, error).
func New(level string, meta ...zap.Field) (*zap.Logger, error) {
	return build(level, "stdout", meta)
}

// NewStderr is New for command-line tools whose stdout carries the result document.
func NewStderr(level string, meta ...zap.Field) (*zap.Logger, error) {
	return build(level, "stderr", meta)
}

func build(level, output string, meta []zap.Field) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg := configure(lvl)
	cfg.OutputPaths = []string{output}
	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return nil, err
	}
	return l.With(meta...), nil
}

func configure(level zapcore.Level) zap.Config {
	encoder := zap.NewProductionEncoderConfig()
	encoder.TimeKey = "timestamp"
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder.EncodeCaller = zapcore.ShortCallerEncoder
	encoder.EncodeDuration = zapcore.MillisDurationEncoder
	encoder.CallerKey = "caller"
	return zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "console",
		EncoderConfig:    encoder,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
}
