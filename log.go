package aoc

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level returns the log level for a -v count: 0 error, 1 warn, 2 info,
// anything higher debug.
func Level(verbose int) zapcore.Level {
	switch {
	case verbose <= 0:
		return zapcore.ErrorLevel
	case verbose == 1:
		return zapcore.WarnLevel
	case verbose == 2:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// NewLogger returns a console logger writing to w at Level(verbose).
func NewLogger(w io.Writer, verbose int) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), Level(verbose))
	var opts []zap.Option
	if verbose >= 3 {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(core, opts...)
}
