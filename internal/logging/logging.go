// Package logging builds the zap loggers used by the command line tool.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a zap logger writing to stderr. When debug is true it uses the
// development config (console encoder, debug level); otherwise production (JSON, info).
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewTo returns a logger with the same encoders and levels as New, writing to w.
func NewTo(w io.Writer, debug bool) *zap.Logger {
	var (
		enc   zapcore.Encoder
		level zapcore.Level
		opts  []zap.Option
	)
	if debug {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zapcore.DebugLevel
		opts = append(opts, zap.Development(), zap.AddCaller())
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		level = zapcore.InfoLevel
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level), opts...)
}
