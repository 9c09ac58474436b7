// Package logger builds the zap loggers used by kanaz.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where and how verbosely to log.
type Options struct {
	// Debug lowers the level to debug.
	Debug bool

	// Path is a JSON log file. The TUI owns the terminal, so interactive
	// runs log here.
	Path string

	// Console logs human-readable lines to Writer instead of Path.
	Console bool

	// Writer receives console output. Defaults to stderr.
	Writer io.Writer
}

// New builds a logger. With neither Path nor Console set it returns a
// no-op logger.
func New(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Debug {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	var cfg zap.Config
	switch {
	case opts.Console:
		w := opts.Writer
		if w == nil {
			w = os.Stderr
		}
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)
		return zap.New(core, zap.Development(), zap.AddCaller()), nil
	case opts.Path != "":
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cfg = zap.NewProductionConfig()
		cfg.Level = level
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{opts.Path}
		cfg.ErrorOutputPaths = []string{opts.Path}
	default:
		return zap.NewNop(), nil
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
