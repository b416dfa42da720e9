// Package logging configures the application logger. The TUI owns the
// terminal, so log output always goes to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger writing JSON lines to the file at path,
// creating parent directories as needed. The returned cleanup function
// flushes buffered entries and must be called on shutdown.
func New(path string, debug bool) (*zap.Logger, func(), error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(f),
		level,
	)

	logger := zap.New(core)
	cleanup := func() {
		_ = logger.Sync()
		_ = f.Close()
	}

	return logger, cleanup, nil
}

// Nop returns a logger that discards everything. Used by tests and as
// a fallback when the log file cannot be opened.
func Nop() *zap.Logger {
	return zap.NewNop()
}
