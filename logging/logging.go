package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogDir is where file logging writes when enabled
	LogDir = "logs"
	// LogFileName is the terminal-mode log file
	LogFileName = "racecast.log"
)

// New builds a stderr logger at level; development selects the console encoder
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	return cfg.Build()
}

// NewFile logs to dir/LogFileName when enabled, otherwise discards everything
// Terminal mode owns stdout and stderr, so the full-screen view never sees log lines
func NewFile(enabled bool, dir, level string) (*zap.Logger, io.Closer, error) {
	if !enabled {
		return zap.NewNop(), nopCloser{}, nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(f), lvl)
	return zap.New(core, zap.AddCaller()), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
