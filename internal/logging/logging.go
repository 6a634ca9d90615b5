// Package logging builds ccm's zap logger. The terminal always belongs to
// the UI or a child process, so logs only ever go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DebugEnv enables file logging like --debug
	DebugEnv = "CCM_DEBUG"
	// FileName is the log file inside the log directory
	FileName = "ccm.log"

	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Options configures New
type Options struct {
	Debug  bool
	LogDir string
}

// Enabled reports whether logging was requested by flag or environment
func (o Options) Enabled() bool {
	if o.Debug {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(DebugEnv))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// New returns a rotating JSON file logger at debug level when enabled,
// otherwise a no-op logger.
func New(opts Options) (*zap.Logger, error) {
	if !opts.Enabled() {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(opts.LogDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(opts.LogDir, FileName)
	// lumberjack keeps the mode of an existing file; create it private first
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	_ = f.Close()

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	sink := zapcore.AddSync(rotator)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), sink, zapcore.DebugLevel)
	logger := zap.New(core, zap.AddCaller(), zap.ErrorOutput(sink))
	return logger.With(zap.Int("pid", os.Getpid())), nil
}
