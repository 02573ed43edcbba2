// Package logging builds zap loggers for the command-line tools.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config contains logging configuration
type Config struct {
	// Level is the minimum log level
	Level string `yaml:"level" json:"level"`

	// Format is the output format (json, console)
	Format string `yaml:"format" json:"format"`

	// Output is the output destination (stdout, stderr, file path)
	Output string `yaml:"output" json:"output"`

	// Development enables development mode
	Development bool `yaml:"development" json:"development"`
}

// DefaultConfig logs warnings and above to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}
}

// New builds a logger from cfg. An unknown level falls back to info.
func New(cfg Config) (*zap.Logger, error) {
	var ws zapcore.WriteSyncer
	switch cfg.Output {
	case "", "stderr":
		ws = zapcore.AddSync(os.Stderr)
	case "stdout":
		ws = zapcore.AddSync(os.Stdout)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log output %s: %w", cfg.Output, err)
		}
		ws = zapcore.AddSync(file)
	}
	return newWithSyncer(cfg, ws), nil
}

// NewWithWriter builds a logger that writes to w regardless of cfg.Output.
func NewWithWriter(cfg Config, w io.Writer) *zap.Logger {
	return newWithSyncer(cfg, zapcore.AddSync(w))
}

func newWithSyncer(cfg Config, ws zapcore.WriteSyncer) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, ws, level)
	if cfg.Development {
		return zap.New(core, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(core)
}

// EngineLogger adapts a zap logger to the calculation engine's Logger interface.
type EngineLogger struct {
	sugar *zap.SugaredLogger
}

// NewEngineLogger wraps l; a nil logger yields a no-op.
func NewEngineLogger(l *zap.Logger) *EngineLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &EngineLogger{sugar: l.Sugar()}
}

func (e *EngineLogger) Debugf(format string, args ...interface{}) { e.sugar.Debugf(format, args...) }
func (e *EngineLogger) Infof(format string, args ...interface{})  { e.sugar.Infof(format, args...) }
func (e *EngineLogger) Warnf(format string, args ...interface{})  { e.sugar.Warnf(format, args...) }
func (e *EngineLogger) Errorf(format string, args ...interface{}) { e.sugar.Errorf(format, args...) }
