// Package logger builds the zap logger used across the solver.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FlatBartender/bis-solver/internal/errors"
)

type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

type Format string

const (
	JSONFormat    Format = "json"
	ConsoleFormat Format = "console"
)

type Config struct {
	Level  Level  `mapstructure:"level" json:"level" validate:"oneof=debug info warn error"`
	Format Format `mapstructure:"format" json:"format" validate:"oneof=console json"`
}

func DefaultConfig() Config {
	return Config{Level: InfoLevel, Format: ConsoleFormat}
}

// New writes to stderr so that stdout stays free for results.
func New(cfg Config) (*zap.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

func NewWithWriter(cfg Config, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(string(cfg.Level))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "log level")
	}

	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder

	var enc zapcore.Encoder
	switch cfg.Format {
	case JSONFormat:
		enc = zapcore.NewJSONEncoder(ec)
	case ConsoleFormat, "":
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	default:
		return nil, errors.InvalidArgumentf("unknown log format %q", cfg.Format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core), nil
}
