// Package logging builds the application's zap logger, optionally writing to a
// rotating file.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how verbosely the logger writes
type Options struct {
	Level      string
	Debug      bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ParseLevel maps a level name to a zap level, defaulting to info
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// New builds a logger. Console output is always on; when File is set, JSON
// lines are also written to a lumberjack-rotated file.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	consoleCfg := zap.NewProductionEncoderConfig()
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if opts.Debug {
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level),
	}

	if strings.TrimSpace(opts.File) != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotator), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger, nil
}
