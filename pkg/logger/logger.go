// Package logger holds the process-wide zap logger.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared logger. It is a no-op logger until Init is called, so
// packages can log from tests without setup.
var Log = zap.NewNop()

// Init builds the shared logger. A non-empty logFile switches to the
// production (JSON) encoder and writes to both the file and stdout.
func Init(level string, logFile string) error {
	var config zap.Config

	if logFile != "" {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{logFile, "stdout"}
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	built, err := config.Build()
	if err != nil {
		return err
	}

	Log = built
	return nil
}

// ParseLevel maps a config string to a zap level. Unknown values fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Named returns a child of the shared logger tagged with a component field.
func Named(component string) *zap.Logger {
	return Log.With(zap.String("component", component))
}

func Sync() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}
