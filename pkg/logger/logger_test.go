package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		logFile   string
		wantLevel zapcore.Level
	}{
		{name: "debug level, no file", level: "debug", wantLevel: zapcore.DebugLevel},
		{name: "info level, no file", level: "info", wantLevel: zapcore.InfoLevel},
		{name: "warn level, no file", level: "warn", wantLevel: zapcore.WarnLevel},
		{name: "error level, no file", level: "error", wantLevel: zapcore.ErrorLevel},
		{name: "invalid level defaults to info", level: "invalid", wantLevel: zapcore.InfoLevel},
		{name: "with log file", level: "info", logFile: filepath.Join(t.TempDir(), "test.log"), wantLevel: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() { Log = zap.NewNop() })

			if err := Init(tt.level, tt.logFile); err != nil {
				t.Fatalf("Init() error = %v", err)
			}

			if Log == nil {
				t.Fatal("Init() succeeded but Log is nil")
			}

			if !Log.Core().Enabled(tt.wantLevel) {
				t.Errorf("Init(%q) did not enable level %s", tt.level, tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && Log.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("Init(%q) enabled level below %s", tt.level, tt.wantLevel)
			}

			_ = Log.Sync()
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		" info ":  zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	if Log == nil {
		t.Fatal("default Log is nil")
	}
	// Must not panic before Init.
	Named("test").Info("no-op")
}

func TestSync(t *testing.T) {
	t.Cleanup(func() { Log = zap.NewNop() })

	Log, _ = zap.NewDevelopment()
	// Sync may return errors for stdout/stderr on some systems, which is okay
	_ = Sync()

	Log = nil
	if err := Sync(); err != nil {
		t.Errorf("Sync() with nil logger = %v, want nil", err)
	}
}

func TestInitWithLogFile(t *testing.T) {
	t.Cleanup(func() { Log = zap.NewNop() })

	logFile := filepath.Join(t.TempDir(), "app.log")

	if err := Init("info", logFile); err != nil {
		t.Fatalf("Init() with log file failed: %v", err)
	}

	Log.Info("test message")
	_ = Sync()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}
}
