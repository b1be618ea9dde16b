package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestNewLogger(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		l, err := NewLogger(LogLevelInfo, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer l.Close()
		if l.GetLevel() != LogLevelInfo {
			t.Errorf("level = %d, want %d", l.GetLevel(), LogLevelInfo)
		}
		if l.file != nil {
			t.Error("file should be nil when no path given")
		}
	})

	t.Run("with file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.log")
		l, err := NewLogger(LogLevelDebug, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer l.Close()
		if l.file == nil {
			t.Error("file should not be nil")
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := NewLogger(LogLevelInfo, "/nonexistent/dir/test.log")
		if err == nil {
			t.Error("expected error for invalid path")
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.log")
		_, err := NewLoggerWithOptions(Options{Level: LogLevelInfo, File: path, Format: "xml"})
		if err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestLoggerLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewLogger(LogLevelInfo, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Error("error msg")
	l.Info("info msg")
	l.Verbose("verbose msg")
	l.Debug("debug msg")
	l.Close()

	content := readLog(t, path)

	if !strings.Contains(content, "ERROR\terror msg") {
		t.Errorf("log should contain error message, got: %s", content)
	}
	if !strings.Contains(content, "INFO\tinfo msg") {
		t.Error("log should contain info message")
	}
	if strings.Contains(content, "verbose msg") {
		t.Error("log should NOT contain verbose message at Info level")
	}
	if strings.Contains(content, "debug msg") {
		t.Error("log should NOT contain debug message at Info level")
	}
}

func TestLoggerSilentLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	var console bytes.Buffer
	l, err := NewLoggerWithOptions(Options{Level: LogLevelSilent, File: path, Console: &console})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Error("should not appear")
	l.Info("should not appear")
	l.Zap().Error("structured should not appear")
	l.Close()

	if len(strings.TrimSpace(readLog(t, path))) > 0 {
		t.Error("silent logger should produce no file output")
	}
	if console.Len() > 0 {
		t.Errorf("silent logger should produce no console output, got %q", console.String())
	}
}

func TestLoggerDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewLogger(LogLevelDebug, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Error("e")
	l.Info("i")
	l.Verbose("v")
	l.Debug("d")
	l.Close()

	content := readLog(t, path)
	for _, want := range []string{"ERROR\te", "INFO\ti", "VERBOSE\tv", "DEBUG\td"} {
		if !strings.Contains(content, want) {
			t.Errorf("log should contain %q", want)
		}
	}
}

func TestLoggerConsole(t *testing.T) {
	t.Run("info only shows errors", func(t *testing.T) {
		var console bytes.Buffer
		l, _ := NewLoggerWithOptions(Options{Level: LogLevelInfo, Console: &console})
		l.Info("quiet")
		l.Error("loud")
		l.Close()

		out := console.String()
		if strings.Contains(out, "quiet") {
			t.Error("info should not reach the console below verbose")
		}
		if !strings.Contains(out, "ERROR\tloud") {
			t.Errorf("console = %q, want error line", out)
		}
	})

	t.Run("verbose shows info", func(t *testing.T) {
		var console bytes.Buffer
		l, _ := NewLoggerWithOptions(Options{Level: LogLevelVerbose, Console: &console})
		l.Info("hello")
		l.Debug("hidden")
		l.Close()

		out := console.String()
		if !strings.Contains(out, "INFO\thello") {
			t.Errorf("console = %q, want info line", out)
		}
		if strings.Contains(out, "hidden") {
			t.Error("debug should not show at verbose")
		}
	})
}

func TestLoggerJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewLoggerWithOptions(Options{Level: LogLevelVerbose, File: path, Format: "json", Console: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Error("test message")
	l.Verbose("quieter")
	l.Zap().Info("structured", zap.String("service", "ai-powered-billing"))
	l.Close()

	content := readLog(t, path)
	for _, want := range []string{`"level":"error"`, `"message":"test message"`, `"level":"verbose"`, `"service":"ai-powered-billing"`} {
		if !strings.Contains(content, want) {
			t.Errorf("JSON output should contain %s, got: %s", want, content)
		}
	}
}

func TestSetGetLevel(t *testing.T) {
	l, _ := NewLogger(LogLevelInfo, "")
	defer l.Close()

	if l.GetLevel() != LogLevelInfo {
		t.Errorf("GetLevel() = %d, want %d", l.GetLevel(), LogLevelInfo)
	}

	l.SetLevel(LogLevelDebug)
	if l.GetLevel() != LogLevelDebug {
		t.Errorf("GetLevel() = %d, want %d", l.GetLevel(), LogLevelDebug)
	}
}

func TestSetLevelAffectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewLogger(LogLevelError, path)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("before")
	l.SetLevel(LogLevelInfo)
	l.Info("after")
	l.Close()

	content := readLog(t, path)
	if strings.Contains(content, "before") || !strings.Contains(content, "after") {
		t.Errorf("content = %q", content)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"silent", LogLevelSilent, false},
		{"error", LogLevelError, false},
		{"Info", LogLevelInfo, false},
		{" verbose ", LogLevelVerbose, false},
		{"debug", LogLevelDebug, false},
		{"trace", LogLevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if LogLevelVerbose.String() != "verbose" {
		t.Errorf("String() = %q", LogLevelVerbose.String())
	}
}

func TestLogCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewLogger(LogLevelVerbose, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.LogCatalog("built-in", 3, "catalogs/testimonials.yaml", 4)
	l.Close()

	content := readLog(t, path)
	if !strings.Contains(content, "Loaded 3 services from built-in") {
		t.Error("should contain catalog message")
	}
	if !strings.Contains(content, "4 from catalogs/testimonials.yaml") {
		t.Error("should contain testimonial source")
	}
}

func TestClose_NilFile(t *testing.T) {
	l, _ := NewLogger(LogLevelInfo, "")
	if err := l.Close(); err != nil {
		t.Errorf("Close with nil file should not error: %v", err)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing")
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
