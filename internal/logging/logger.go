package logging

// Levelled logging for svccat, backed by zap

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the logging level
type LogLevel int32

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelVerbose
	LogLevelDebug
)

var levelNames = []string{"silent", "error", "info", "verbose", "debug"}

func (l LogLevel) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("LogLevel(%d)", int32(l))
}

// ParseLevel converts a level name to a LogLevel
func ParseLevel(s string) (LogLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == s {
			return LogLevel(i), nil
		}
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q (want %s)", s, strings.Join(levelNames, ", "))
}

// zap has no level between debug and info, so verbose takes zap's debug
// and debug sits one below it.
const (
	zapVerbose = zapcore.DebugLevel
	zapDebug   = zapcore.DebugLevel - 1
	zapOff     = zapcore.FatalLevel + 1
)

func (l LogLevel) threshold() zapcore.Level {
	switch {
	case l <= LogLevelSilent:
		return zapOff
	case l == LogLevelError:
		return zapcore.ErrorLevel
	case l == LogLevelInfo:
		return zapcore.InfoLevel
	case l == LogLevelVerbose:
		return zapVerbose
	}
	return zapDebug
}

func levelEncoder(upper bool) zapcore.LevelEncoder {
	return func(lvl zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		var s string
		switch lvl {
		case zapDebug:
			s = "debug"
		case zapVerbose:
			s = "verbose"
		default:
			s = lvl.String()
		}
		if upper {
			s = strings.ToUpper(s)
		}
		enc.AppendString(s)
	}
}

// Options configures NewLoggerWithOptions
type Options struct {
	Level LogLevel
	// File receives every entry at or above Level. Empty disables it.
	File string
	// Format is the file encoding: "text" (default) or "json".
	Format string
	// Console receives errors, and everything else once Level is verbose
	// or higher. Nil means stderr; use io.Discard to silence it.
	Console io.Writer
}

// Logger provides levelled logging
type Logger struct {
	mu    sync.Mutex
	level atomic.Int32
	file  *os.File
	zl    *zap.Logger
}

// NewLogger creates a new logger writing errors to stderr and, when logFile
// is set, everything at level to the file
func NewLogger(level LogLevel, logFile string) (*Logger, error) {
	return NewLoggerWithOptions(Options{Level: level, File: logFile})
}

// NewLoggerWithOptions creates a logger from opts
func NewLoggerWithOptions(opts Options) (*Logger, error) {
	l := &Logger{}
	l.level.Store(int32(opts.Level))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleCfg := zapcore.EncoderConfig{
		MessageKey:  "message",
		LevelKey:    "level",
		EncodeLevel: levelEncoder(true),
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(console),
			zap.LevelEnablerFunc(l.consoleEnabled)),
	}

	if opts.File != "" {
		file, err := os.Create(opts.File)
		if err != nil {
			return nil, fmt.Errorf("create log file: %w", err)
		}
		l.file = file

		var enc zapcore.Encoder
		switch opts.Format {
		case "", "text":
			cfg := consoleCfg
			cfg.TimeKey = "time"
			cfg.EncodeTime = zapcore.ISO8601TimeEncoder
			cfg.NameKey = "logger"
			enc = zapcore.NewConsoleEncoder(cfg)
		case "json":
			cfg := zap.NewProductionEncoderConfig()
			cfg.MessageKey = "message"
			cfg.TimeKey = "time"
			cfg.EncodeTime = zapcore.ISO8601TimeEncoder
			cfg.EncodeLevel = levelEncoder(false)
			enc = zapcore.NewJSONEncoder(cfg)
		default:
			file.Close()
			return nil, fmt.Errorf("unknown log format %q (want text or json)", opts.Format)
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(file),
			zap.LevelEnablerFunc(l.fileEnabled)))
	}

	l.zl = zap.New(zapcore.NewTee(cores...))
	return l, nil
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	l := &Logger{zl: zap.NewNop()}
	l.level.Store(int32(LogLevelSilent))
	return l
}

func (l *Logger) fileEnabled(lvl zapcore.Level) bool {
	return lvl >= l.GetLevel().threshold()
}

func (l *Logger) consoleEnabled(lvl zapcore.Level) bool {
	level := l.GetLevel()
	if lvl >= zapcore.ErrorLevel {
		return level >= LogLevelError
	}
	return level >= LogLevelVerbose && lvl >= level.threshold()
}

// Zap exposes the underlying logger for structured fields
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Close flushes and closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_ = l.zl.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(zapcore.ErrorLevel, format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(zapcore.InfoLevel, format, v...)
}

// Verbose logs a verbose message
func (l *Logger) Verbose(format string, v ...interface{}) {
	l.logf(zapVerbose, format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(zapDebug, format, v...)
}

func (l *Logger) logf(lvl zapcore.Level, format string, v ...interface{}) {
	if lvl < l.GetLevel().threshold() {
		return
	}
	if ce := l.zl.Check(lvl, fmt.Sprintf(format, v...)); ce != nil {
		ce.Write()
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() LogLevel {
	return LogLevel(l.level.Load())
}

// LogCatalog logs where the catalog and testimonials were loaded from
func (l *Logger) LogCatalog(source string, services int, testimonialSource string, testimonials int) {
	l.Info("Loaded %d services from %s", services, source)
	l.Verbose("  Testimonials: %d from %s", testimonials, testimonialSource)
}
