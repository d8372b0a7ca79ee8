package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Retention is how long dated log files are kept.
const Retention = 7 * 24 * time.Hour

const (
	filePrefix = "glide-"
	fileSuffix = ".log"
	dayLayout  = "2006-01-02"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes leveled lines to a single sink
type Logger struct {
	mu     sync.Mutex
	writer io.Writer
	level  Level
	path   string
}

var defaultLogger *Logger

// Initialize opens today's log file under logDir and makes it the default
// sink. Log files older than Retention are removed.
func Initialize(logDir string, level Level) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}
	now := time.Now()
	prune(logDir, now.Add(-Retention))

	path := filepath.Join(logDir, filePrefix+now.Format(dayLayout)+fileSuffix)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defaultLogger = &Logger{writer: file, level: level, path: path}
	return nil
}

// InitializeWriter logs to w instead of a file.
func InitializeWriter(w io.Writer, level Level) {
	defaultLogger = &Logger{writer: w, level: level}
}

// prune removes dated log files from before cutoff. Files whose name does
// not parse as a date are left alone.
func prune(logDir string, cutoff time.Time) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		day, err := time.ParseInLocation(dayLayout, strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix), time.Local)
		if err != nil || !day.Before(cutoff) {
			continue
		}
		_ = os.Remove(filepath.Join(logDir, name))
	}
}

func log(level Level, format string, args ...any) {
	l := defaultLogger
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer == nil || level < l.level {
		return
	}
	fmt.Fprintf(l.writer, "[%s] %s: %s\n", time.Now().Format("2006-01-02 15:04:05.000"), level, fmt.Sprintf(format, args...))
}

// Debug logs a debug message
func Debug(format string, args ...any) { log(LevelDebug, format, args...) }

// Info logs an info message
func Info(format string, args ...any) { log(LevelInfo, format, args...) }

// Warn logs a warning message
func Warn(format string, args ...any) { log(LevelWarn, format, args...) }

// Error logs an error message
func Error(format string, args ...any) { log(LevelError, format, args...) }

// Close closes the log file. Later calls log nothing; Path keeps reporting
// the file that was written.
func Close() error {
	l := defaultLogger
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.writer
	l.writer = nil
	if closer, ok := w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Path returns the current log file, or "" when logging to a writer.
func Path() string {
	if defaultLogger != nil {
		return defaultLogger.path
	}
	return ""
}
