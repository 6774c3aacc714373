package logger

import (
	"log"
	"os"
	"sync"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func parseLevel(level string) Level {
	switch level {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger is a minimal leveled logger writing to stderr. Log lines never
// go to stdout, which is reserved for the per-file results.
type Logger struct {
	level Level
	mu    sync.Mutex
	out   *log.Logger
}

func New(level string) *Logger {
	return &Logger{
		level: parseLevel(level),
		out:   log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
	}
}

func (l *Logger) logf(lvl Level, tag, format string, args ...interface{}) {
	if l.level > lvl {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.SetPrefix(tag)
	l.out.Printf(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(DEBUG, "[DEBUG] ", format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(INFO, "[INFO] ", format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(WARN, "[WARN] ", format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(ERROR, "[ERROR] ", format, args...)
}
