package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	infoTag  = color.New(color.FgCyan).SprintFunc()
	warnTag  = color.New(color.FgYellow).SprintFunc()
	errorTag = color.New(color.FgRed, color.Bold).SprintFunc()
	debugTag = color.New(color.FgHiBlack).SprintFunc()
)

// Logger provides levelled key=value logging
type Logger struct {
	prefix  string
	verbose bool
	logger  *log.Logger
}

// NewLogger creates a logger writing to stderr
func NewLogger(prefix string) *Logger {
	return NewLoggerTo(os.Stderr, prefix)
}

// NewLoggerTo creates a logger writing to w
func NewLoggerTo(w io.Writer, prefix string) *Logger {
	return &Logger{
		prefix: prefix,
		logger: log.New(w, fmt.Sprintf("[%s] ", prefix), log.LstdFlags),
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewLoggerTo(io.Discard, "")
}

// SetVerbose enables Debug output
func (l *Logger) SetVerbose(v bool) {
	l.verbose = v
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.logWithKV(infoTag("INFO"), msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.logWithKV(warnTag("WARN"), msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.logWithKV(errorTag("ERROR"), msg, keysAndValues...)
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if !l.verbose {
		return
	}
	l.logWithKV(debugTag("DEBUG"), msg, keysAndValues...)
}

func (l *Logger) logWithKV(level, msg string, keysAndValues ...interface{}) {
	var kv strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&kv, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	l.logger.Printf("[%s] %s%s", level, msg, kv.String())
}

// Mask hides all but the first two characters of a matched value so that
// debug output never repeats a secret.
func Mask(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= 2 {
		return "***"
	}
	return string(r[:2]) + "***"
}
