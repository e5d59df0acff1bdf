package logger

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// StdLogger is a lightweight ports.Logger backed by Go's log package,
// writing to stderr so command output stays clean on stdout.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{
		verbose: verbose,
		out:     log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[DEBUG]", msg, formatFields(fields))
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[INFO]", msg, formatFields(fields))
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[WARN]", msg, formatFields(fields))
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[ERROR]", msg, err, formatFields(fields))
}

func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, fields[key]))
	}
	return strings.Join(parts, " ")
}
