package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// ConsoleLogger provides colored console output. Debug messages are
// only emitted when verbose is enabled.
type ConsoleLogger struct {
	mu      sync.Mutex
	output  io.Writer
	verbose bool
	fields  []Field
}

// NewConsoleLogger creates a console logger writing to stdout. When
// verbose is true, debug messages are emitted.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		output:  os.Stdout,
		verbose: verbose,
	}
}

func (c *ConsoleLogger) log(level LogLevel, color, msg string, fields ...Field) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := time.Now().Format("15:04:05")

	all := make([]Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)

	var fieldStr string
	if len(all) > 0 {
		parts := make([]string, 0, len(all))
		for _, f := range all {
			parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
		}
		fieldStr = " " + colorGray +
			fmt.Sprintf("{%s}", strings.Join(parts, ", ")) +
			colorReset
	}

	fmt.Fprintf(
		c.output, "%s%s%s [%s%-5s%s] %s%s\n",
		colorGray, ts, colorReset,
		color, level.String(), colorReset,
		msg, fieldStr,
	)
}

// Debug logs a debug message when verbose is enabled.
func (c *ConsoleLogger) Debug(msg string, fields ...Field) {
	if !c.verbose {
		return
	}
	c.log(LevelDebug, colorGray, msg, fields...)
}

// Info logs an informational message.
func (c *ConsoleLogger) Info(msg string, fields ...Field) {
	c.log(LevelInfo, colorGreen, msg, fields...)
}

// Warn logs a warning message.
func (c *ConsoleLogger) Warn(msg string, fields ...Field) {
	c.log(LevelWarn, colorYellow, msg, fields...)
}

// Error logs an error message.
func (c *ConsoleLogger) Error(msg string, fields ...Field) {
	c.log(LevelError, colorRed, msg, fields...)
}

// WithFields returns a logger that attaches the given fields to every
// entry. The child shares the parent's output and verbosity.
func (c *ConsoleLogger) WithFields(fields ...Field) Logger {
	c.mu.Lock()
	defer c.mu.Unlock()

	child := &ConsoleLogger{
		output:  c.output,
		verbose: c.verbose,
		fields:  make([]Field, 0, len(c.fields)+len(fields)),
	}
	child.fields = append(child.fields, c.fields...)
	child.fields = append(child.fields, fields...)
	return child
}
