// Package logging provides the loggers the registrar and the axon command
// write to: colored terminal diagnostics and a bridge to zap.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level represents the level of diagnostic output
type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelVerbose
	LevelDebug
)

// String returns the lowercase level name
func (l Level) String() string {
	switch l {
	case LevelSilent:
		return "silent"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelDebug:
		return "debug"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel converts a level name to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent", "off":
		return LevelSilent, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info", "":
		return LevelInfo, nil
	case "verbose":
		return LevelVerbose, nil
	case "debug":
		return LevelDebug, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level '%s'", s)
}

// Diagnostics provides structured, user-friendly terminal output
type Diagnostics struct {
	level     Level
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
	mu        sync.Mutex
}

// NewDiagnostics creates a diagnostics logger writing to stdout and stderr
func NewDiagnostics(level Level) *Diagnostics {
	return &Diagnostics{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= LevelVerbose,
		output:    os.Stdout,
		errorOut:  os.Stderr,
	}
}

// NewQuietDiagnostics creates a diagnostics logger that only shows errors
func NewQuietDiagnostics() *Diagnostics {
	return NewDiagnostics(LevelError)
}

// WithOutput redirects normal and error output. Colors and timestamps are
// turned off, which keeps captured output stable.
func (d *Diagnostics) WithOutput(out, errOut io.Writer) *Diagnostics {
	d.output = out
	d.errorOut = errOut
	d.useColors = false
	d.showTime = false
	return d
}

// Level returns the configured level
func (d *Diagnostics) Level() Level {
	return d.level
}

var (
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgBlue)
	successColor = color.New(color.FgGreen)
	verboseColor = color.New(color.FgHiBlack)
	debugColor   = color.New(color.FgMagenta)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

// Error outputs error messages (always shown unless silent)
func (d *Diagnostics) Error(format string, args ...interface{}) {
	if d.level >= LevelError {
		d.writeMessage(d.errorOut, "ERROR", errorColor, format, args...)
	}
}

// Warn outputs warning messages
func (d *Diagnostics) Warn(format string, args ...interface{}) {
	if d.level >= LevelWarn {
		d.writeMessage(d.output, "WARN", warnColor, format, args...)
	}
}

// Info outputs informational messages
func (d *Diagnostics) Info(format string, args ...interface{}) {
	if d.level >= LevelInfo {
		d.writeMessage(d.output, "INFO", infoColor, format, args...)
	}
}

// Success outputs success messages with emphasis
func (d *Diagnostics) Success(format string, args ...interface{}) {
	if d.level >= LevelInfo {
		d.writeMessage(d.output, "SUCCESS", successColor, format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *Diagnostics) Verbose(format string, args ...interface{}) {
	if d.level >= LevelVerbose {
		d.writeMessage(d.output, "VERBOSE", verboseColor, format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *Diagnostics) Debug(format string, args ...interface{}) {
	if d.level >= LevelDebug {
		d.writeMessage(d.output, "DEBUG", debugColor, format, args...)
	}
}

// Header outputs a prominent "Axon: ..." header
func (d *Diagnostics) Header(message string) {
	if d.level < LevelInfo {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.useColors {
		headerColor.Fprintf(d.output, "Axon: %s\n", message)
		return
	}
	fmt.Fprintf(d.output, "Axon: %s\n", message)
}

// Category outputs a category header like [Routes]
func (d *Diagnostics) Category(title string) {
	if d.level >= LevelInfo {
		d.mu.Lock()
		defer d.mu.Unlock()
		fmt.Fprintf(d.output, "\n[%s]\n", title)
	}
}

// List outputs a bulleted list item
func (d *Diagnostics) List(format string, args ...interface{}) {
	if d.level >= LevelInfo {
		d.mu.Lock()
		defer d.mu.Unlock()
		fmt.Fprintf(d.output, "%s- %s\n", d.getIndent(), fmt.Sprintf(format, args...))
	}
}

// Indent increases the indentation level
func (d *Diagnostics) Indent() {
	d.mu.Lock()
	d.indent++
	d.mu.Unlock()
}

// Unindent decreases the indentation level
func (d *Diagnostics) Unindent() {
	d.mu.Lock()
	if d.indent > 0 {
		d.indent--
	}
	d.mu.Unlock()
}

// Summary outputs a final summary with statistics in key order
func (d *Diagnostics) Summary(title string, stats map[string]interface{}) {
	if d.level < LevelInfo {
		return
	}
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.output, "\n%s\n", title)
	for _, key := range keys {
		fmt.Fprintf(d.output, "   %s: %v\n", key, stats[key])
	}
	fmt.Fprintln(d.output)
}

func (d *Diagnostics) writeMessage(writer io.Writer, level string, c *color.Color, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	d.mu.Lock()
	defer d.mu.Unlock()

	var output strings.Builder
	output.WriteString(d.getIndent())

	if d.showTime {
		output.WriteString(time.Now().Format("15:04:05 "))
	}

	prefix := "[" + level + "]"
	if d.useColors {
		prefix = c.Sprint(prefix)
	}
	output.WriteString(prefix)
	output.WriteString(" ")
	output.WriteString(message)
	output.WriteString("\n")

	fmt.Fprint(writer, output.String())
}

func (d *Diagnostics) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	// Check if NO_COLOR is set (standard)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
