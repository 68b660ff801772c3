// Package logger provides logging for sercha-topics.
// Informational, warning and error lines are always written. When verbose
// mode is enabled via the --verbose flag, debug lines and section headers
// are written too, to help users follow the topic pipeline.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatAuto    = "auto"
	FormatJSON    = "json"
	FormatConsole = "console"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatAuto
	base              = build()
)

// build creates the zerolog logger from the current state (caller must hold lock).
func build() zerolog.Logger {
	w := output
	if useConsole() {
		w = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(output),
		}
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func useConsole() bool {
	switch format {
	case FormatConsole:
		return true
	case FormatJSON:
		return false
	default:
		return isTerminal(output)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = build()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build()
}

// SetFormat selects json, console or auto output.
// Auto renders console lines when the output is a terminal and JSON otherwise.
func SetFormat(f string) error {
	switch f {
	case FormatAuto, FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("unknown log format %q", f)
	}
	mu.Lock()
	defer mu.Unlock()
	format = f
	base = build()
	return nil
}

// L returns the underlying zerolog logger for structured events.
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

// WithRun returns a logger that tags every event with the run id.
func WithRun(runID string) *zerolog.Logger {
	l := L().With().Str("run_id", runID).Logger()
	return &l
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	L().Debug().Msgf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	L().Debug().Str("section", name).Msgf("=== %s ===", name)
}

// Info prints an informational message.
func Info(format string, args ...any) {
	L().Info().Msgf(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	L().Warn().Msgf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	L().Error().Msgf(format, args...)
}

// NewContext returns ctx carrying a run-tagged logger.
func NewContext(ctx context.Context, runID string) context.Context {
	return WithRun(runID).WithContext(ctx)
}

// FromContext returns the logger attached by NewContext, or the package
// logger when ctx carries none.
func FromContext(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return L()
}
