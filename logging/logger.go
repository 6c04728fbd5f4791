// Package logging provides structured logging for the CLI and the desktop app.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05"

// Logger wraps zerolog with mode-specific output.
type Logger struct {
	zlog zerolog.Logger
	mode string // "cli" or "gui"
	ring *Ring
}

// NewLogger creates a logger for the given mode. In "gui" mode every
// event is also kept in ring (when non-nil) for the developer panel.
func NewLogger(mode string, ring *Ring) *Logger {
	var output io.Writer

	if mode == "cli" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat}
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: timeFormat}
		if ring != nil {
			output = zerolog.MultiLevelWriter(
				output,
				zerolog.ConsoleWriter{Out: ring, TimeFormat: timeFormat, NoColor: true},
			)
		}
	}

	return &Logger{
		zlog: zerolog.New(output).With().Timestamp().Logger(),
		mode: mode,
		ring: ring,
	}
}

// NewWithWriter creates a logger writing plain console output to w.
// Tests use it to capture log lines.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		zlog: zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat, NoColor: true}).
			With().Timestamp().Logger(),
		mode: "cli",
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop(), mode: "cli"}
}

// NewDefaultCLILogger creates a default CLI logger.
func NewDefaultCLILogger() *Logger {
	return NewLogger("cli", nil)
}

// Ring returns the in-memory sink, or nil outside GUI mode.
func (l *Logger) Ring() *Ring {
	return l.ring
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// With creates a child logger context.
func (l *Logger) With() zerolog.Context {
	return l.zlog.With()
}

// Child returns a logger carrying the extra fields built on ctx.
func (l *Logger) Child(ctx zerolog.Context) *Logger {
	return &Logger{zlog: ctx.Logger(), mode: l.mode, ring: l.ring}
}

// Warnf logs a warning message with printf-style formatting.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zlog.Warn().Msgf(format, args...)
}

// SetVerbose switches the global level between debug and info.
func SetVerbose(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
