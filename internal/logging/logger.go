// Package logging provides the leveled logger used across magpatch.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Verbosity levels accepted from the command line.
const (
	VerbosityQuiet = "quiet"
	VerbosityInfo  = "info"
	VerbosityDebug = "debug"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config captures options for building a Logger.
type Config struct {
	Output    io.Writer // defaults to os.Stderr
	Format    string    // console (default) or json
	Verbosity string    // quiet, info (default) or debug
	Component string    // optional component name attached to every entry
}

// Logger is a leveled logger with an extra "success" level. Informational
// detail below info is only emitted once debug output is switched on.
type Logger struct {
	base  zerolog.Logger
	quiet bool
	debug bool
}

// New builds a Logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if !strings.EqualFold(cfg.Format, FormatJSON) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: true}
	}

	zl := zerolog.New(out).With().Timestamp().Logger()
	if cfg.Component != "" {
		zl = zl.With().Str("component", cfg.Component).Logger()
	}

	l := &Logger{base: zl}
	switch strings.ToLower(cfg.Verbosity) {
	case VerbosityQuiet:
		l.quiet = true
	case VerbosityDebug:
		l.debug = true
	}
	return l
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithComponent returns a child logger annotated with the given component
// name. The child shares the parent's verbosity at the time of the call.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		base:  l.base.With().Str("component", component).Logger(),
		quiet: l.quiet,
		debug: l.debug,
	}
}

// SetDebug switches debug output on or off. Quiet loggers stay quiet.
func (l *Logger) SetDebug(on bool) {
	l.debug = on
}

// DebugEnabled reports whether Debug events are emitted.
func (l *Logger) DebugEnabled() bool {
	return l.debug && !l.quiet
}

func (l *Logger) level() zerolog.Level {
	switch {
	case l.quiet:
		return zerolog.WarnLevel
	case l.debug:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) logger() zerolog.Logger {
	return l.base.Level(l.level())
}

// Debug starts a debug-level event.
func (l *Logger) Debug() *zerolog.Event {
	zl := l.logger()
	return zl.Debug()
}

// Info starts an info-level event.
func (l *Logger) Info() *zerolog.Event {
	zl := l.logger()
	return zl.Info()
}

// Success starts an info-level event marked with status=success.
func (l *Logger) Success() *zerolog.Event {
	zl := l.logger()
	return zl.Info().Str("status", "success")
}

// Warn starts a warn-level event.
func (l *Logger) Warn() *zerolog.Event {
	zl := l.logger()
	return zl.Warn()
}

// Error starts an error-level event.
func (l *Logger) Error() *zerolog.Event {
	zl := l.logger()
	return zl.Error()
}
