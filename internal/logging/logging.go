// Package logging builds the leveled stderr logger shared by all commands.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

var levels = []log.Level{log.ErrorLevel, log.WarnLevel, log.InfoLevel, log.DebugLevel}

// LevelFor maps a -v count onto a log level: none logs errors only, each
// additional -v adds warnings, info and debug output.
func LevelFor(verbosity int) log.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(levels) {
		verbosity = len(levels) - 1
	}
	return levels[verbosity]
}

// New returns a logger writing to w at the level selected by verbosity.
func New(w io.Writer, verbosity int) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "wl",
		Level:  LevelFor(verbosity),
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
