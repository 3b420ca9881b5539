package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger. -v and -q win over the configured level.
func newLogger(w io.Writer, common commonFlags, configLevel string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: true, Prefix: "chordsheet"})

	level := log.InfoLevel
	if configLevel != "" {
		// config.Validate has already rejected unknown names.
		if parsed, err := log.ParseLevel(configLevel); err == nil {
			level = parsed
		}
	}
	switch {
	case common.verbose:
		level = log.DebugLevel
	case common.quiet:
		level = log.ErrorLevel
	}

	logger.SetLevel(level)
	return logger
}
