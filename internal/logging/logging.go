// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger writing JSON lines in production and a human
// readable console format otherwise.
func New(w io.Writer, production bool) zerolog.Logger {
	if production {
		return zerolog.New(w).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}

// Setup replaces the global logger and returns it.
func Setup(production bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = New(os.Stderr, production)
	return log.Logger
}
