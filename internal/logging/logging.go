// Package logging builds the zerolog loggers used by the command line tools.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at level, tagged with app.
func New(w io.Writer, app string, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}

// NewJSON returns a logger emitting one JSON object per event, for output
// that is consumed by other programs.
func NewJSON(w io.Writer, app string, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", app).Logger()
}
