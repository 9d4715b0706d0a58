// Package logging builds the zerolog loggers used by the command line tool.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Format selects the log encoding.
type Format string

const (
	// Console writes human-readable lines.
	Console Format = "console"
	// JSON writes one JSON object per event.
	JSON Format = "json"
)

// New returns a logger writing to w in the given format. Verbose lowers the
// level from info to debug. Every event carries a run_id so the lines of one
// invocation can be grouped.
func New(w io.Writer, format Format, verbose bool) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	var out io.Writer
	switch format {
	case Console, "":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	case JSON:
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger(), nil
}
