// Package log configures structured logging for merchgroup using log/slog.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Log output formats accepted by Options.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options selects the log level and handler.
type Options struct {
	Verbose bool
	Quiet   bool
	// Format is FormatText (default) or FormatJSON.
	Format string
}

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Output is written to w, normally stderr.
func Setup(w io.Writer, opts Options) error {
	var level slog.Level
	switch {
	case opts.Quiet:
		level = slog.LevelWarn
	case opts.Verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	hopts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		handler = slog.NewTextHandler(w, hopts)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, hopts)
	default:
		return fmt.Errorf("unknown log format: %q (available: %s, %s)", opts.Format, FormatJSON, FormatText)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
