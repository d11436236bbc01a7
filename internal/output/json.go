package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONFormatter writes the document as a JSON object with a metadata envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces.
	Compact bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the document to w. A missing run id or timestamp is filled
// in. Output is pretty-printed for terminals and in-memory writers and
// compact for pipes and files, unless Compact forces a single line.
func (f *JSONFormatter) Format(doc Document, w io.Writer) error {
	if doc.Rows == nil {
		doc.Rows = []grouping.Row{}
	}
	if doc.Coverage == nil {
		doc.Coverage = []grouping.CoveragePoint{}
	}
	if doc.Metadata.RunID == "" {
		doc.Metadata.RunID = NewRunID()
	}
	if doc.Metadata.GeneratedAt.IsZero() {
		now := time.Now()
		if f.nowFunc != nil {
			now = f.nowFunc()
		}
		doc.Metadata.GeneratedAt = now.UTC().Truncate(time.Second)
	}

	var data []byte
	var err error
	if f.shouldCompact(w) {
		data, err = json.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}

	return nil
}

// shouldCompact determines whether to use compact mode.
// If Compact is explicitly set, use that value.
// Otherwise, auto-detect: pretty-print for TTYs, compact for pipes.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}

	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false // default to pretty on error
		}
		if fi.Mode()&os.ModeCharDevice != 0 {
			return false // TTY -> pretty
		}
		return true // pipe/file -> compact
	}

	// For non-file writers (e.g., bytes.Buffer in tests), default to pretty.
	return false
}
