// Package output defines the Formatter interface for writing grouping
// results in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Formatter writes a grouping Document to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "csv", "json", "xlsx").
	Name() string

	// Format writes the document to w.
	Format(doc Document, w io.Writer) error
}

// BinaryFormatter is implemented by formats whose output should go to a
// file rather than a terminal.
type BinaryFormatter interface {
	Formatter
	Binary() bool
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, formatNames())
	}
	return f, nil
}

// FormatNames returns the registered format names, sorted.
func FormatNames() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	return sortedNames()
}

// IsBinary reports whether f produces binary output.
func IsBinary(f Formatter) bool {
	b, ok := f.(BinaryFormatter)
	return ok && b.Binary()
}

func sortedNames() []string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// formatNames returns a comma-separated sorted list of registered format names.
// The caller must hold fmtMu.
func formatNames() string {
	return strings.Join(sortedNames(), ", ")
}
