// Package testable provides interfaces for abstracting OS-level operations,
// enabling mock injection in tests without modifying production behavior.
package testable

import (
	"os"
)

// FileSystem abstracts the file operations the CLI performs on user-supplied
// paths: output files, master tables and config files.
type FileSystem interface {
	// Create creates or truncates the named file.
	Create(name string) (*os.File, error)

	// Open opens the named file for reading.
	Open(name string) (*os.File, error)

	// Stat returns a FileInfo describing the named file.
	Stat(name string) (os.FileInfo, error)
}

// OsFileSystem is the production implementation of FileSystem.
type OsFileSystem struct{}

// Create wraps os.Create.
func (OsFileSystem) Create(name string) (*os.File, error) {
	return os.Create(name) //nolint:gosec // caller controls path
}

// Open wraps os.Open.
func (OsFileSystem) Open(name string) (*os.File, error) {
	return os.Open(name) //nolint:gosec // caller controls path
}

// Stat wraps os.Stat.
func (OsFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// DefaultFS is the production FileSystem.
var DefaultFS FileSystem = OsFileSystem{}
