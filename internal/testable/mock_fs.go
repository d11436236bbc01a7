package testable

import (
	"os"
)

// MockFileSystem is a test double for FileSystem. A non-nil function field
// replaces the corresponding method; nil fields fall through to the real
// file system, so tests only override what they exercise.
type MockFileSystem struct {
	CreateFn func(name string) (*os.File, error)
	OpenFn   func(name string) (*os.File, error)
	StatFn   func(name string) (os.FileInfo, error)

	// Created records every path passed to Create.
	Created []string
}

var osFS OsFileSystem

// Create records name and calls CreateFn if set.
func (m *MockFileSystem) Create(name string) (*os.File, error) {
	m.Created = append(m.Created, name)
	if m.CreateFn != nil {
		return m.CreateFn(name)
	}
	return osFS.Create(name)
}

// Open calls OpenFn if set.
func (m *MockFileSystem) Open(name string) (*os.File, error) {
	if m.OpenFn != nil {
		return m.OpenFn(name)
	}
	return osFS.Open(name)
}

// Stat calls StatFn if set.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatFn != nil {
		return m.StatFn(name)
	}
	return osFS.Stat(name)
}

// Compile-time interface check.
var _ FileSystem = (*MockFileSystem)(nil)
