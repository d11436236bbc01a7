// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

// Package report renders the terminal summary of a grouping run. The summary
// is made of named sections; each one reads the exported document and
// renders a focused table.
package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/yana87ryo/data-analysis-training/internal/output"
)

// ErrNoData indicates a section has nothing to show for the document, for
// example coverage checkpoints when no coverage was computed.
var ErrNoData = errors.New("no data for section")

// Default option values.
const (
	DefaultTopGroups  = 10
	DefaultMaxMembers = 5
)

// Options tunes what the sections show.
type Options struct {
	// TopGroups is how many multi-member groups the top-groups section lists.
	TopGroups int
	// MaxMembers is how many member names are printed per group before the
	// rest are summarized as "... and K more".
	MaxMembers int
}

func (o Options) withDefaults() Options {
	if o.TopGroups <= 0 {
		o.TopGroups = DefaultTopGroups
	}
	if o.MaxMembers <= 0 {
		o.MaxMembers = DefaultMaxMembers
	}
	return o
}

// Section is a pluggable report section.
type Section interface {
	// Name returns the unique identifier for this section (e.g., "coverage").
	Name() string

	// Description returns a human-readable description of what this section reports.
	Description() string

	// Analyze prepares internal state for rendering. Returns ErrNoData
	// (wrapped) when the document carries nothing for this section.
	Analyze(doc output.Document, opts Options) error

	// Render writes the section output to w.
	Render(w io.Writer) error
}

// Built-in sections, in rendering order.
func init() {
	Register(&summarySection{})
	Register(&topGroupsSection{})
	Register(&coverageSection{})
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Section)
	order    []string // insertion order for deterministic listing
)

// Register adds a section to the global registry.
// It panics if a section with the same name is already registered.
func Register(s Section) {
	mu.Lock()
	defer mu.Unlock()
	name := s.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("report section already registered: %s", name))
	}
	registry[name] = s
	order = append(order, name)
}

// Get returns the section with the given name, or nil if not found.
func Get(name string) Section {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns the names of all registered sections in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}
