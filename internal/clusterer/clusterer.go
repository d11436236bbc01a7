// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

// Package clusterer defines the Clusterer interface and a registry of the
// available clustering methods.
package clusterer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
)

// Params is the union of settings understood by the registered methods.
// Each method reads the fields it needs and ignores the rest.
type Params struct {
	Threshold       float64 // exact
	PrefixLength    int     // fast
	Scorer          grouping.Scorer
	SampleCap       int
	Seed            uint64
	Workers         int
	KeywordSuffixes []string

	Progress         grouping.ProgressFunc
	ProgressInterval int
}

// Clusterer partitions distinct raw names into groups.
type Clusterer interface {
	// Name returns the unique method name (e.g., "exact", "fast").
	Name() string

	// Cluster groups names, which must be distinct.
	Cluster(ctx context.Context, names []grouping.RawName, p Params) (*grouping.Result, error)
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Clusterer)
)

// Register adds a clusterer to the global registry.
// It panics if a clusterer with the same name is already registered.
func Register(c Clusterer) {
	mu.Lock()
	defer mu.Unlock()
	name := c.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("clusterer already registered: %s", name))
	}
	registry[name] = c
}

// Get returns the clusterer with the given name, or nil if not found.
func Get(name string) Clusterer {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Lookup is Get with an error naming the available methods.
func Lookup(name string) (Clusterer, error) {
	if c := Get(name); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("unknown method: %q (available: %v)", name, List())
}

// List returns the names of all registered clusterers, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(exact{})
	Register(fast{})
}

type exact struct{}

func (exact) Name() string { return grouping.MethodExact }

func (exact) Cluster(ctx context.Context, names []grouping.RawName, p Params) (*grouping.Result, error) {
	return grouping.Cluster(ctx, names, grouping.Options{
		Threshold:        p.Threshold,
		Scorer:           p.Scorer,
		SampleCap:        p.SampleCap,
		Seed:             p.Seed,
		Workers:          p.Workers,
		KeywordSuffixes:  p.KeywordSuffixes,
		Progress:         p.Progress,
		ProgressInterval: p.ProgressInterval,
	})
}

type fast struct{}

func (fast) Name() string { return grouping.MethodFast }

func (fast) Cluster(ctx context.Context, names []grouping.RawName, p Params) (*grouping.Result, error) {
	return grouping.ClusterFast(ctx, names, grouping.FastOptions{
		PrefixLength:     p.PrefixLength,
		Scorer:           p.Scorer,
		SampleCap:        p.SampleCap,
		Seed:             p.Seed,
		Workers:          p.Workers,
		KeywordSuffixes:  p.KeywordSuffixes,
		Progress:         p.Progress,
		ProgressInterval: p.ProgressInterval,
	})
}
