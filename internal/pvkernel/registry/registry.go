// Package registry holds the PV kernel implementations.
//
// Backends register themselves from init functions. Lookup returns the
// highest-priority entry whose execution level the host supports.
package registry

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-kk/internal/cpu"
)

// Entry is one kernel implementation.
type Entry struct {
	// Name identifies the backend, e.g. "generic" or "parallel".
	Name string

	// Level is the execution capability the backend needs.
	Level cpu.Level

	// Priority orders compatible entries; higher wins. The reference
	// backend registers with priority 0.
	Priority int

	// PV fills dst with the basic principal-value reconstruction.
	PV func(dst, omega, epsImag []float64, epsInf float64)

	// SSKK fills dst with the singly subtractive reconstruction.
	SSKK func(dst, omega, epsImag []float64, dkAnchor, omegaAnchor float64)
}

// Registry is a set of kernel entries.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	sorted  bool
}

// Global is the registry used by package pvkernel.
var Global = &Registry{}

// Register adds an entry. Registrations should complete before Lookup.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	r.sorted = false
}

// Lookup returns the best entry for features, or nil if none is compatible.
func (r *Registry) Lookup(features cpu.Features) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sorted {
		sort.SliceStable(r.entries, func(i, j int) bool {
			return r.entries[i].Priority > r.entries[j].Priority
		})
		r.sorted = true
	}

	for i := range r.entries {
		if cpu.Supports(features, r.entries[i].Level) {
			e := r.entries[i]
			return &e
		}
	}

	return nil
}

// ByName returns the entry registered under name.
func (r *Registry) ByName(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].Name == name {
			e := r.entries[i]
			return &e, true
		}
	}

	return nil, false
}

// ListEntries returns a copy of all entries.
func (r *Registry) ListEntries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Reset removes every entry. Tests only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
