// Package subscription holds the bounded, insertion-ordered set of topic
// filters a client wants reinstated after a reconnect.
package subscription

import "sync"

// MaxFilterLength is the largest topic filter this registry stores without
// truncation.
const MaxFilterLength = 127

// Capacity is the maximum number of distinct filters the registry tracks.
const Capacity = 8

// Entry is one (topic-filter, requested-qos) pair.
type Entry struct {
	Filter string
	QoS    byte
}

// Registry is a bounded, insertion-ordered, dedup-by-filter set of Entry.
// Safe for concurrent use, though in this client all mutation already
// happens under the facade's send-mutex — the internal lock makes the
// registry independently safe to use and test.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make([]Entry, 0, Capacity)}
}

// Add records (filter, qos). Filters longer than MaxFilterLength are
// truncated on store — an at-your-own-risk input constraint, not a
// runtime error. Returns true if a new entry was stored,
// false if the filter was already known (no write) or capacity was
// exhausted (send still proceeds on the wire; the entry just isn't
// remembered for resubscribe).
func (r *Registry) Add(filter string, qos byte) bool {
	if len(filter) > MaxFilterLength {
		filter = filter[:MaxFilterLength]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.Filter == filter {
			return false
		}
	}
	if len(r.entries) >= Capacity {
		return false
	}
	r.entries = append(r.entries, Entry{Filter: filter, QoS: qos})
	return true
}

// Iter returns a snapshot of entries in insertion order, safe to range over
// without holding the registry's internal lock (e.g. while re-issuing
// SUBSCRIBE under the client's send-mutex during reconnect).
func (r *Registry) Iter() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of stored entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
