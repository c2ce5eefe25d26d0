package manifest

import (
	"iter"
	"maps"
	"slices"
)

// Manifest is the model of a parsed manifest: a set of named sections, each
// mapping keys to string values.
//
// A Manifest is immutable once returned by [Build] or one of the parse
// functions, and is safe for concurrent use.
type Manifest struct {
	sections map[string]map[string]string
}

// Section is a read-only view of one section of a [Manifest].
//
// It shares storage with its Manifest rather than copying it.
type Section struct {
	entries map[string]string
	name    string
}

// Sections returns an iterator over the section names in m.
// The order is unspecified; each name is yielded once.
func (m *Manifest) Sections() iter.Seq[string] {
	return maps.Keys(m.sections)
}

// SortedSections returns the section names in m in lexical order.
func (m *Manifest) SortedSections() []string {
	return slices.Sorted(maps.Keys(m.sections))
}

// Len returns the number of sections in m.
func (m *Manifest) Len() int { return len(m.sections) }

// GetByKey returns the value of key in section.
//
// It returns an error matching [ErrMissingSection] if the section does not
// exist, or [ErrMissingKey] if the section exists without the key.
func (m *Manifest) GetByKey(section, key string) (string, error) {
	entries, ok := m.sections[section]
	if !ok {
		return "", missingSection(section)
	}

	value, ok := entries[key]
	if !ok {
		return "", missingKey(section, key)
	}

	return value, nil
}

// GetBySection returns a view of section.
//
// It returns an error matching [ErrMissingSection] if the section does not
// exist.
func (m *Manifest) GetBySection(section string) (Section, error) {
	entries, ok := m.sections[section]
	if !ok {
		return Section{}, missingSection(section)
	}

	return Section{entries: entries, name: section}, nil
}

// ToMap returns a deep copy of m as nested maps, suitable for encoders.
func (m *Manifest) ToMap() map[string]map[string]string {
	out := make(map[string]map[string]string, len(m.sections))
	for name, entries := range m.sections {
		out[name] = maps.Clone(entries)
	}

	return out
}

// Name returns the name of the section.
func (s Section) Name() string { return s.name }

// Get returns the value of key and whether it exists.
func (s Section) Get(key string) (string, bool) {
	v, ok := s.entries[key]

	return v, ok
}

// Has reports whether key exists in the section.
func (s Section) Has(key string) bool {
	_, ok := s.entries[key]

	return ok
}

// Len returns the number of keys in the section.
func (s Section) Len() int { return len(s.entries) }

// Keys returns the keys of the section in lexical order.
func (s Section) Keys() []string {
	return slices.Sorted(maps.Keys(s.entries))
}

// All returns an iterator over the key/value pairs of the section in
// lexical key order.
func (s Section) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range s.Keys() {
			if !yield(k, s.entries[k]) {
				return
			}
		}
	}
}
