// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"sort"

	"github.com/z5labs/settings/fieldpath"
)

// FieldSource records the provenance of one resolved field: which source
// kind produced the final value, where that source lived, and the raw
// value before any type coercion or validation.
type FieldSource struct {
	Kind SourceKind

	// Locator is the absolute file path for file-backed sources,
	// [LocatorEnv] for the process environment, [LocatorOverrides] for
	// the runtime mapping, and empty for defaults.
	Locator string

	// RawValue is the value exactly as the winning source supplied it,
	// pre-coercion and pre-validation.
	RawValue any
}

// Ledger maps every field path present in the schema to the provenance
// of its resolved value. A Ledger is built once per Resolve call and is
// never mutated after the call returns.
type Ledger struct {
	entries map[string]FieldSource
}

func newLedger() *Ledger {
	return &Ledger{
		entries: make(map[string]FieldSource),
	}
}

// A later source overwrites the whole record atomically.
func (l *Ledger) record(p fieldpath.Path, src FieldSource) {
	l.entries[p.String()] = src
}

// Lookup returns the provenance record for the given dotted field path.
// The second return value is false for paths absent from the schema.
func (l *Ledger) Lookup(path string) (FieldSource, bool) {
	src, ok := l.entries[path]
	return src, ok
}

// Paths returns every recorded field path in sorted order.
func (l *Ledger) Paths() []string {
	paths := make([]string, 0, len(l.entries))
	for p := range l.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
