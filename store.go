// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"github.com/z5labs/settings/fieldpath"
)

// mergeStore folds per-source raw mappings into one nested mapping,
// last write wins per leaf field path, while recording provenance for
// every schema-known leaf. Field paths a source supplies that the
// schema does not declare are carried into the merged mapping but get
// no ledger entry; rejecting or ignoring them is the binder's job.
type mergeStore struct {
	data   map[string]any
	schema *schema
	ledger *Ledger

	// provenance context of the source currently being applied
	kind    SourceKind
	locator string
}

func newMergeStore(s *schema, l *Ledger) *mergeStore {
	return &mergeStore{
		data:   make(map[string]any),
		schema: s,
		ledger: l,
	}
}

// enter switches the provenance context before a source is applied.
func (st *mergeStore) enter(kind SourceKind, locator string) {
	st.kind = kind
	st.locator = locator
}

// Set writes a leaf value at the given field path, deep-merging into
// any sub-trees earlier sources created. A later source setting only
// database.port leaves an earlier source's database.host intact.
func (st *mergeStore) Set(p fieldpath.Path, value any) {
	if len(p) == 0 {
		return
	}
	setLeaf(st.data, p, value)

	if _, ok := st.schema.leaves[p.String()]; !ok {
		return
	}
	st.ledger.record(p, FieldSource{
		Kind:     st.kind,
		Locator:  st.locator,
		RawValue: value,
	})
}

func setLeaf(m map[string]any, p fieldpath.Path, value any) {
	for len(p) > 1 {
		// A scalar set by an earlier source gives way to the later
		// source's sub-tree; last write wins at every level.
		sub, ok := m[p[0]].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			m[p[0]] = sub
		}
		m = sub
		p = p[1:]
	}
	m[p[0]] = value
}

// lookup returns the merged value at the given field path.
func (st *mergeStore) lookup(p fieldpath.Path) (any, bool) {
	m := st.data
	for len(p) > 1 {
		sub, ok := m[p[0]].(map[string]any)
		if !ok {
			return nil, false
		}
		m = sub
		p = p[1:]
	}
	v, ok := m[p[0]]
	return v, ok
}
