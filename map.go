// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"sort"

	"github.com/z5labs/settings/fieldpath"
)

// mapSource applies an in-memory nested mapping, used for both the
// virtual defaults source and the caller-supplied overrides mapping.
type mapSource struct {
	sourceKind    SourceKind
	sourceLocator string
	values        map[string]any
}

func (src mapSource) kind() SourceKind { return src.sourceKind }
func (src mapSource) locator() string  { return src.sourceLocator }

func (src mapSource) apply(st *mergeStore) error {
	walkRaw(src.values, st, nil)
	return nil
}

// walkRaw recursively walks a raw mapping and sets every leaf on the
// store. Keys are visited in sorted order so that two calls with the
// same inputs record identical ledgers.
func walkRaw(m map[string]any, st *mergeStore, prefix fieldpath.Path) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch x := m[k].(type) {
		case map[string]any:
			walkRaw(x, st, prefix.Child(k))
		default:
			st.Set(prefix.Child(k), x)
		}
	}
}

// expandDotted rewrites dotted keys in an overrides mapping into nested
// maps, so both {"database.host": v} and {"database": {"host": v}}
// address the same field.
func expandDotted(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			v = expandDotted(sub)
		}
		insert(out, fieldpath.Parse(k), v)
	}
	return out
}
