// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"strings"
)

// envSource applies config from the environment variables available to
// the current process, consulting only keys the schema can produce.
type envSource struct {
	environ func() []string
	schema  *schema
	prefix  string
}

func (src envSource) kind() SourceKind { return KindEnv }
func (src envSource) locator() string  { return LocatorEnv }

func (src envSource) apply(st *mergeStore) error {
	vars := make(map[string]string)
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		vars[k] = v
	}
	applyKeyed(vars, src.schema, src.prefix, st)
	return nil
}

// applyKeyed sets, per schema field, the value of its single candidate
// key if that key is present in vars. Matching is exact-case: keys are
// derived from field paths (upper-cased, nesting joined with "__") and
// looked up verbatim. When a prefix is configured only prefixed keys
// are consulted; unprefixed keys are ignored entirely.
func applyKeyed(vars map[string]string, s *schema, prefix string, st *mergeStore) {
	for i := range s.fields {
		f := &s.fields[i]
		if !s.lookupEnv(f) {
			// key collision lost to a deeper field path
			continue
		}

		key := f.envKey
		if prefix != "" {
			key = strings.ToUpper(prefix) + "_" + key
		}

		v, ok := vars[key]
		if !ok {
			continue
		}
		st.Set(f.path, v)
	}
}
