// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package fieldpath provides the dotted address type used to identify
// schema fields across configuration sources.
package fieldpath

import (
	"strings"
)

// Path addresses a leaf or sub-object in a schema tree. Each element is
// one nesting level; the canonical string form joins elements with ".".
type Path []string

// Parse splits a canonical dotted string into a Path.
func Parse(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// String implements the [fmt.Stringer] interface.
func (p Path) String() string {
	return strings.Join([]string(p), ".")
}

// Child returns a new Path addressing the named member of p. The
// returned Path never aliases p's backing array.
func (p Path) Child(name string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, name)
}

// Equal reports whether two Paths address the same field.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
