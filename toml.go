// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"errors"
	"io"
	"io/fs"

	"github.com/z5labs/settings/internal/try"

	"github.com/pelletier/go-toml/v2"
)

// tomlSource applies config from TOML parsed from the given io.Reader.
// Dotted table paths in the file map directly to the same field paths.
type tomlSource struct {
	srcKind    SourceKind
	srcLocator string
	r          io.Reader
}

func fromTOML(kind SourceKind, locator string, r io.Reader) tomlSource {
	return tomlSource{
		srcKind:    kind,
		srcLocator: locator,
		r:          r,
	}
}

func (src tomlSource) kind() SourceKind { return src.srcKind }
func (src tomlSource) locator() string  { return src.srcLocator }

func (src tomlSource) apply(st *mergeStore) (err error) {
	defer try.Close(&err, src.r)

	b, err := io.ReadAll(src.r)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	m := make(map[string]any)
	err = toml.Unmarshal(b, &m)
	if err != nil {
		return SourceFormatError{Locator: src.srcLocator, Cause: err}
	}
	walkRaw(m, st, nil)
	return nil
}
