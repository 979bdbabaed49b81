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

	"gopkg.in/yaml.v3"
)

// yamlSource applies config from YAML parsed from the given io.Reader.
type yamlSource struct {
	srcKind    SourceKind
	srcLocator string
	r          io.Reader
}

func fromYAML(kind SourceKind, locator string, r io.Reader) yamlSource {
	return yamlSource{
		srcKind:    kind,
		srcLocator: locator,
		r:          r,
	}
}

func (src yamlSource) kind() SourceKind { return src.srcKind }
func (src yamlSource) locator() string  { return src.srcLocator }

func (src yamlSource) apply(st *mergeStore) (err error) {
	defer try.Close(&err, src.r)

	b, err := io.ReadAll(src.r)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	m := make(map[string]any)
	err = yaml.Unmarshal(b, &m)
	if err != nil {
		return SourceFormatError{Locator: src.srcLocator, Cause: err}
	}
	walkRaw(m, st, nil)
	return nil
}
