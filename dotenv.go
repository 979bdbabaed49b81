// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"bytes"
	"errors"
	"io"
	"io/fs"

	"github.com/z5labs/settings/internal/try"

	"github.com/subosito/gotenv"
)

// dotenvSource applies config from a .env file. Values are always
// strings and use the same key shape as the process environment, but
// the source sits one precedence tier below it.
type dotenvSource struct {
	path   string
	r      io.Reader
	schema *schema
	prefix string
}

func (src dotenvSource) kind() SourceKind { return KindDotenv }
func (src dotenvSource) locator() string  { return src.path }

func (src dotenvSource) apply(st *mergeStore) (err error) {
	defer try.Close(&err, src.r)

	b, err := io.ReadAll(src.r)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	vars, err := gotenv.StrictParse(bytes.NewReader(b))
	if err != nil {
		return SourceFormatError{Locator: src.path, Cause: err}
	}
	applyKeyed(map[string]string(vars), src.schema, src.prefix, st)
	return nil
}
