// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

// A source serializes one config input into leaf values on the merge
// store. Applying a source whose backing file is missing is a no-op,
// never an error; only a present-but-malformed input fails.
type source interface {
	kind() SourceKind
	locator() string
	apply(*mergeStore) error
}
