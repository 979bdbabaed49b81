// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package settings resolves typed application configuration from six
// ordered sources into a single validated value, recording per-field
// provenance along the way.
//
// The sources, lowest precedence first:
//
//   - defaults: the schema value passed to [Resolve]
//   - global: ~/.config/{app}/{app}.toml or .yaml
//   - project: {cwd}/{app}.toml, {cwd}/{app}.yaml, {cwd}/config/... or
//     an explicitly named file
//   - dotenv: {cwd}/.env
//   - env: the process environment
//   - overrides: a caller-supplied runtime mapping
//
// Later sources win per leaf field path; object-valued sub-trees merge
// field-by-field, so a source setting only database.port never erases
// database.host from an earlier one. A missing file contributes
// nothing and is not an error.
//
// # Basic Usage
//
// Declare a schema struct and resolve it:
//
//	type Config struct {
//	    Workers  int `validate:"min=1"`
//	    Database struct {
//	        Host string `validate:"required"`
//	        Port int
//	    }
//	}
//
//	cfg, ledger, err := settings.Resolve(Config{Workers: 4})
//
// Environment keys derive from field paths: nesting levels join with
// "__" and the whole key is upper-cased, so database.host reads from
// DATABASE__HOST (or MYAPP_DATABASE__HOST with [EnvPrefix]).
//
// # Provenance
//
// The returned [Ledger] answers, for every schema field, which source
// kind produced the final value, from which file (or the environment,
// or the runtime mapping), and what the raw pre-coercion value was:
//
//	src, ok := ledger.Lookup("database.host")
//	// src.Kind == settings.KindEnv, src.Locator, src.RawValue
//
// # Errors
//
// Malformed files and bad explicit config files abort resolution
// immediately ([SourceFormatError], [DiscoveryError]). Every
// value-level problem is instead collected into one [*ResolutionError]
// so a caller sees all failed fields, the files that were probed, and
// the precedence order in a single pass.
package settings
