// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

// SourceKind identifies one of the six fixed precedence tiers a config
// value can originate from. Later kinds override earlier kinds for the
// same field path. The order is fixed and never configurable.
type SourceKind string

const (
	// KindDefaults is the virtual source backed by the schema's
	// declared field defaults. Always present, always lowest.
	KindDefaults SourceKind = "defaults"

	// KindGlobal is the per-user file under ~/.config/{app}/.
	KindGlobal SourceKind = "global"

	// KindProject is a project-local config file, auto-discovered from
	// the working directory or named explicitly by the caller.
	KindProject SourceKind = "project"

	// KindDotenv is the {cwd}/.env file. Note it sits below the process
	// environment: ambient shell exports beat a checked-in .env file.
	KindDotenv SourceKind = "dotenv"

	// KindEnv is the process environment.
	KindEnv SourceKind = "env"

	// KindOverrides is the caller-supplied runtime mapping. Always highest.
	KindOverrides SourceKind = "overrides"
)

// LocatorEnv and LocatorOverrides are the locator strings reported for
// the two sources that are not backed by a file.
const (
	LocatorEnv       = "process environment"
	LocatorOverrides = "runtime"
)

var precedence = [...]SourceKind{
	KindDefaults,
	KindGlobal,
	KindProject,
	KindDotenv,
	KindEnv,
	KindOverrides,
}

// Precedence returns the fixed source precedence order, lowest first.
func Precedence() []SourceKind {
	order := make([]SourceKind, len(precedence))
	copy(order[:], precedence[:])
	return order
}
