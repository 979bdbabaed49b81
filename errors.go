// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// InvalidSchemaError occurs when the defaults value given to [Resolve]
// is not usable as a schema.
type InvalidSchemaError struct {
	Type   string
	Reason string
}

// Error implements the error interface.
func (e InvalidSchemaError) Error() string {
	return fmt.Sprintf("invalid settings schema %s: %s", e.Type, e.Reason)
}

// SourceFormatError occurs when a present config file could not be
// parsed per its format. It aborts resolution immediately.
type SourceFormatError struct {
	Locator string
	Cause   error
}

// Error implements the error interface.
func (e SourceFormatError) Error() string {
	return fmt.Sprintf("failed to parse config source %s: %s", e.Locator, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e SourceFormatError) Unwrap() error {
	return e.Cause
}

// DiscoveryError occurs when an explicitly named config file has an
// unrecognized extension or does not exist. It aborts resolution
// immediately.
type DiscoveryError struct {
	Path   string
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e DiscoveryError) Error() string {
	return fmt.Sprintf("invalid config file %s: %s", e.Path, e.Reason)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e DiscoveryError) Unwrap() error {
	return e.Cause
}

// CoercionError occurs when a string value from the environment or a
// dotenv file could not be converted to the primitive shape its schema
// field declares. Coercion failures are never surfaced standalone; they
// are folded into a [ResolutionError] so every field problem is
// reported in one pass.
type CoercionError struct {
	Path       string
	RawValue   any
	TargetType string
	Cause      error
}

// Error implements the error interface.
func (e CoercionError) Error() string {
	return fmt.Sprintf("%s: cannot coerce %q to %s: %s", e.Path, e.RawValue, e.TargetType, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e CoercionError) Unwrap() error {
	return e.Cause
}

func (e CoercionError) fieldPath() string { return e.Path }

// BindError occurs when the merged value for a field could not be
// decoded into the field's declared type.
type BindError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e BindError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot bind value: %s", e.Cause)
	}
	return fmt.Sprintf("%s: cannot bind value: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e BindError) Unwrap() error {
	return e.Cause
}

func (e BindError) fieldPath() string { return e.Path }

// ConstraintError occurs when a bound field fails one of its declared
// validation constraints, including the required constraint.
type ConstraintError struct {
	Path       string
	Constraint string
	Param      string
	Value      any
}

// Error implements the error interface.
func (e ConstraintError) Error() string {
	if e.Constraint == "required" {
		return fmt.Sprintf("%s: required field is missing", e.Path)
	}
	if e.Param == "" {
		return fmt.Sprintf("%s: value %v failed the %q constraint", e.Path, e.Value, e.Constraint)
	}
	return fmt.Sprintf("%s: value %v failed the %q constraint (%s)", e.Path, e.Value, e.Constraint, e.Param)
}

func (e ConstraintError) fieldPath() string { return e.Path }

// fieldError is implemented by every per-field error folded into a
// ResolutionError.
type fieldError interface {
	error
	fieldPath() string
}

// ResolutionError is the terminal failure mode of [Resolve]: the merged
// and coerced mapping was rejected by the schema. It carries every
// field-level problem found in the call, the provenance ledger as built
// so far, the full list of file paths probed during discovery, and the
// fixed precedence order that was applied.
type ResolutionError struct {
	// Fields combines the per-field errors ([CoercionError],
	// [BindError], [ConstraintError]).
	Fields error

	Ledger     *Ledger
	Probed     []string
	Precedence []SourceKind
}

// FieldErrors returns the individual per-field errors.
func (e *ResolutionError) FieldErrors() []error {
	return multierr.Errors(e.Fields)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e *ResolutionError) Unwrap() error {
	return e.Fields
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	var sb strings.Builder
	sb.WriteString("failed to resolve settings\n")

	sb.WriteString("Validation errors:\n")
	for _, ferr := range e.FieldErrors() {
		sb.WriteString("  - ")
		sb.WriteString(ferr.Error())
		sb.WriteByte('\n')
	}

	sb.WriteString("Files checked:\n")
	if len(e.Probed) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, p := range e.Probed {
		sb.WriteString("  - ")
		sb.WriteString(p)
		sb.WriteByte('\n')
	}

	sb.WriteString("Precedence (lowest to highest): ")
	for i, kind := range e.Precedence {
		if i > 0 {
			sb.WriteString(" < ")
		}
		sb.WriteString(string(kind))
	}
	return sb.String()
}
