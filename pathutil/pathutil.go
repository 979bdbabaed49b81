// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package pathutil expands user and environment tokens in filesystem paths.
//
// Config values and explicitly named config files frequently contain a
// leading "~" or embedded "$VAR"/"${VAR}" references. Expand resolves
// both; ExpandExisting additionally requires the expanded path to exist.
package pathutil

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
)

// Expand resolves a leading "~" to the current user's home directory and
// substitutes "$VAR" and "${VAR}" environment references. A reference to
// an unset variable is left in place verbatim rather than replaced with
// an empty string. The expanded path does not need to exist.
func Expand(value string) (string, error) {
	expanded, err := homedir.Expand(value)
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory in %q: %w", value, err)
	}

	expanded = os.Expand(expanded, func(name string) string {
		v, ok := os.LookupEnv(name)
		if !ok {
			return "$" + name
		}
		return v
	})
	return expanded, nil
}

// PathNotExistError occurs when an expanded path does not exist on disk.
type PathNotExistError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e PathNotExistError) Error() string {
	return fmt.Sprintf("path does not exist: %s", e.Path)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e PathNotExistError) Unwrap() error {
	return e.Cause
}

// ExpandExisting behaves like [Expand] but fails with a
// [PathNotExistError] if the expanded path does not exist.
func ExpandExisting(value string) (string, error) {
	expanded, err := Expand(value)
	if err != nil {
		return "", err
	}

	_, err = os.Stat(expanded)
	if err != nil {
		return "", PathNotExistError{Path: expanded, Cause: fs.ErrNotExist}
	}
	return expanded, nil
}
