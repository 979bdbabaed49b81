// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pathutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T, home string) {
	t.Helper()

	t.Setenv("HOME", home)
	homedir.Reset()
	t.Cleanup(homedir.Reset)
}

func TestExpand(t *testing.T) {
	t.Run("expands a leading tilde", func(t *testing.T) {
		home := t.TempDir()
		setHome(t, home)

		expanded, err := Expand("~/config.yaml")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(home, "config.yaml"), expanded)
	})

	t.Run("expands environment variables", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_DIR", "/custom/config")

		expanded, err := Expand("$TEST_CONFIG_DIR/app.yaml")
		require.NoError(t, err)
		require.Equal(t, "/custom/config/app.yaml", expanded)
	})

	t.Run("expands braced environment variables", func(t *testing.T) {
		t.Setenv("CONFIG_DIR", "/etc/config")

		expanded, err := Expand("${CONFIG_DIR}/app.toml")
		require.NoError(t, err)
		require.Equal(t, "/etc/config/app.toml", expanded)
	})

	t.Run("combines tilde and environment variables", func(t *testing.T) {
		home := t.TempDir()
		setHome(t, home)
		t.Setenv("SUBDIR", "myapp")

		expanded, err := Expand("~/$SUBDIR/config.yaml")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(home, "myapp", "config.yaml"), expanded)
	})

	t.Run("leaves undefined variables in place", func(t *testing.T) {
		expanded, err := Expand("$NONEXISTENT_VERY_UNIQUE_VAR_12345/config.yaml")
		require.NoError(t, err)
		require.Equal(t, "$NONEXISTENT_VERY_UNIQUE_VAR_12345/config.yaml", expanded)
	})
}

func TestExpandExisting(t *testing.T) {
	t.Run("succeeds for existing paths", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "existing_config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("test: value"), 0o644))
		t.Setenv("TEST_CONFIG_FILE", path)

		expanded, err := ExpandExisting("$TEST_CONFIG_FILE")
		require.NoError(t, err)
		require.Equal(t, path, expanded)
	})

	t.Run("fails for missing paths", func(t *testing.T) {
		_, err := ExpandExisting(filepath.Join(t.TempDir(), "nonexistent.yaml"))
		require.Error(t, err)

		var perr PathNotExistError
		require.True(t, errors.As(err, &perr))
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
}
