// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"reflect"
	"testing"

	"github.com/z5labs/settings/fieldpath"

	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, schemaValue any) (*mergeStore, *Ledger) {
	t.Helper()

	s, err := newSchema(reflect.TypeOf(schemaValue))
	require.NoError(t, err)

	ledger := newLedger()
	return newMergeStore(s, ledger), ledger
}

func TestMergeStore(t *testing.T) {
	type db struct {
		Host string
		Port int
	}
	type cfg struct {
		Database db
	}

	t.Run("deep merge keeps sibling fields from earlier sources", func(t *testing.T) {
		st, ledger := testStore(t, cfg{})

		st.enter(KindGlobal, "/global.toml")
		st.Set(fieldpath.Parse("database.host"), "global-host")
		st.Set(fieldpath.Parse("database.port"), 5432)

		st.enter(KindProject, "/project.toml")
		st.Set(fieldpath.Parse("database.port"), 6543)

		v, ok := st.lookup(fieldpath.Parse("database.host"))
		require.True(t, ok)
		require.Equal(t, "global-host", v)

		v, ok = st.lookup(fieldpath.Parse("database.port"))
		require.True(t, ok)
		require.Equal(t, 6543, v)

		host, ok := ledger.Lookup("database.host")
		require.True(t, ok)
		require.Equal(t, KindGlobal, host.Kind)

		port, ok := ledger.Lookup("database.port")
		require.True(t, ok)
		require.Equal(t, KindProject, port.Kind)
	})

	t.Run("later source overwrites the whole record even for equal values", func(t *testing.T) {
		st, ledger := testStore(t, cfg{})

		st.enter(KindGlobal, "/global.toml")
		st.Set(fieldpath.Parse("database.port"), 5432)

		st.enter(KindEnv, LocatorEnv)
		st.Set(fieldpath.Parse("database.port"), "5432")

		port, ok := ledger.Lookup("database.port")
		require.True(t, ok)
		require.Equal(t, KindEnv, port.Kind)
		require.Equal(t, LocatorEnv, port.Locator)
		require.Equal(t, "5432", port.RawValue)
	})

	t.Run("paths outside the schema merge but get no ledger entry", func(t *testing.T) {
		st, ledger := testStore(t, cfg{})

		st.enter(KindProject, "/project.toml")
		st.Set(fieldpath.Parse("extra.key"), "x")

		v, ok := st.lookup(fieldpath.Parse("extra.key"))
		require.True(t, ok)
		require.Equal(t, "x", v)

		_, ok = ledger.Lookup("extra.key")
		require.False(t, ok)
	})

	t.Run("a sub-tree replaces a scalar set earlier", func(t *testing.T) {
		st, _ := testStore(t, cfg{})

		st.enter(KindGlobal, "/global.toml")
		st.Set(fieldpath.Parse("database"), "not-a-table")

		st.enter(KindProject, "/project.toml")
		st.Set(fieldpath.Parse("database.host"), "h")

		v, ok := st.lookup(fieldpath.Parse("database.host"))
		require.True(t, ok)
		require.Equal(t, "h", v)
	})
}

func TestLedger(t *testing.T) {
	t.Run("Paths returns sorted field paths", func(t *testing.T) {
		ledger := newLedger()
		ledger.record(fieldpath.Parse("b"), FieldSource{Kind: KindDefaults})
		ledger.record(fieldpath.Parse("a.c"), FieldSource{Kind: KindDefaults})
		ledger.record(fieldpath.Parse("a.b"), FieldSource{Kind: KindDefaults})

		require.Equal(t, []string{"a.b", "a.c", "b"}, ledger.Paths())
	})

	t.Run("Lookup misses for unknown paths", func(t *testing.T) {
		ledger := newLedger()
		_, ok := ledger.Lookup("nope")
		require.False(t, ok)
	})
}
