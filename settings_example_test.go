// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/z5labs/settings"
)

func ExampleResolve() {
	dir, err := os.MkdirTemp("", "settings-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	err = os.WriteFile(filepath.Join(dir, "demo.toml"), []byte("workers = 8\n"), 0o644)
	if err != nil {
		fmt.Println(err)
		return
	}

	type Demo struct {
		Workers int
	}

	cfg, ledger, err := settings.Resolve(Demo{Workers: 4},
		settings.AppName("demo"),
		settings.Dir(dir),
		settings.HomeDir(dir),
		settings.Environ(func() []string { return nil }),
		settings.Overrides(map[string]any{"workers": 16}),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(cfg.Workers)

	src, _ := ledger.Lookup("workers")
	fmt.Println(src.Kind, src.Locator)
	// Output:
	// 16
	// overrides runtime
}

func ExampleResolve_provenance() {
	dir, err := os.MkdirTemp("", "settings-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	err = os.WriteFile(filepath.Join(dir, "demo.yaml"), []byte("database:\n  host: db.internal\n"), 0o644)
	if err != nil {
		fmt.Println(err)
		return
	}

	type Demo struct {
		Database struct {
			Host string
			Port int
		}
	}

	var defaults Demo
	defaults.Database.Host = "localhost"
	defaults.Database.Port = 5432

	_, ledger, err := settings.Resolve(defaults,
		settings.AppName("demo"),
		settings.Dir(dir),
		settings.HomeDir(dir),
		settings.Environ(func() []string { return nil }),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	host, _ := ledger.Lookup("database.host")
	port, _ := ledger.Lookup("database.port")
	fmt.Println("database.host:", host.Kind)
	fmt.Println("database.port:", port.Kind)
	// Output:
	// database.host: project
	// database.port: defaults
}
