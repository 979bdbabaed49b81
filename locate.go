// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/z5labs/settings/pathutil"

	"github.com/mitchellh/go-homedir"
)

// locations is the output of discovery: the ordered list of sources to
// fold, plus every file path that was a candidate, existing or not.
type locations struct {
	sources []source
	probed  []string
}

// locate computes the ordered source list for one resolution call.
//
// Without an explicit config file the order is: defaults, the per-user
// global file, the project file, {cwd}/.env, the process environment,
// then runtime overrides. Naming a config file explicitly replaces the
// global and project tiers with just that file.
func locate(s *schema, defaults map[string]any, o *options) (*locations, error) {
	locs := &locations{
		sources: []source{
			mapSource{sourceKind: KindDefaults, values: defaults},
		},
	}

	if o.configFile != "" {
		err := locateExplicit(locs, o.configFile)
		if err != nil {
			return nil, err
		}
	} else {
		locateGlobal(locs, o)
		locateProject(locs, o)
	}

	dotenvPath := filepath.Join(o.dir, ".env")
	locs.probed = append(locs.probed, dotenvPath)
	locs.sources = append(locs.sources, dotenvSource{
		path:   dotenvPath,
		r:      newFileReader(dotenvPath),
		schema: s,
		prefix: o.envPrefix,
	})

	locs.sources = append(locs.sources, envSource{
		environ: o.environ,
		schema:  s,
		prefix:  o.envPrefix,
	})

	if len(o.overrides) > 0 {
		locs.sources = append(locs.sources, mapSource{
			sourceKind:    KindOverrides,
			sourceLocator: LocatorOverrides,
			values:        expandDotted(o.overrides),
		})
	}
	return locs, nil
}

func locateExplicit(locs *locations, configFile string) error {
	path, err := pathutil.Expand(configFile)
	if err != nil {
		return err
	}

	src, err := fileSourceFor(KindProject, path)
	if err != nil {
		return err
	}

	locs.probed = append(locs.probed, path)
	if !fileExists(path) {
		return DiscoveryError{
			Path:   path,
			Reason: "explicitly named config file does not exist",
			Cause:  fs.ErrNotExist,
		}
	}
	locs.sources = append(locs.sources, src)
	return nil
}

func locateGlobal(locs *locations, o *options) {
	home := o.homeDir
	if home == "" {
		var err error
		home, err = homedir.Dir()
		if err != nil {
			return
		}
	}

	dir := filepath.Join(home, ".config", o.appName)
	candidates := []string{
		filepath.Join(dir, o.appName+".toml"),
		filepath.Join(dir, o.appName+".yaml"),
	}
	locs.probed = append(locs.probed, candidates...)

	for _, path := range candidates {
		if !fileExists(path) {
			continue
		}
		src, err := fileSourceFor(KindGlobal, path)
		if err != nil {
			continue
		}
		locs.sources = append(locs.sources, src)
		return
	}
}

func locateProject(locs *locations, o *options) {
	candidates := []string{
		filepath.Join(o.dir, o.appName+".toml"),
		filepath.Join(o.dir, o.appName+".yaml"),
		filepath.Join(o.dir, "config", o.appName+".toml"),
		filepath.Join(o.dir, "config", o.appName+".yaml"),
	}
	locs.probed = append(locs.probed, candidates...)

	for _, path := range candidates {
		if !fileExists(path) {
			continue
		}
		src, err := fileSourceFor(KindProject, path)
		if err != nil {
			continue
		}
		locs.sources = append(locs.sources, src)
		return
	}

	// No named candidate exists; fall back to everything under
	// {cwd}/config/, each file a separate project contribution merged
	// in lexical filename order.
	for _, pattern := range []string{"*.toml", "*.yaml"} {
		matches, err := filepath.Glob(filepath.Join(o.dir, "config", pattern))
		if err != nil {
			continue
		}
		for _, path := range matches {
			locs.probed = append(locs.probed, path)
			src, err := fileSourceFor(KindProject, path)
			if err != nil {
				continue
			}
			locs.sources = append(locs.sources, src)
		}
	}
}

func fileSourceFor(kind SourceKind, path string) (source, error) {
	switch filepath.Ext(path) {
	case ".toml":
		return fromTOML(kind, path, newFileReader(path)), nil
	case ".yaml", ".yml":
		return fromYAML(kind, path, newFileReader(path)), nil
	default:
		return nil, DiscoveryError{
			Path:   path,
			Reason: fmt.Sprintf("unrecognized config file extension %q", filepath.Ext(path)),
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
