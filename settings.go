// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"errors"
	"os"
	"reflect"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Option configures a single call to [Resolve].
type Option func(*options)

type options struct {
	appName    string
	dir        string
	envPrefix  string
	configFile string
	overrides  map[string]any
	environ    func() []string
	homeDir    string
	logger     *zap.Logger
}

// AppName sets the application name used for file discovery. It
// defaults to the lower-cased schema type name.
func AppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// Dir sets the working directory searched for project files and .env.
// It defaults to the process working directory.
func Dir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// EnvPrefix requires every environment and dotenv key to carry the
// given prefix joined with "_". With a prefix set, unprefixed keys are
// ignored entirely, not merely deprioritized.
func EnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// ConfigFile names the project config file explicitly, disabling
// global-config and project-file auto-discovery. The file's format is
// inferred from its extension (.toml, .yaml, .yml) and the file must
// exist. Leading "~" and $VAR references in the path are expanded.
func ConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// Overrides supplies the runtime mapping, the highest-precedence
// source. Keys may be nested maps or dotted field paths.
func Overrides(m map[string]any) Option {
	return func(o *options) {
		o.overrides = m
	}
}

// Environ overrides how the process environment is snapshotted. Meant
// for tests.
func Environ(f func() []string) Option {
	return func(o *options) {
		o.environ = f
	}
}

// HomeDir overrides the user home directory used for global config
// discovery. Meant for tests.
func HomeDir(dir string) Option {
	return func(o *options) {
		o.homeDir = dir
	}
}

// Logger sets the logger for debug-level resolution events. It
// defaults to a nop logger.
func Logger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Resolve folds the six config sources, in fixed precedence order,
// into one validated settings value and a provenance [Ledger] that
// records, per field, which source supplied the final value.
//
// The schema is the type of defaults: a struct whose fields may carry
// `config` tags naming their key and `validate` tags declaring
// constraints. The defaults value itself backs the lowest-precedence
// source. Above it, in order: the per-user global file, a project
// file, {cwd}/.env, the process environment, and the Overrides
// mapping. Later sources win per leaf field; sub-objects merge
// field-by-field.
//
// A present-but-malformed file fails immediately with a
// [SourceFormatError], and a bad explicit config file with a
// [DiscoveryError]. All value-level problems are collected into a
// single [*ResolutionError] carrying every field failure, the ledger,
// and the files probed.
func Resolve[T any](defaults T, opts ...Option) (T, *Ledger, error) {
	var zero T

	o := &options{
		environ: os.Environ,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	s, err := newSchema(reflect.TypeOf(defaults))
	if err != nil {
		return zero, nil, err
	}
	if o.appName == "" {
		o.appName = s.name
	}
	if o.dir == "" {
		o.dir, err = os.Getwd()
		if err != nil {
			return zero, nil, err
		}
	}

	locs, err := locate(s, defaultsFor(s, reflect.ValueOf(defaults)), o)
	if err != nil {
		return zero, nil, err
	}
	o.logger.Debug("located config sources",
		zap.String("app_name", o.appName),
		zap.Strings("probed", locs.probed),
	)

	ledger := newLedger()
	st := newMergeStore(s, ledger)
	for _, src := range locs.sources {
		st.enter(src.kind(), src.locator())

		err := src.apply(st)
		if err != nil {
			return zero, nil, err
		}
		o.logger.Debug("applied config source",
			zap.String("kind", string(src.kind())),
			zap.String("locator", src.locator()),
		)
	}

	fieldErrs := coerceAll(s, st, ledger)

	var resolved T
	fieldErrs = multierr.Append(fieldErrs, bind(s, st.data, &resolved))
	if fieldErrs != nil {
		return zero, nil, &ResolutionError{
			Fields:     dedupByPath(fieldErrs),
			Ledger:     ledger,
			Probed:     locs.probed,
			Precedence: Precedence(),
		}
	}

	o.logger.Debug("resolved settings", zap.Int("fields", len(s.fields)))
	return resolved, ledger, nil
}

// dedupByPath keeps the first reported error per field path, so a
// coercion failure is not echoed again by the binder or validator for
// the same field.
func dedupByPath(errs error) error {
	seen := make(map[string]struct{})
	var out error
	for _, e := range multierr.Errors(errs) {
		var fe fieldError
		if errors.As(e, &fe) && fe.fieldPath() != "" {
			if _, ok := seen[fe.fieldPath()]; ok {
				continue
			}
			seen[fe.fieldPath()] = struct{}{}
		}
		out = multierr.Append(out, e)
	}
	return out
}
