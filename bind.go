// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"encoding"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/multierr"
)

// bind decodes the merged mapping into the typed settings value and
// validates it against its declared constraints. All field-level
// problems are returned combined; bind never stops at the first one.
func bind(s *schema, data map[string]any, out any) error {
	var errs error

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "config",
		Result:  out,
		DecodeHook: composeDecodeHooks(
			textUnmarshalerHookFunc(),
			timeDurationHookFunc(),
		),
	})
	if err != nil {
		return BindError{Cause: err}
	}

	errs = multierr.Append(errs, decodeErrors(dec.Decode(data)))
	errs = multierr.Append(errs, checkConstraints(s, out))
	return errs
}

// decodeErrors splits an aggregated mapstructure failure into one
// BindError per field.
func decodeErrors(err error) error {
	if err == nil {
		return nil
	}

	var merr interface{ Unwrap() []error }
	if !errors.As(err, &merr) {
		return BindError{Cause: err}
	}

	var errs error
	for _, e := range merr.Unwrap() {
		msg := e.Error()
		errs = multierr.Append(errs, BindError{
			Path:  quotedFieldPath(msg),
			Cause: errors.New(msg),
		})
	}
	return errs
}

// quotedFieldPath pulls the dotted field path out of a mapstructure
// message, e.g. "cannot parse 'database.port' as int: ...".
func quotedFieldPath(msg string) string {
	start := strings.IndexByte(msg, '\'')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(msg[start+1:], '\'')
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

func checkConstraints(s *schema, out any) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(out)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return BindError{Cause: err}
	}

	var errs error
	for _, fe := range verrs {
		path := fe.StructNamespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			if f, found := s.byNamespace[rest]; found {
				path = f.path.String()
			}
		}
		errs = multierr.Append(errs, ConstraintError{
			Path:       path,
			Constraint: fe.Tag(),
			Param:      fe.Param(),
			Value:      fe.Value(),
		})
	}
	return errs
}

var errInvalidDecodeCondition = errors.New("invalid decode condition")

func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if err == errInvalidDecodeCondition {
				continue
			}
			return nil, err
		}
		return f.Interface(), nil
	}
}

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		result := reflect.New(t).Interface()
		u, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return nil, errInvalidDecodeCondition
		}
		err := u.UnmarshalText([]byte(data.(string)))
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}

		switch x := data.(type) {
		case time.Duration:
			return x, nil
		case string:
			return time.ParseDuration(x)
		case int:
			return time.Duration(int64(x)), nil
		case int64:
			return time.Duration(x), nil
		default:
			return nil, errInvalidDecodeCondition
		}
	}
}
