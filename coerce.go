// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// coerceAll converts string values that arrived from a string-bearing
// source (env, dotenv) into the primitive shape their schema field
// declares. File-sourced values are already typed and pass through
// untouched, as does anything destined for a string field or a richer
// type the binder converts itself (durations, TextUnmarshalers).
//
// Failures are not raised here; they are collected and folded into the
// aggregate resolution error so a single call surfaces every field
// problem at once. The ledger keeps the pre-coercion raw value.
func coerceAll(s *schema, st *mergeStore, ledger *Ledger) error {
	var errs error
	for i := range s.fields {
		f := &s.fields[i]

		rec, ok := ledger.Lookup(f.path.String())
		if !ok || (rec.Kind != KindEnv && rec.Kind != KindDotenv) {
			continue
		}
		if f.tag == tagString || f.tag == tagOther {
			continue
		}

		v, ok := st.lookup(f.path)
		if !ok {
			continue
		}
		raw, ok := v.(string)
		if !ok {
			continue
		}

		coerced, err := coerceValue(raw, f)
		if err != nil {
			errs = multierr.Append(errs, CoercionError{
				Path:       f.path.String(),
				RawValue:   raw,
				TargetType: f.typ.String(),
				Cause:      err,
			})
			continue
		}
		setLeaf(st.data, f.path, coerced)
	}
	return errs
}

func coerceValue(raw string, f *schemaField) (any, error) {
	switch f.tag {
	case tagBool:
		return coerceBool(raw)
	case tagInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.New("not an integer literal")
		}
		return n, nil
	case tagUint:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, errors.New("not an unsigned integer literal")
		}
		return n, nil
	case tagFloat:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("not a numeric literal")
		}
		return n, nil
	case tagSlice:
		return coerceList(raw, f.elem)
	default:
		return raw, nil
	}
}

// coerceBool accepts exactly "true"/"1" and "false"/"0",
// case-insensitively. Anything else is a coercion failure.
func coerceBool(raw string) (any, error) {
	switch strings.ToLower(raw) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return nil, errors.New("not a boolean literal")
	}
}

// coerceList requires a JSON-array literal. There is no implicit
// splitting of plain comma-separated text.
func coerceList(raw string, elem typeTag) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var vals []any
	err := dec.Decode(&vals)
	if err != nil {
		return nil, errors.New("list values must be JSON array literals")
	}

	out := make([]any, len(vals))
	for i, v := range vals {
		out[i], err = coerceListElem(v, elem)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func coerceListElem(v any, elem typeTag) (any, error) {
	switch elem {
	case tagString:
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("list element is not a string")
		}
		return s, nil
	case tagBool:
		b, ok := v.(bool)
		if !ok {
			return nil, errors.New("list element is not a boolean")
		}
		return b, nil
	case tagInt:
		num, ok := v.(json.Number)
		if !ok {
			return nil, errors.New("list element is not an integer")
		}
		n, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			return nil, errors.New("list element is not an integer")
		}
		return n, nil
	case tagUint:
		num, ok := v.(json.Number)
		if !ok {
			return nil, errors.New("list element is not an unsigned integer")
		}
		n, err := strconv.ParseUint(num.String(), 10, 64)
		if err != nil {
			return nil, errors.New("list element is not an unsigned integer")
		}
		return n, nil
	case tagFloat:
		num, ok := v.(json.Number)
		if !ok {
			return nil, errors.New("list element is not a number")
		}
		n, err := strconv.ParseFloat(num.String(), 64)
		if err != nil {
			return nil, errors.New("list element is not a number")
		}
		return n, nil
	default:
		if num, ok := v.(json.Number); ok {
			if n, err := strconv.ParseInt(num.String(), 10, 64); err == nil {
				return n, nil
			}
			if n, err := strconv.ParseFloat(num.String(), 64); err == nil {
				return n, nil
			}
		}
		return v, nil
	}
}
