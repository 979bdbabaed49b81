// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"encoding"
	"reflect"
	"strings"
	"time"

	"github.com/z5labs/settings/fieldpath"
)

// typeTag classifies the primitive shape a schema field declares, as
// needed by the coercion rules for string-bearing sources.
type typeTag int

const (
	tagOther typeTag = iota
	tagString
	tagBool
	tagInt
	tagUint
	tagFloat
	tagSlice
)

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	timeType            = reflect.TypeOf(time.Time{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// schemaField describes one leaf of the schema tree.
type schemaField struct {
	path fieldpath.Path
	typ  reflect.Type
	tag  typeTag
	elem typeTag

	// envKey is the unprefixed environment key derived from path:
	// nesting levels joined with "__", upper-cased. Underscores inside
	// a single segment are left alone, so a top-level max_workers field
	// yields MAX_WORKERS while a nested max.workers yields MAX__WORKERS.
	envKey string

	// namespace is the Go field namespace without the root type name,
	// e.g. "Database.Host", used to map validator failures back to
	// field paths.
	namespace string

	index []int
}

// schema is the enumerable descriptor of a settings struct: every leaf
// field path, its declared shape, and the key forms each source uses
// for it. Built once per Resolve call and consumed uniformly by the
// merge, coercion, and binding stages.
type schema struct {
	typ  reflect.Type
	name string

	fields      []schemaField
	leaves      map[string]*schemaField
	byNamespace map[string]*schemaField

	// envKeys resolves each candidate environment key to exactly one
	// field. On a key collision the deeper field path wins.
	envKeys map[string]*schemaField
}

func newSchema(t reflect.Type) (*schema, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return &schema{}, InvalidSchemaError{
			Type:   t.String(),
			Reason: "schema must be a struct type",
		}
	}

	s := &schema{
		typ:         t,
		name:        strings.ToLower(t.Name()),
		leaves:      make(map[string]*schemaField),
		byNamespace: make(map[string]*schemaField),
		envKeys:     make(map[string]*schemaField),
	}
	err := s.walkStruct(t, nil, "", nil)
	if err != nil {
		return s, err
	}

	for i := range s.fields {
		f := &s.fields[i]
		s.leaves[f.path.String()] = f
		s.byNamespace[f.namespace] = f

		prev, ok := s.envKeys[f.envKey]
		if !ok || len(f.path) > len(prev.path) {
			s.envKeys[f.envKey] = f
		}
	}
	return s, nil
}

func (s *schema) walkStruct(t reflect.Type, path fieldpath.Path, namespace string, index []int) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		segment := segmentName(f)
		if segment == "-" {
			continue
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		childPath := path.Child(segment)
		childNS := f.Name
		if namespace != "" {
			childNS = namespace + "." + f.Name
		}
		childIndex := make([]int, len(index), len(index)+1)
		copy(childIndex, index)
		childIndex = append(childIndex, i)

		if ft.Kind() == reflect.Struct && !isLeafStruct(ft) {
			err := s.walkStruct(ft, childPath, childNS, childIndex)
			if err != nil {
				return err
			}
			continue
		}

		s.fields = append(s.fields, schemaField{
			path:      childPath,
			typ:       ft,
			tag:       classify(ft),
			elem:      classifyElem(ft),
			envKey:    envKeyFor(childPath),
			namespace: childNS,
			index:     childIndex,
		})
	}
	return nil
}

func segmentName(f reflect.StructField) string {
	tag := f.Tag.Get("config")
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}

// isLeafStruct reports whether a struct-typed field is bound as a whole
// value rather than walked into nested field paths.
func isLeafStruct(t reflect.Type) bool {
	if t == timeType {
		return true
	}
	return t.Implements(textUnmarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType)
}

func classify(t reflect.Type) typeTag {
	if t == durationType || isLeafStruct(t) {
		return tagOther
	}
	switch t.Kind() {
	case reflect.String:
		return tagString
	case reflect.Bool:
		return tagBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return tagInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return tagUint
	case reflect.Float32, reflect.Float64:
		return tagFloat
	case reflect.Slice, reflect.Array:
		return tagSlice
	default:
		return tagOther
	}
}

func classifyElem(t reflect.Type) typeTag {
	if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
		return tagOther
	}
	et := t.Elem()
	for et.Kind() == reflect.Pointer {
		et = et.Elem()
	}
	return classify(et)
}

func envKeyFor(p fieldpath.Path) string {
	return strings.ToUpper(strings.Join(p, "__"))
}

// lookupEnv resolves an environment key to a schema field, honoring the
// longest-field-path rule on collisions.
func (s *schema) lookupEnv(f *schemaField) bool {
	return s.envKeys[f.envKey] == f
}

// defaultsFor flattens the declared defaults of the given schema value
// into a raw mapping covering every leaf field path.
func defaultsFor(s *schema, v reflect.Value) map[string]any {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return make(map[string]any)
		}
		v = v.Elem()
	}

	m := make(map[string]any)
	for i := range s.fields {
		f := &s.fields[i]

		fv, ok := fieldByIndex(v, f.index)
		if !ok {
			continue
		}
		insert(m, f.path, fv.Interface())
	}
	return m
}

// fieldByIndex walks an index chain, stopping at nil pointers instead
// of panicking like reflect.Value.FieldByIndex does.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for _, i := range index {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v, true
}

func insert(m map[string]any, p fieldpath.Path, value any) {
	if len(p) == 0 {
		return
	}
	for len(p) > 1 {
		sub, ok := m[p[0]].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			m[p[0]] = sub
		}
		m = sub
		p = p[1:]
	}
	m[p[0]] = value
}
