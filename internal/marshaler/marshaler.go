// Package marshaler converts Go values into V1 entries.
package marshaler

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/nyml-lang/go-nyml/ast"
	"github.com/nyml-lang/go-nyml/internal/formatter"
	"github.com/nyml-lang/go-nyml/internal/mapper"
)

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// Marshal returns the entries for v, which must be a struct or a map with
// string keys, or a pointer to one.
func Marshal(v any) ([]*ast.Entry, error) {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, fmt.Errorf("nyml: cannot marshal nil value")
	}
	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("nyml: cannot marshal %s at document root, want struct or map", rv.Type())
	}
	m := &marshaler{}
	return m.members(rv)
}

type marshaler struct{}

// isEmptyValue reports whether the value v is empty.
// It is equivalent to the `encoding/json` definition of empty:
// false, 0, a nil pointer, a nil interface value, and any empty array,
// slice, map, or string.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// members returns the entries for the fields of a struct or the pairs of a
// map. Map keys are sorted.
func (m *marshaler) members(v reflect.Value) ([]*ast.Entry, error) {
	entries := []*ast.Entry{}
	if v.Kind() == reflect.Map {
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("nyml: map key type must be a string, got %s", v.Type().Key())
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			var err error
			if entries, err = m.appendValue(entries, k.String(), v.MapIndex(k)); err != nil {
				return nil, err
			}
		}
		return entries, nil
	}

	for _, f := range mapper.CachedFields(v.Type()).List {
		fv := v.FieldByIndex(f.Index)
		if f.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		var err error
		if entries, err = m.appendValue(entries, f.Name, fv); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (m *marshaler) appendValue(entries []*ast.Entry, key string, v reflect.Value) ([]*ast.Entry, error) {
	v = indirect(v)
	if !v.IsValid() {
		return entries, nil
	}
	if !formatter.KeyRepresentable(key) {
		return nil, fmt.Errorf("nyml: cannot represent key %q", key)
	}

	if v.Type().Implements(textMarshalerType) {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, fmt.Errorf("nyml: error calling MarshalText for type %s: %w", v.Type(), err)
		}
		return appendScalar(entries, key, string(text))
	}

	switch v.Kind() {
	case reflect.Struct, reflect.Map:
		children, err := m.members(v)
		if err != nil {
			return nil, err
		}
		return append(entries, &ast.Entry{Key: key, Children: children}), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return nil, fmt.Errorf("nyml: cannot marshal %s", v.Type())
		}
		for i := 0; i < v.Len(); i++ {
			var err error
			if entries, err = m.appendValue(entries, key, v.Index(i)); err != nil {
				return nil, err
			}
		}
		return entries, nil
	case reflect.String:
		return appendScalar(entries, key, v.String())
	case reflect.Bool:
		return appendScalar(entries, key, strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return appendScalar(entries, key, strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return appendScalar(entries, key, strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return appendScalar(entries, key, strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()))
	default:
		return nil, fmt.Errorf("nyml: unsupported type for marshaling: %s", v.Type())
	}
}

// appendScalar adds a leaf. The empty string is written as an empty
// container, the only spelling of an empty value that parses back.
// Values that would read back differently are rejected.
func appendScalar(entries []*ast.Entry, key, s string) ([]*ast.Entry, error) {
	if s == "" {
		return append(entries, &ast.Entry{Key: key, Children: []*ast.Entry{}}), nil
	}
	ok := formatter.BlockRepresentable(s)
	if !strings.Contains(s, "\n") {
		_, ok = formatter.ValueText(s)
	}
	if !ok {
		return nil, fmt.Errorf("nyml: cannot represent value %q of key %q", s, key)
	}
	return append(entries, &ast.Entry{Key: key, Value: s}), nil
}

// indirect follows pointers and interfaces, stopping at a pointer that
// implements encoding.TextMarshaler. It returns the zero Value for nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		if v.Kind() == reflect.Pointer && v.Type().Implements(textMarshalerType) {
			return v
		}
		v = v.Elem()
	}
	return v
}
