package nyml

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"

	"github.com/nyml-lang/go-nyml/ast"
	"github.com/nyml-lang/go-nyml/internal/mapper"
	"github.com/nyml-lang/go-nyml/internal/parser"
)

// Unmarshal parses V1 NYML data and stores the result in the value pointed
// to by v.
//
// The document is reduced to a Mapping with the strategy selected by
// WithStrategy (last by default) and then mapped onto v. Every NYML value
// is text, so numbers and booleans are converted with strconv. Structs are
// matched by `nyml:"name"` tags or field names, case-insensitively as a
// fallback. Slices accept the lists built by StrategyAll as well as single
// values. An empty container decodes as the zero value of a scalar target.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("nyml: Unmarshal(non-pointer %T or nil)", v)
	}

	doc, err := parser.New(string(data), parser.Config{Mode: parser.EntriesMode, Strict: o.strict}).Parse()
	if err != nil {
		return err
	}

	ds := &decodeState{depth: o.maxDepth}
	return ds.mapValue(mapper.ToMapping(doc.Entries, o.strategy), rv.Elem())
}

// Decoder reads and decodes NYML documents from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the whole input and unmarshals it into v.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("nyml: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	return Unmarshal(data, v, d.opts...)
}

type decodeState struct {
	depth int
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

func (ds *decodeState) mapValue(val any, rv reflect.Value) error {
	ds.depth--
	if ds.depth <= 0 {
		return fmt.Errorf("nyml: reached max recursion depth")
	}
	defer func() { ds.depth++ }()

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if s, ok := val.(string); ok && rv.CanAddr() && reflect.PointerTo(rv.Type()).Implements(textUnmarshalerType) {
		u := rv.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return &UnmarshalerError{Type: rv.Addr().Type(), Err: err}
		}
		return nil
	}

	if rv.Kind() == reflect.Interface {
		if rv.NumMethod() != 0 {
			return fmt.Errorf("nyml: cannot unmarshal into non-empty interface %s", rv.Type())
		}
		rv.Set(reflect.ValueOf(plain(val)))
		return nil
	}
	if !rv.CanSet() {
		return fmt.Errorf("nyml: cannot set value of type %s", rv.Type())
	}

	switch node := val.(type) {
	case string:
		return ds.mapString(node, rv)
	case ast.Mapping:
		return ds.mapObject(node, rv)
	case []any:
		return ds.mapList(node, rv)
	default:
		return fmt.Errorf("nyml: unexpected value of type %T", val)
	}
}

func (ds *decodeState) mapString(s string, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("nyml: cannot unmarshal %q into Go value of type %s", s, rv.Type())
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("nyml: cannot unmarshal %q into Go value of type %s", s, rv.Type())
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("nyml: cannot unmarshal %q into Go value of type %s", s, rv.Type())
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("nyml: cannot unmarshal %q into Go value of type %s", s, rv.Type())
		}
		rv.SetFloat(f)
	case reflect.Slice:
		return ds.mapList([]any{s}, rv)
	default:
		return fmt.Errorf("nyml: cannot unmarshal string into Go value of type %s", rv.Type())
	}
	return nil
}

func (ds *decodeState) mapObject(m ast.Mapping, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Struct:
		fields := mapper.CachedFields(rv.Type())
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		// Exact names are assigned first. A case-insensitive match only
		// fills a field nothing else has set, in key order.
		set := make([]bool, len(fields.List))
		for _, exactPass := range []bool{true, false} {
			for _, key := range keys {
				i, exact, ok := fields.Match(key)
				if !ok || exact != exactPass || set[i] {
					continue
				}
				set[i] = true
				if err := ds.mapValue(m[key], rv.FieldByIndex(fields.List[i].Index)); err != nil {
					return err
				}
			}
		}
		return nil
	case reflect.Map:
		mapType := rv.Type()
		if mapType.Key().Kind() != reflect.String {
			return fmt.Errorf("nyml: cannot unmarshal object into map with non-string key type %s", mapType.Key())
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMapWithSize(mapType, len(m)))
		}
		for key, val := range m {
			elem := reflect.New(mapType.Elem()).Elem()
			if err := ds.mapValue(val, elem); err != nil {
				return err
			}
			rv.SetMapIndex(reflect.ValueOf(key).Convert(mapType.Key()), elem)
		}
		return nil
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Float32, reflect.Float64:
		// "key:" with nothing below it is how an empty value is written.
		if len(m) == 0 {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
	}
	return fmt.Errorf("nyml: cannot unmarshal object into Go value of type %s", rv.Type())
}

func (ds *decodeState) mapList(items []any, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice:
		s := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := ds.mapValue(item, s.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(s)
		return nil
	case reflect.Array:
		if rv.Len() != len(items) {
			return fmt.Errorf("nyml: cannot unmarshal list of length %d into Go array of length %d", len(items), rv.Len())
		}
		for i, item := range items {
			if err := ds.mapValue(item, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	if len(items) == 1 {
		return ds.mapValue(items[0], rv)
	}
	return fmt.Errorf("nyml: cannot unmarshal list of %d values into Go value of type %s", len(items), rv.Type())
}

// plain converts Mappings to map[string]any for storage in interfaces.
func plain(val any) any {
	switch v := val.(type) {
	case ast.Mapping:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = plain(e)
		}
		return m
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = plain(e)
		}
		return out
	default:
		return val
	}
}
