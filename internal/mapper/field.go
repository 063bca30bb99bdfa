package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// Field describes an exported struct field reachable by a NYML key.
type Field struct {
	Name      string
	Index     []int
	OmitEmpty bool
}

// fieldCache caches the fields of struct types.
var fieldCache sync.Map // map[reflect.Type]*Fields

// Fields holds the mappable fields of a struct type in declaration order.
type Fields struct {
	List   []Field
	byName map[string]int
	byFold map[string]int
}

// Lookup finds the field for key. An exact match on the tag or field name
// wins over a case-insensitive one.
func (fs *Fields) Lookup(key string) (Field, bool) {
	i, _, ok := fs.Match(key)
	if !ok {
		return Field{}, false
	}
	return fs.List[i], true
}

// Match returns the position in List of the field for key and whether the
// tag or field name matched exactly.
func (fs *Fields) Match(key string) (i int, exact, ok bool) {
	if i, ok := fs.byName[key]; ok {
		return i, true, true
	}
	if i, ok := fs.byFold[strings.ToLower(key)]; ok {
		return i, false, true
	}
	return 0, false, false
}

// CachedFields returns the fields of struct type t. Fields of embedded
// structs are promoted, unexported fields and fields tagged `nyml:"-"` are
// skipped.
func CachedFields(t reflect.Type) *Fields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*Fields)
	}

	fs := &Fields{byName: map[string]int{}, byFold: map[string]int{}}
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			index := append(append([]int(nil), idx...), i)
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get("nyml") == "" {
				walk(sf.Type, index)
				continue
			}
			if !sf.IsExported() {
				continue
			}

			tag := sf.Tag.Get("nyml")
			if tag == "-" {
				continue
			}
			name, opts, _ := strings.Cut(tag, ",")
			if name == "" {
				name = sf.Name
			}
			f := Field{Name: name, Index: index}
			for opts != "" {
				var opt string
				opt, opts, _ = strings.Cut(opts, ",")
				if strings.TrimSpace(opt) == "omitempty" {
					f.OmitEmpty = true
				}
			}

			if _, dup := fs.byName[name]; dup {
				continue
			}
			fs.byName[name] = len(fs.List)
			if _, ok := fs.byFold[strings.ToLower(name)]; !ok {
				fs.byFold[strings.ToLower(name)] = len(fs.List)
			}
			fs.List = append(fs.List, f)
		}
	}
	walk(t, nil)

	actual, _ := fieldCache.LoadOrStore(t, fs)
	return actual.(*Fields)
}
