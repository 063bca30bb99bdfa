package mapper_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nyml-lang/go-nyml/internal/mapper"
)

type Base struct {
	ID string `nyml:"id"`
}

type sample struct {
	Base
	Name     string `nyml:"name"`
	Port     int    `nyml:"port,omitempty"`
	Verbose  bool
	Skipped  string `nyml:"-"`
	internal string
	Named    Base `nyml:"named"`
}

func TestCachedFields(t *testing.T) {
	fields := mapper.CachedFields(reflect.TypeFor[sample]())

	var names []string
	for _, f := range fields.List {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"id", "name", "port", "Verbose", "named"}, names)

	id, ok := fields.Lookup("id")
	require.True(t, ok)
	require.Equal(t, []int{0, 0}, id.Index)

	port, ok := fields.Lookup("port")
	require.True(t, ok)
	require.True(t, port.OmitEmpty)

	verbose, ok := fields.Lookup("verbose")
	require.True(t, ok, "lookup falls back to case-insensitive match")
	require.Equal(t, "Verbose", verbose.Name)

	_, ok = fields.Lookup("Skipped")
	require.False(t, ok)
	_, ok = fields.Lookup("internal")
	require.False(t, ok)

	require.Same(t, fields, mapper.CachedFields(reflect.TypeFor[sample]()))
}

func TestCachedFieldsExactMatchWins(t *testing.T) {
	type clash struct {
		Upper string `nyml:"Key"`
		Lower string `nyml:"key"`
	}
	fields := mapper.CachedFields(reflect.TypeFor[clash]())

	f, ok := fields.Lookup("key")
	require.True(t, ok)
	require.Equal(t, []int{1}, f.Index)

	f, ok = fields.Lookup("KEY")
	require.True(t, ok)
	require.Equal(t, []int{0}, f.Index)

	i, exact, ok := fields.Match("Key")
	require.True(t, ok)
	require.True(t, exact)
	require.Equal(t, 0, i)

	i, exact, ok = fields.Match("kEy")
	require.True(t, ok)
	require.False(t, exact)
	require.Equal(t, 0, i)

	_, _, ok = fields.Match("other")
	require.False(t, ok)
}
