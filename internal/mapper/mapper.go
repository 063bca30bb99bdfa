// Package mapper reduces V1 entries to mappings and maps them onto Go
// values.
package mapper

import (
	"fmt"

	"github.com/nyml-lang/go-nyml/ast"
)

// Strategy selects which occurrence of a duplicated key survives in a
// mapping.
type Strategy string

const (
	// Last keeps the value of the final occurrence.
	Last Strategy = "last"
	// First keeps the value of the first occurrence.
	First Strategy = "first"
	// All keeps every value, in document order, as a []any.
	All Strategy = "all"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case Last, First, All:
		return st, nil
	default:
		return "", fmt.Errorf("nyml: unknown duplicate strategy %q (want last, first or all)", s)
	}
}

// ToMapping reduces entries level by level with the given strategy.
// Containers become nested Mappings reduced with the same strategy. An
// unrecognised strategy behaves like Last.
func ToMapping(entries []*ast.Entry, strategy Strategy) ast.Mapping {
	result := make(ast.Mapping, len(entries))
	for _, e := range entries {
		val := valueOf(e, strategy)
		switch strategy {
		case All:
			prev, _ := result[e.Key].([]any)
			result[e.Key] = append(prev, val)
		case First:
			if _, seen := result[e.Key]; !seen {
				result[e.Key] = val
			}
		default:
			result[e.Key] = val
		}
	}
	return result
}

func valueOf(e *ast.Entry, strategy Strategy) any {
	if e.IsContainer() {
		return ToMapping(e.Children, strategy)
	}
	return e.Value
}

// GetAll returns the values of the top-level entries named key, in
// document order. Containers contribute an empty string.
func GetAll(entries []*ast.Entry, key string) []string {
	var out []string
	for _, e := range entries {
		if e.Key == key {
			out = append(out, e.Value)
		}
	}
	return out
}

// GetFirst returns the value of the first top-level entry named key.
func GetFirst(entries []*ast.Entry, key string) (string, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// GetLast returns the value of the last top-level entry named key.
func GetLast(entries []*ast.Entry, key string) (string, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Key == key {
			return entries[i].Value, true
		}
	}
	return "", false
}
