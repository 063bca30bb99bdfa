// Package listparser implements the V2 NYML parser.
//
// V2 documents parse into lists. Every key/value line becomes a single-key
// object, a key with no value opens a nested list, and a line without a
// key is a plain string item. Nothing is rejected: text that does not form
// a key/value pair is kept as a plain string, or dropped at the root.
package listparser

import (
	"strings"
	"unicode"

	"github.com/nyml-lang/go-nyml/ast"
	"github.com/nyml-lang/go-nyml/internal/scan"
)

// level is an open list on the container stack. Only lines indented
// deeper than base belong to it.
type level struct {
	items *[]ast.Node
	base  int
}

// Parse parses V2 text. Empty input yields an empty, non-nil list.
func Parse(text string) []ast.Node {
	lines := scan.Lines(text)
	result := []ast.Node{}

	// Each level points at the Items of a node that is the last element of
	// the level below it. Only the top level is appended to, so pointers
	// held by the stack are never invalidated by a reallocation.
	stack := []level{{items: &result, base: -1}}

	for i := 0; i < len(lines); {
		l := lines[i]
		if l.Blank {
			i++
			continue
		}

		for len(stack) > 1 && l.Indent <= stack[len(stack)-1].base {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].items

		stripped := strings.TrimSpace(l.Raw)
		key, value, ok := splitLine(stripped)
		if !ok {
			if len(stack) > 1 {
				*parent = append(*parent, ast.Text(stripped))
			}
			i++
			continue
		}

		switch value {
		case "|":
			var raw []string
			raw, i = scan.CollectBlock(lines, i, l.Indent)
			*parent = append(*parent, ast.Field(key, scan.Block(raw)))
		case "":
			*parent = append(*parent, ast.List(key))
			last := &(*parent)[len(*parent)-1]
			stack = append(stack, level{items: &last.Items, base: l.Indent})
			i++
		default:
			*parent = append(*parent, ast.Field(key, value))
			i++
		}
	}
	return result
}

// splitLine splits a stripped line into key and value. ok is false when
// the line is a plain string.
func splitLine(s string) (key, value string, ok bool) {
	if s == "" {
		return "", "", false
	}
	if strings.HasPrefix(s, `"`) {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return "", "", false
		}
		end++
		rest := strings.TrimLeftFunc(s[end+1:], unicode.IsSpace)
		if !strings.HasPrefix(rest, ":") {
			return "", "", false
		}
		return s[1:end], strings.TrimSpace(rest[1:]), true
	}

	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), true
}
