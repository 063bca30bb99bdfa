// Package formatter renders NYML values back to text.
package formatter

import (
	"strings"
	"unicode"

	"github.com/nyml-lang/go-nyml/ast"
)

const defaultIndent = 2

// SerializeList renders a V2 list with every line prefixed by indent
// spaces. Nested lists are indented two further spaces per level. Lines
// are joined with "\n" and the output has no trailing newline.
//
// A field with an empty value is written as an empty block ("key: |"),
// the only V2 spelling that parses back to an empty value.
func SerializeList(nodes []ast.Node, indent int) string {
	prefix := strings.Repeat(" ", indent)
	lines := make([]string, 0, len(nodes))

	for _, n := range nodes {
		switch n.Kind {
		case ast.TextNode:
			lines = append(lines, prefix+n.Value)
		case ast.ListNode:
			lines = append(lines, prefix+listKey(n.Key)+":")
			lines = append(lines, SerializeList(n.Items, indent+defaultIndent))
		default:
			key := listKey(n.Key)
			if n.Value == "" {
				lines = append(lines, prefix+key+": |")
				continue
			}
			if !n.IsBlock() {
				lines = append(lines, prefix+key+": "+n.Value)
				continue
			}
			lines = append(lines, prefix+key+": |")
			for _, vl := range strings.Split(strings.TrimSuffix(n.Value, "\n"), "\n") {
				lines = append(lines, prefix+"  "+vl)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// listKey quotes a V2 key that would otherwise be cut at its colon or
// lose its surrounding spaces.
func listKey(key string) string {
	if strings.Contains(key, ":") || strings.TrimSpace(key) != key {
		return `"` + key + `"`
	}
	return key
}

// WriteEntries renders V1 entries, one level of nesting per two spaces.
// Lines are joined with "\n" and the output has no trailing newline.
func WriteEntries(entries []*ast.Entry) string {
	var lines []string
	for _, e := range entries {
		lines = writeEntry(lines, e, 0)
	}
	return strings.Join(lines, "\n")
}

func writeEntry(lines []string, e *ast.Entry, depth int) []string {
	ind := strings.Repeat(" ", depth*defaultIndent)
	key := e.Key
	// A key holding a quote was read unquoted and must be written that way.
	if !strings.Contains(key, `"`) && (e.QuotedKey || NeedsQuotingKey(key)) {
		key = `"` + key + `"`
	}

	switch {
	case e.IsContainer():
		lines = append(lines, ind+key+":")
		for _, child := range e.Children {
			lines = writeEntry(lines, child, depth+1)
		}
	case e.Value == "":
		// A block of blank lines. The indented line keeps it from reading
		// as an empty block at the end of the output.
		lines = append(lines, ind+key+": |", ind+"  ", "")
	case e.Value == "\n":
		// A block with no lines at all.
		lines = append(lines, ind+key+": |")
	case strings.Contains(e.Value, "\n"):
		lines = append(lines, ind+key+": |")
		for _, vl := range strings.Split(e.Value, "\n") {
			lines = append(lines, ind+"  "+vl)
		}
		lines = append(lines, "")
	default:
		text, ok := ValueText(e.Value)
		if !ok {
			text = e.Value
		}
		lines = append(lines, ind+key+": "+text)
	}
	return lines
}

// Representable reports whether a single-line value reads back unchanged
// when written as is after "key: ".
func Representable(s string) bool {
	if s == "" || s == "|" || strings.TrimSpace(s) != s || strings.ContainsAny(s, "\r\n") {
		return false
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' && strings.Count(s, `"`) == 2 {
		return false
	}
	return true
}

// ValueText returns the text to write after "key: " for a single-line
// value. Values that are not Representable are wrapped in double quotes
// when that reads back unchanged. ok is false when no spelling does.
func ValueText(s string) (text string, ok bool) {
	if Representable(s) {
		return s, true
	}
	if s == "" || s == "|" || strings.ContainsAny(s, "\"\r\n") {
		return "", false
	}
	return `"` + s + `"`, true
}

// BlockRepresentable reports whether a multi-line value reads back
// unchanged when written as a block string. The value must end in exactly
// one newline, hold at least one non-blank line, have a line that is not
// indented and no line made only of whitespace.
func BlockRepresentable(s string) bool {
	if !strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\n\n") || strings.Contains(s, "\r") {
		return false
	}
	minIndent := -1
	for _, l := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		if l == "" {
			continue
		}
		if strings.TrimSpace(l) == "" {
			return false
		}
		if n := len(l) - len(strings.TrimLeft(l, " ")); minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}
	return minIndent == 0
}

// KeyRepresentable reports whether a key can be written so that it reads
// back unchanged.
func KeyRepresentable(key string) bool {
	return !strings.ContainsAny(key, "\"\r\n")
}

// NeedsQuotingKey reports whether a V1 key must be wrapped in double
// quotes to survive a parse. Keys that already carry their quotes are left
// alone.
func NeedsQuotingKey(key string) bool {
	if len(key) >= 2 && strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`) {
		return false
	}
	if key == "" {
		return true
	}
	if strings.ContainsAny(key, " :@") || unicode.IsDigit(rune(key[0])) {
		return true
	}
	return !isPlainWord(key)
}

// isPlainWord reports whether s is made of letters and digits once '_',
// '-' and '.' are removed.
func isPlainWord(s string) bool {
	n := 0
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == '.':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			n++
		default:
			return false
		}
	}
	return n > 0
}
