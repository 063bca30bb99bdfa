// Package scan splits NYML source into lines and implements the block
// string rules shared by both parser generations.
package scan

import "strings"

// Line is a single source line.
type Line struct {
	Num     int    // 1-based line number
	Raw     string // line as written, without its terminator
	Indent  int    // count of leading spaces
	Content string // Raw with the leading spaces removed
	Blank   bool   // Raw holds only whitespace
}

// Lines splits text on "\n", "\r\n" and "\r". A final terminator does not
// produce a trailing empty line. Tabs are ordinary characters and never
// count towards the indent.
func Lines(text string) []Line {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	parts := strings.Split(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	lines := make([]Line, len(parts))
	for i, raw := range parts {
		indent := Indent(raw)
		lines[i] = Line{
			Num:     i + 1,
			Raw:     raw,
			Indent:  indent,
			Content: raw[indent:],
			Blank:   IsBlank(raw),
		}
	}
	return lines
}

// Indent returns the number of leading spaces in s.
func Indent(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Block joins the raw lines of a block string.
//
// Every non-blank line loses the smallest indent found among the non-blank
// lines, blank lines become empty, a run of trailing empty lines is reduced
// to one, and the result ends in exactly one newline. No lines at all
// yield the empty string.
func Block(raw []string) string {
	if len(raw) == 0 {
		return ""
	}

	minIndent := -1
	for _, r := range raw {
		if IsBlank(r) {
			continue
		}
		if n := Indent(r); minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}

	pieces := make([]string, len(raw))
	for i, r := range raw {
		if IsBlank(r) {
			pieces[i] = ""
			continue
		}
		pieces[i] = r[minIndent:]
	}

	for len(pieces) >= 2 && pieces[len(pieces)-1] == "" && pieces[len(pieces)-2] == "" {
		pieces = pieces[:len(pieces)-1]
	}

	content := strings.Join(pieces, "\n")
	if pieces[len(pieces)-1] != "" {
		content += "\n"
	}
	return content
}

// CollectBlock gathers the lines of a block string opened on lines[start]
// whose key sits at column base. Blank lines always belong to the block;
// the first non-blank line indented by base or less ends it. It returns
// the raw block lines and the index of the first line after the block.
func CollectBlock(lines []Line, start, base int) ([]string, int) {
	var raw []string
	i := start + 1
	for ; i < len(lines); i++ {
		l := lines[i]
		if l.Blank {
			raw = append(raw, "")
			continue
		}
		if l.Indent <= base {
			break
		}
		raw = append(raw, l.Raw)
	}
	return raw, i
}
