// Package parser implements the V1 NYML parser.
//
// The parser is a line-driven state machine. Nesting follows indentation:
// a key with an empty value opens a container, and every following line
// indented deeper than that key belongs to it. A value of "|" opens a
// block string that collects the more-indented lines below it.
package parser

import (
	"strings"
	"unicode"

	"github.com/nyml-lang/go-nyml/ast"
	nymlerrors "github.com/nyml-lang/go-nyml/errors"
	"github.com/nyml-lang/go-nyml/internal/scan"
)

// Mode selects how the end of input is handled while a block string is
// still open.
type Mode int

const (
	// EntriesMode closes an open block at end of input.
	EntriesMode Mode = iota
	// MappingMode reports UNTERMINATED_MULTILINE for a block that is open
	// at end of input and has not collected any content.
	MappingMode
)

// Config holds the settings of a Parser.
type Config struct {
	Mode Mode
	// Strict is accepted for compatibility. Indentation steps are not
	// validated in either setting.
	Strict bool
}

type state int

const (
	scanning state = iota
	collectingMultiline
)

// frame is a container on the indent stack. Lines indented less than
// indent no longer belong to it.
type frame struct {
	entries *[]*ast.Entry
	indent  int
}

// block is a block string being collected.
type block struct {
	entry  *ast.Entry
	indent int
	line   int
	raw    []string
}

// Parser holds the state of a single V1 parse.
type Parser struct {
	lines []scan.Line
	cfg   Config

	root  []*ast.Entry
	stack []frame
	state state
	block *block
}

// New creates a parser for text.
func New(text string, cfg Config) *Parser {
	p := &Parser{
		lines: scan.Lines(text),
		cfg:   cfg,
		root:  []*ast.Entry{},
	}
	p.stack = []frame{{entries: &p.root, indent: 0}}
	return p
}

// Parse runs the parser to completion. It stops at the first error.
func (p *Parser) Parse() (*ast.Document, error) {
	for _, l := range p.lines {
		if p.state == collectingMultiline {
			if l.Blank {
				p.block.raw = append(p.block.raw, "")
				continue
			}
			if l.Indent > p.block.indent {
				p.block.raw = append(p.block.raw, l.Raw)
				continue
			}
			// The dedented line closes the block and is then scanned as usual.
			p.closeBlock()
		}
		if err := p.scanLine(l); err != nil {
			return nil, err
		}
	}

	if p.state == collectingMultiline {
		if p.cfg.Mode == MappingMode && !hasContent(p.block.raw) {
			return nil, nymlerrors.New(nymlerrors.UnterminatedMultiline, p.block.line, 0,
				"unterminated multiline string")
		}
		p.closeBlock()
	}

	return &ast.Document{Entries: p.root}, nil
}

func (p *Parser) scanLine(l scan.Line) error {
	if l.Blank || strings.HasPrefix(l.Content, "#") {
		return nil
	}

	for len(p.stack) > 1 && l.Indent < p.stack[len(p.stack)-1].indent {
		p.stack = p.stack[:len(p.stack)-1]
	}
	parent := p.stack[len(p.stack)-1].entries

	key, value, quoted, err := splitLine(l)
	if err != nil {
		return err
	}

	entry := &ast.Entry{
		Key:       key,
		QuotedKey: quoted,
		Line:      l.Num,
		Indent:    l.Indent,
		Raw:       l.Raw,
	}
	*parent = append(*parent, entry)

	switch value {
	case "|":
		p.state = collectingMultiline
		p.block = &block{entry: entry, indent: l.Indent, line: l.Num}
	case "":
		entry.Children = []*ast.Entry{}
		p.stack = append(p.stack, frame{entries: &entry.Children, indent: l.Indent + 1})
	default:
		entry.Value = value
	}
	return nil
}

func (p *Parser) closeBlock() {
	if len(p.block.raw) == 0 {
		p.block.entry.Value = "\n"
	} else {
		p.block.entry.Value = scan.Block(p.block.raw)
	}
	p.block = nil
	p.state = scanning
}

// splitLine extracts the key and the value of a non-blank, non-comment
// line.
func splitLine(l scan.Line) (key, value string, quoted bool, err error) {
	s := l.Content
	if strings.HasPrefix(s, `"`) {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return "", "", false, nymlerrors.New(nymlerrors.UnmatchedQuote, l.Num, l.Indent+1,
				"unmatched quote in key")
		}
		end++
		rest := strings.TrimLeftFunc(s[end+1:], unicode.IsSpace)
		if !strings.HasPrefix(rest, ":") {
			return "", "", false, nymlerrors.New(nymlerrors.MissingColon, l.Num, l.Indent+end+2,
				"missing colon after quoted key")
		}
		return s[1:end], unquote(strings.TrimSpace(rest[1:])), true, nil
	}

	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return "", "", false, nymlerrors.New(nymlerrors.MissingColon, l.Num, 0,
			"missing colon in key-value pair")
	}
	return strings.TrimSpace(s[:idx]), unquote(strings.TrimSpace(s[idx+1:])), false, nil
}

// unquote removes one pair of surrounding double quotes from a value that
// contains no other double quote.
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' && strings.Count(v, `"`) == 2 {
		return v[1 : len(v)-1]
	}
	return v
}

func hasContent(raw []string) bool {
	for _, r := range raw {
		if !scan.IsBlank(r) {
			return true
		}
	}
	return false
}
