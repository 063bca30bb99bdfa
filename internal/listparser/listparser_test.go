package listparser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nyml-lang/go-nyml/ast"
	"github.com/nyml-lang/go-nyml/internal/listparser"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []ast.Node
	}{
		{
			name:     "empty",
			input:    "",
			expected: []ast.Node{},
		},
		{
			name:     "single field",
			input:    "key: value",
			expected: []ast.Node{ast.Field("key", "value")},
		},
		{
			name:     "duplicates kept",
			input:    "item: one\nitem: two\nitem: three",
			expected: []ast.Node{ast.Field("item", "one"), ast.Field("item", "two"), ast.Field("item", "three")},
		},
		{
			name:     "plain text dropped at root",
			input:    "this is ignored\nkey: value",
			expected: []ast.Node{ast.Field("key", "value")},
		},
		{
			name:  "nested lists",
			input: "outer:\n  inner:\n    a\n    b",
			expected: []ast.Node{
				ast.List("outer", ast.List("inner", ast.Text("a"), ast.Text("b"))),
			},
		},
		{
			name:  "mixed list",
			input: "list:\n  plain\n  k: v\n  sub:\n    x\nafter: 1",
			expected: []ast.Node{
				ast.List("list", ast.Text("plain"), ast.Field("k", "v"), ast.List("sub", ast.Text("x"))),
				ast.Field("after", "1"),
			},
		},
		{
			name:     "empty list",
			input:    "a:\nb: c",
			expected: []ast.Node{ast.List("a"), ast.Field("b", "c")},
		},
		{
			name:     "quoted key",
			input:    `"a:b": c:d`,
			expected: []ast.Node{ast.Field("a:b", "c:d")},
		},
		{
			name:     "values keep their quotes",
			input:    `k: "quoted"`,
			expected: []ast.Node{ast.Field("k", `"quoted"`)},
		},
		{
			name:     "hash is not a comment",
			input:    "# title: x",
			expected: []ast.Node{ast.Field("# title", "x")},
		},
		{
			name:     "unmatched quote is plain text",
			input:    "l:\n  \"broken: x",
			expected: []ast.Node{ast.List("l", ast.Text(`"broken: x`))},
		},
		{
			name:  "block",
			input: "msg: |\n  one\n\n    two\n\n\nnext: x",
			expected: []ast.Node{
				ast.Field("msg", "one\n\n  two\n"),
				ast.Field("next", "x"),
			},
		},
		{
			name:     "block at end of input",
			input:    "msg: |\n  one",
			expected: []ast.Node{ast.Field("msg", "one\n")},
		},
		{
			name:     "empty block",
			input:    "msg: |\nnext: x",
			expected: []ast.Node{ast.Field("msg", ""), ast.Field("next", "x")},
		},
		{
			name:  "block inside list",
			input: "l:\n  msg: |\n    text\n  k: v",
			expected: []ast.Node{
				ast.List("l", ast.Field("msg", "text\n"), ast.Field("k", "v")),
			},
		},
		{
			name:  "sibling at same indent closes list",
			input: "a:\n  x\n  b:\n  y",
			expected: []ast.Node{
				ast.List("a", ast.Text("x"), ast.List("b"), ast.Text("y")),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, listparser.Parse(tt.input))
		})
	}
}

func TestParseDeepNesting(t *testing.T) {
	// Appending to an outer list after a deep one was closed must not
	// disturb nodes already attached to it.
	input := "a:\n  b:\n    c:\n      d: 1\n    e: 2\n  f: 3\ng: 4"
	expected := []ast.Node{
		ast.List("a",
			ast.List("b",
				ast.List("c", ast.Field("d", "1")),
				ast.Field("e", "2"),
			),
			ast.Field("f", "3"),
		),
		ast.Field("g", "4"),
	}
	require.Equal(t, expected, listparser.Parse(input))
}
