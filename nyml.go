package nyml

import (
	"encoding/json"
	"fmt"

	"github.com/nyml-lang/go-nyml/ast"
	"github.com/nyml-lang/go-nyml/internal/convert"
	"github.com/nyml-lang/go-nyml/internal/formatter"
	"github.com/nyml-lang/go-nyml/internal/listparser"
	"github.com/nyml-lang/go-nyml/internal/mapper"
	"github.com/nyml-lang/go-nyml/internal/parser"
)

// Strategy selects which occurrence of a duplicated key survives when
// entries are reduced to a Mapping.
type Strategy = mapper.Strategy

// Duplicate key strategies.
const (
	StrategyLast  = mapper.Last
	StrategyFirst = mapper.First
	StrategyAll   = mapper.All
)

// ParseStrategy converts "last", "first" or "all" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	return mapper.ParseStrategy(s)
}

// Parse parses V1 NYML into a Mapping. Duplicate keys are resolved by
// keeping the last occurrence.
//
// A block string that is still open at the end of data without having
// collected any content is reported as UNTERMINATED_MULTILINE.
func Parse(data []byte, opts ...Option) (ast.Mapping, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := parser.New(string(data), parser.Config{Mode: parser.MappingMode, Strict: o.strict}).Parse()
	if err != nil {
		return nil, err
	}
	return mapper.ToMapping(doc.Entries, StrategyLast), nil
}

// ParseEntries parses V1 NYML into an order-preserving Document. Duplicate
// keys are kept, and a block string open at the end of data is closed
// normally.
func ParseEntries(data []byte, opts ...Option) (*ast.Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parser.New(string(data), parser.Config{Mode: parser.EntriesMode, Strict: o.strict}).Parse()
}

// ToMapping reduces a Document with the given duplicate strategy.
func ToMapping(doc *ast.Document, strategy Strategy) ast.Mapping {
	if doc == nil {
		return ast.Mapping{}
	}
	return mapper.ToMapping(doc.Entries, strategy)
}

// GetAll returns the values of every top-level entry named key.
func GetAll(doc *ast.Document, key string) []string {
	if doc == nil {
		return nil
	}
	return mapper.GetAll(doc.Entries, key)
}

// GetFirst returns the value of the first top-level entry named key.
func GetFirst(doc *ast.Document, key string) (string, bool) {
	if doc == nil {
		return "", false
	}
	return mapper.GetFirst(doc.Entries, key)
}

// GetLast returns the value of the last top-level entry named key.
func GetLast(doc *ast.Document, key string) (string, bool) {
	if doc == nil {
		return "", false
	}
	return mapper.GetLast(doc.Entries, key)
}

// ParseV2 parses V2 NYML into a list of nodes. It never fails: lines that
// are not key/value pairs become plain string items, and are dropped at
// the top level.
func ParseV2(data []byte) []ast.Node {
	return listparser.Parse(string(data))
}

// SerializeV2 renders nodes as V2 NYML with every line prefixed by indent
// spaces. ParseV2 of the output yields nodes again for documents produced
// by ParseV2.
func SerializeV2(nodes []ast.Node, indent int) string {
	return formatter.SerializeList(nodes, indent)
}

// MarshalV2 returns the V2 encoding of nodes.
func MarshalV2(nodes []ast.Node) []byte {
	return []byte(formatter.SerializeList(nodes, 0))
}

// MarshalEntries renders a Document as V1 NYML, keeping entry order and
// duplicate keys.
func MarshalEntries(doc *ast.Document) []byte {
	if doc == nil {
		return nil
	}
	return []byte(formatter.WriteEntries(doc.Entries))
}

// FromJSON converts a JSON or YAML document to V1 NYML text.
func FromJSON(data []byte) ([]byte, error) {
	out, err := convert.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// FromEntriesJSON converts the JSON form of an entries document, as
// produced by encoding a Document, back to V1 NYML text.
func FromEntriesJSON(data []byte) ([]byte, error) {
	var doc ast.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("nyml: decoding entries document: %w", err)
	}
	return MarshalEntries(&doc), nil
}
