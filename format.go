package nyml

import (
	"github.com/nyml-lang/go-nyml/internal/formatter"
	"github.com/nyml-lang/go-nyml/internal/parser"
)

// Format reformats V1 NYML source without changing what it parses to.
// Entry order and duplicate keys are kept while indentation is normalised
// to two spaces per level, keys are quoted only where needed and comments
// are removed. Value quotes are dropped unless the value has surrounding
// whitespace. Block strings are followed by an empty line.
func Format(data []byte, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := parser.New(string(data), parser.Config{Mode: parser.EntriesMode, Strict: o.strict}).Parse()
	if err != nil {
		return nil, err
	}
	out := formatter.WriteEntries(doc.Entries)
	if out == "" {
		return nil, nil
	}
	return []byte(out + "\n"), nil
}

// FormatV2 reformats V2 NYML source. It never fails; lines that ParseV2
// drops are not written back.
func FormatV2(data []byte) []byte {
	out := formatter.SerializeList(ParseV2(data), 0)
	if out == "" {
		return nil
	}
	return []byte(out + "\n")
}
