/*
Package nyml parses and writes NYML, a small indentation-based
configuration format in which every value is a string.

A NYML document is a list of "key: value" lines. A key with nothing after
its colon opens a nested container, and a value of "|" starts a block
string made of the more-indented lines that follow:

	name: my-service
	"listen:addr": 0.0.0.0:8080
	database:
	  host: localhost
	  port: 5432
	notes: |
	  first line
	  second line

The package supports two dialects.

1. V1 (Parse, ParseEntries)

V1 allows "#" comments and quoted keys, and strips one pair of double
quotes around a value. ParseEntries keeps every occurrence of every key in
source order together with its line, indentation and raw text. Parse (or
ToMapping on a Document) collapses duplicate keys into a Mapping using one
of three strategies: keep the last occurrence, keep the first, or collect
all of them into a list.

	doc, err := nyml.ParseEntries(data)
	if err != nil {
		var perr *nyml.ParseError
		if errors.As(err, &perr) {
			// perr.Code, perr.Line
		}
	}
	hosts := nyml.GetAll(doc, "host")

Unmarshal and Marshal map V1 documents onto Go structs and maps, using
`nyml:"name,omitempty"` field tags:

	type Config struct {
		Name string `nyml:"name"`
		Port int    `nyml:"port"`
	}

	var cfg Config
	if err := nyml.Unmarshal(data, &cfg); err != nil {
		// handle error
	}

2. V2 (ParseV2, SerializeV2)

V2 is permissive and never fails. A document becomes a list of nodes, each
a plain string, a {key: value} field or a {key: [...]} nested list.
SerializeV2 writes such a list back, so that parsing the output returns the
same nodes.

Conversion helpers turn JSON or YAML (FromJSON) and the JSON form of an
entries Document (FromEntriesJSON) into V1 text.
*/
package nyml
