package nyml

import (
	"io"

	"github.com/nyml-lang/go-nyml/internal/formatter"
	"github.com/nyml-lang/go-nyml/internal/marshaler"
)

// Marshal returns the V1 NYML encoding of v, which must be a struct or a
// map with string keys (or a pointer to one).
//
// Nested structs and maps become containers, slices and arrays repeat
// their key once per element (decode them back with StrategyAll), and
// strings containing a newline become block strings. Map keys are written
// in sorted order. Nil pointers and interfaces are skipped, as are fields
// tagged omitempty that hold an empty value.
//
// Single-line strings that would not read back unchanged, such as values
// with surrounding spaces, are rejected with an error.
func Marshal(v any) ([]byte, error) {
	entries, err := marshaler.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []byte(formatter.WriteEntries(entries)), nil
}

// Encoder writes NYML documents to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the NYML encoding of v, followed by a newline, to the
// stream.
func (e *Encoder) Encode(v any) error {
	b, err := Marshal(v)
	if err != nil {
		return err
	}
	if len(b) > 0 {
		b = append(b, '\n')
	}
	_, err = e.w.Write(b)
	return err
}
