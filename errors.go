package nyml

import (
	"reflect"

	nymlerrors "github.com/nyml-lang/go-nyml/errors"
)

// ParseError is returned by the V1 parser for structurally invalid input.
type ParseError = nymlerrors.ParseError

// Error codes carried by ParseError.
const (
	CodeMissingColon          = nymlerrors.MissingColon
	CodeUnmatchedQuote        = nymlerrors.UnmatchedQuote
	CodeUnterminatedMultiline = nymlerrors.UnterminatedMultiline
)

// An UnmarshalerError represents an error from calling UnmarshalText on a
// decoding target.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "nyml: error calling UnmarshalText for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
