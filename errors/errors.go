// Package errors defines the error values reported by the NYML parsers.
package errors

import "fmt"

// Code is a machine-readable classification of a ParseError.
type Code string

const (
	// MissingColon reports a line that has no key/value separator.
	MissingColon Code = "MISSING_COLON"
	// UnmatchedQuote reports a quoted key without its closing quote.
	UnmatchedQuote Code = "UNMATCHED_QUOTE"
	// UnterminatedMultiline reports a block string left open at end of input.
	UnterminatedMultiline Code = "UNTERMINATED_MULTILINE"
)

// ParseError represents the error that stopped a parse.
// Line is 1-based. Column is 1-based and zero when unknown.
type ParseError struct {
	Code    Code
	Message string
	Line    int
	Column  int
}

// New returns a ParseError for the given line.
func New(code Code, line, column int, message string) *ParseError {
	return &ParseError{Code: code, Message: message, Line: line, Column: column}
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("nyml: line %d, column %d: %s (%s)", e.Line, e.Column, e.Message, e.Code)
	}
	return fmt.Sprintf("nyml: line %d: %s (%s)", e.Line, e.Message, e.Code)
}

// Is reports whether target is a ParseError with the same code.
// A target without a code matches any ParseError.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}
