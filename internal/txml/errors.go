package txml

import (
	"fmt"
	"strings"
)

// ErrorKind classifies compilation errors.
type ErrorKind int

const (
	// LexicalError means no token rule matched the remaining input.
	LexicalError ErrorKind = iota
	// SyntaxError is a grammar violation: mismatched close tag, malformed
	// expression, unexpected token.
	SyntaxError
	// SemanticError is a directive or special-tag rule violation raised by a
	// transform pass.
	SemanticError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case SemanticError:
		return "semantic error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// IsSyntax reports whether k is either flavor of syntax error: a structural
// grammar violation or a directive rule violation.
func (k ErrorKind) IsSyntax() bool {
	return k == SyntaxError || k == SemanticError
}

// Error represents a compilation error with source location and optional hint.
type Error struct {
	Kind    ErrorKind
	Pos     Position
	Message string
	Hint    string // optional suggestion for fixing the error
	Text    string // offending source text, when known
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Pos.String())
	sb.WriteString(": ")
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Hint != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Hint)
		sb.WriteString(")")
	}
	return sb.String()
}

// NewErrorf creates a new Error of the given kind with a formatted message.
func NewErrorf(kind ErrorKind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// semanticErrorf reports a rule violation found by a transform pass at node n.
func semanticErrorf(n Node, format string, args ...any) *Error {
	return NewErrorf(SemanticError, n.Pos(), format, args...)
}

// ErrorList collects the errors recorded by the lexer and parser.
type ErrorList struct {
	errors []*Error
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.errors = append(el.errors, err)
}

// HasErrors returns true if there are any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.errors) > 0
}

// Errors returns a copy of the error slice.
func (el *ErrorList) Errors() []*Error {
	result := make([]*Error, len(el.errors))
	copy(result, el.errors)
	return result
}

// Error implements the error interface, returning all errors joined by newlines.
func (el *ErrorList) Error() string {
	parts := make([]string, len(el.errors))
	for i, err := range el.errors {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "\n")
}

// Err returns nil if there are no errors, otherwise the first error.
// Compilation is fail-fast, so only the first error is meaningful.
func (el *ErrorList) Err() error {
	if len(el.errors) == 0 {
		return nil
	}
	return el.errors[0]
}
