package parser

import (
	"fmt"

	"edn/internal/ast"
	"edn/internal/errors"
)

// ParseError is the single failure a parse reports. Position points at the
// offending text; Length is how many characters it covers.
type ParseError struct {
	Code     string
	Message  string
	Position ast.Position
	Length   int
	Notes    []string
	Help     string
}

func (e *ParseError) Error() string {
	if e.Position.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Position.Filename, e.Position.Line, e.Position.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

// Category reports whether the error is lexical, structural or numeric.
func (e *ParseError) Category() errors.Category {
	return errors.CategoryOf(e.Code)
}

// Diagnostic converts the error for rendering with errors.ErrorReporter.
func (e *ParseError) Diagnostic() errors.Diagnostic {
	b := errors.NewSyntaxError(e.Code, e.Message, e.Position).WithLength(e.Length)
	for _, note := range e.Notes {
		b.WithNote(note)
	}
	if e.Help != "" {
		b.WithHelp(e.Help)
	}
	return b.Build()
}

func newError(code, message string, pos ast.Position, length int) *ParseError {
	return &ParseError{
		Code:     code,
		Message:  message,
		Position: pos,
		Length:   length,
	}
}

func newErrorWithHelp(code, message string, pos ast.Position, length int, help string) *ParseError {
	err := newError(code, message, pos, length)
	err.Help = help
	return err
}
