package errors

import (
	"edn/internal/ast"
)

// SyntaxErrorBuilder provides a fluent interface for creating reader diagnostics
type SyntaxErrorBuilder struct {
	err Diagnostic
}

// NewSyntaxError creates a new reader error builder
func NewSyntaxError(code, message string, pos ast.Position) *SyntaxErrorBuilder {
	return &SyntaxErrorBuilder{
		err: Diagnostic{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SyntaxErrorBuilder) WithLength(length int) *SyntaxErrorBuilder {
	b.err.Length = length
	return b
}

// WithNote adds a note to the error
func (b *SyntaxErrorBuilder) WithNote(note string) *SyntaxErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SyntaxErrorBuilder) WithHelp(help string) *SyntaxErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *SyntaxErrorBuilder) Build() Diagnostic {
	return b.err
}
