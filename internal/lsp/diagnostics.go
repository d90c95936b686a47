package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"edn/internal/parser"
)

const diagnosticSource = "edn-reader"

// ConvertParseError transforms a reader failure into LSP diagnostics for IDE
// display. A nil error yields an empty slice, which clears earlier diagnostics.
func ConvertParseError(err error, source string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if err == nil {
		return diagnostics
	}

	parseErr, ok := err.(*parser.ParseError)
	if !ok {
		return append(diagnostics, protocol.Diagnostic{
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString(diagnosticSource),
			Message:  err.Error(),
		})
	}

	index := newLineIndex(source)
	start := parseErr.Position.Offset

	message := parseErr.Message
	for _, note := range parseErr.Notes {
		message += "\nnote: " + note
	}
	if parseErr.Help != "" {
		message += "\nhelp: " + parseErr.Help
	}

	return append(diagnostics, protocol.Diagnostic{
		Range: protocol.Range{
			Start: index.position(start),
			End:   index.position(spanEnd(source, start, parseErr.Length)),
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: parseErr.Code},
		Source:   ptrString(diagnosticSource),
		Message:  message,
	})
}

// spanEnd moves length characters forward from offset, stopping at the end of
// the line.
func spanEnd(source string, offset, length int) int {
	end := max(0, min(offset, len(source)))
	for ; length > 0 && end < len(source) && source[end] != '\n'; length-- {
		_, size := utf8.DecodeRuneInString(source[end:])
		end += size
	}
	return end
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
