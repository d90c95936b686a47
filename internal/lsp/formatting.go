package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"edn/internal/ast"
	"edn/internal/parser"
)

// formatDocument rewrites source into its canonical text as a single edit.
// Documents that do not read cleanly, or that hold comments the canonical
// form would drop, are left alone.
func formatDocument(source string) []protocol.TextEdit {
	edits := []protocol.TextEdit{}

	tokens, err := parser.NewScanner("", source).ScanTokens()
	if err != nil {
		return edits
	}
	for _, tok := range tokens {
		if tok.Type == parser.COMMENT {
			return edits
		}
	}

	value, err := parser.NewParser("", tokens, nil).ParseDocument()
	if err != nil {
		return edits
	}
	formatted, err := ast.ToString(value)
	if err != nil {
		return edits
	}
	if strings.HasSuffix(source, "\n") {
		formatted += "\n"
	}
	if formatted == source {
		return edits
	}

	index := newLineIndex(source)
	return append(edits, protocol.TextEdit{
		Range:   protocol.Range{Start: protocol.Position{}, End: index.end()},
		NewText: formatted,
	})
}
