package lsp

import (
	"strings"

	"edn/internal/parser"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the SemanticTokenTypes array
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

// collectSemanticTokens classifies the lexical tokens of source. Documents that
// fail to scan produce no tokens.
func collectSemanticTokens(source string) []SemanticToken {
	scanned, err := parser.NewScanner("", source).ScanTokens()
	if err != nil {
		return nil
	}

	index := newLineIndex(source)
	var tokens []SemanticToken

	for _, tok := range scanned {
		offset := tok.Position.Offset
		switch tok.Type {
		case parser.COMMENT:
			tokens = append(tokens, makeTokens(index, offset, tok.Lexeme, "comment", 0)...)
		case parser.STRING, parser.CHARACTER:
			tokens = append(tokens, makeTokens(index, offset, tok.Lexeme, "string", 0)...)
		case parser.NUMBER, parser.SYMBOLIC:
			tokens = append(tokens, makeTokens(index, offset, tok.Lexeme, "number", 0)...)
		case parser.NIL, parser.TRUE, parser.FALSE:
			tokens = append(tokens, makeTokens(index, offset, tok.Lexeme, "keyword", modifier("readonly"))...)
		case parser.SET_OPEN:
			tokens = append(tokens, makeTokens(index, offset, tok.Lexeme, "operator", 0)...)
		case parser.SYMBOL:
			tokens = append(tokens, namespacedTokens(index, offset, tok.Lexeme, 0, "variable")...)
		case parser.KEYWORD:
			tokens = append(tokens, namespacedTokens(index, offset, tok.Lexeme, 1, "property")...)
		}
	}

	return tokens
}

// namespacedTokens splits ns/name into a namespace token and a name token. The
// first skip bytes (the colon of a keyword) belong to the namespace when there
// is one, and to the name otherwise.
func namespacedTokens(index *lineIndex, offset int, text string, skip int, nameType string) []SemanticToken {
	slash := strings.IndexByte(text[skip:], '/')
	if slash <= 0 {
		return makeTokens(index, offset, text, nameType, 0)
	}
	split := skip + slash
	tokens := makeTokens(index, offset, text[:split], "namespace", 0)
	return append(tokens, makeTokens(index, offset+split+1, text[split+1:], nameType, 0)...)
}

// makeTokens emits one token per line covered by text, since LSP tokens may
// not span lines.
func makeTokens(index *lineIndex, offset int, text, tokenType string, modifiers int) []SemanticToken {
	var tokens []SemanticToken
	for _, line := range strings.SplitAfter(text, "\n") {
		segment := strings.TrimSuffix(line, "\n")
		if segment != "" {
			start := index.position(offset)
			tokens = append(tokens, SemanticToken{
				Line:           start.Line,
				StartChar:      start.Character,
				Length:         uint32(utf16Len(segment)),
				TokenType:      indexOf(tokenType, SemanticTokenTypes),
				TokenModifiers: modifiers,
			})
		}
		offset += len(line)
	}
	return tokens
}

// encodeSemanticTokens applies the relative line and start encoding of the
// LSP wire format.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return data
}

func modifier(name string) int {
	return 1 << indexOf(name, SemanticTokenModifiers)
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
