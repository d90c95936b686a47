package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"edn/internal/ast"
	"edn/internal/errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Scanner turns source text into classified tokens. Whitespace and commas are
// dropped; comments are kept because they are values inside collections.
type Scanner struct {
	filename string
	source   string
	tokens   []Token
}

func NewScanner(filename, source string) *Scanner {
	return &Scanner{
		filename: filename,
		source:   source,
	}
}

// ScanTokens returns the token stream terminated by an EOF token, or the first
// lexical error.
func (s *Scanner) ScanTokens() ([]Token, error) {
	if !utf8.ValidString(s.source) {
		offset := firstInvalidByte(s.source)
		pos := advance(s.origin(), s.source[:offset])
		return nil, newError(errors.ErrorInvalidEncoding, "input is not valid UTF-8", pos, 1)
	}

	lex, err := EDNLexer.LexString(s.filename, s.source)
	if err != nil {
		return nil, fmt.Errorf("failed to start lexer: %w", err)
	}

	for {
		raw, err := lex.Next()
		if err != nil {
			return nil, s.convertLexerError(err)
		}
		if raw.EOF() {
			break
		}

		pos := convertPosition(raw.Pos)
		switch lexemeTypes[raw.Type] {
		case "Whitespace":
			continue
		case "BadString":
			return nil, newErrorWithHelp(errors.ErrorUnterminatedString,
				"unterminated string", pos, 1, `add a closing '"'`)
		case "Dispatch":
			return nil, newErrorWithHelp(errors.ErrorUnsupportedDispatch,
				fmt.Sprintf("unsupported dispatch form %q", raw.Value), pos, utf8.RuneCountInString(raw.Value),
				"only #{...} sets and ##Inf, ##-Inf, ##NaN are supported")
		case "Invalid":
			return nil, s.invalidCharacter(raw.Value, pos)
		}

		tok := Token{
			Type:     classifyLexeme(lexemeTypes[raw.Type], raw.Value),
			Lexeme:   raw.Value,
			Position: pos,
		}
		if err := s.checkAdjacent(tok); err != nil {
			return nil, err
		}
		s.tokens = append(s.tokens, tok)
	}

	s.tokens = append(s.tokens, Token{Type: EOF, Position: advance(s.origin(), s.source)})
	return s.tokens, nil
}

// checkAdjacent rejects a character literal glued to the previous atom, as in
// `abc\d` or `\a\b`.
func (s *Scanner) checkAdjacent(tok Token) error {
	if tok.Type != CHARACTER || len(s.tokens) == 0 {
		return nil
	}
	prev := s.tokens[len(s.tokens)-1]
	if prev.End().Offset != tok.Position.Offset {
		return nil
	}
	switch prev.Type {
	case NUMBER, SYMBOL, KEYWORD, NIL, TRUE, FALSE, CHARACTER, SYMBOLIC:
		return newErrorWithHelp(errors.ErrorUnexpectedCharacter,
			fmt.Sprintf("character literal %q must be separated from %q", tok.Lexeme, prev.Lexeme),
			tok.Position, 1, "insert a space before the backslash")
	}
	return nil
}

func (s *Scanner) invalidCharacter(text string, pos ast.Position) error {
	if text == `\` {
		return newError(errors.ErrorInvalidCharacter,
			"backslash must be followed by a character", pos, 1)
	}
	return newError(errors.ErrorUnexpectedCharacter,
		fmt.Sprintf("unexpected character: %q", text), pos, 1)
}

func (s *Scanner) convertLexerError(err error) error {
	pe, ok := err.(participle.Error)
	if !ok {
		return fmt.Errorf("lexer failed: %w", err)
	}
	return newError(errors.ErrorUnexpectedCharacter, pe.Message(), convertPosition(pe.Position()), 1)
}

func (s *Scanner) origin() ast.Position {
	return ast.Position{Filename: s.filename, Line: 1, Column: 1}
}

func classifyLexeme(name, text string) TokenType {
	switch name {
	case "Comment":
		return COMMENT
	case "String":
		return STRING
	case "Character":
		return CHARACTER
	case "Symbolic":
		return SYMBOLIC
	case "SetOpen":
		return SET_OPEN
	case "LeftParen":
		return LEFT_PAREN
	case "RightParen":
		return RIGHT_PAREN
	case "LeftBracket":
		return LEFT_BRACKET
	case "RightBracket":
		return RIGHT_BRACKET
	case "LeftBrace":
		return LEFT_BRACE
	case "RightBrace":
		return RIGHT_BRACE
	case "Atom":
		return classifyAtom(text)
	}
	return ILLEGAL
}

// classifyAtom separates numbers from identifiers: a leading digit, or a sign
// directly followed by a digit, starts a number. A lone sign is a symbol.
func classifyAtom(text string) TokenType {
	switch {
	case isDigit(text[0]):
		return NUMBER
	case (text[0] == '+' || text[0] == '-') && len(text) > 1 && isDigit(text[1]):
		return NUMBER
	case text[0] == ':':
		return KEYWORD
	}
	return lookupIdentifier(text)
}

func convertPosition(pos lexer.Position) ast.Position {
	return ast.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

// advance moves pos over span. Columns count runes, as the lexer does.
func advance(pos ast.Position, span string) ast.Position {
	pos.Offset += len(span)
	if lines := strings.Count(span, "\n"); lines > 0 {
		pos.Line += lines
		pos.Column = utf8.RuneCountInString(span[strings.LastIndexByte(span, '\n'):])
	} else {
		pos.Column += utf8.RuneCountInString(span)
	}
	return pos
}

func firstInvalidByte(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(s)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
