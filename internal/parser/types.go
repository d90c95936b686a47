package parser

import "edn/internal/ast"

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	STRING
	CHARACTER
	NUMBER
	SYMBOLIC // ##Inf, ##-Inf, ##NaN

	// Identifiers
	SYMBOL
	KEYWORD

	// Reserved words
	NIL
	TRUE
	FALSE

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACKET
	RIGHT_BRACKET
	LEFT_BRACE
	RIGHT_BRACE
	SET_OPEN

	// Comments
	COMMENT
)

var tokenTypeNames = [...]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	STRING:        "STRING",
	CHARACTER:     "CHARACTER",
	NUMBER:        "NUMBER",
	SYMBOLIC:      "SYMBOLIC",
	SYMBOL:        "SYMBOL",
	KEYWORD:       "KEYWORD",
	NIL:           "NIL",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	SET_OPEN:      "SET_OPEN",
	COMMENT:       "COMMENT",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return "TokenType(?)"
	}
	return tokenTypeNames[t]
}

type Token struct {
	Type     TokenType
	Lexeme   string
	Position ast.Position
}

// End returns the position just past the token.
func (t Token) End() ast.Position {
	return advance(t.Position, t.Lexeme)
}

// closers maps each opening token to the token that closes it.
var closers = map[TokenType]TokenType{
	LEFT_PAREN:   RIGHT_PAREN,
	LEFT_BRACKET: RIGHT_BRACKET,
	LEFT_BRACE:   RIGHT_BRACE,
	SET_OPEN:     RIGHT_BRACE,
}

func isCloser(tt TokenType) bool {
	return tt == RIGHT_PAREN || tt == RIGHT_BRACKET || tt == RIGHT_BRACE
}
