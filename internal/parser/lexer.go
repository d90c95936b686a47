package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// EDNLexer splits a document into raw lexemes. It only finds token boundaries;
// the shape of each lexeme is checked by the scanner and the literal decoders.
var EDNLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Separators: commas are whitespace
		{"Whitespace", `[\s,]+`, nil},
		{"Comment", `;[^\n]*`, nil},

		// Strings (order matters: a string without closing quote swallows the rest)
		{"String", `"(?:\\[\s\S]|[^"\\])*"`, nil},
		{"BadString", `"[\s\S]*`, nil},

		// Characters: backslash, one non-space scalar, then constituent characters
		{"Character", `\\\S[^\s,()\[\]{}"\\;]*`, nil},

		// Dispatch forms
		{"Symbolic", `##[^\s,()\[\]{}"\\;]*`, nil},
		{"SetOpen", `#\{`, nil},
		{"Dispatch", `#[^\s,()\[\]{}"\\;]*`, nil},

		// Delimiters
		{"LeftParen", `\(`, nil},
		{"RightParen", `\)`, nil},
		{"LeftBracket", `\[`, nil},
		{"RightBracket", `\]`, nil},
		{"LeftBrace", `\{`, nil},
		{"RightBrace", `\}`, nil},

		// Numbers, symbols, keywords and reserved words
		{"Atom", `[^\s,()\[\]{}"\\;#][^\s,()\[\]{}"\\;]*`, nil},

		{"Invalid", `[\s\S]`, nil},
	},
})

var lexemeTypes = func() map[lexer.TokenType]string {
	types := make(map[lexer.TokenType]string)
	for name, tt := range EDNLexer.Symbols() {
		types[tt] = name
	}
	return types
}()
