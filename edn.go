// Package edn reads documents in the Extensible Data Notation and prints values
// back in a canonical textual form.
//
// A document holds exactly one value, optionally surrounded by whitespace and
// comments:
//
//	v, err := edn.Parse(`{:name "edn" :tags #{:reader :printer}}`)
//	if err != nil {
//		var perr *edn.ParseError
//		errors.As(err, &perr) // code, position and help text
//	}
//	s, _ := edn.ToString(v) // {:name "edn", :tags #{:printer :reader}}
//
// Sets and maps print their members in a deterministic total order, so two
// values that are Equal always print identically and printed text reads back as
// an Equal value.
package edn

import (
	"io"

	"edn/internal/ast"
	"edn/internal/intern"
	"edn/internal/parser"
)

type (
	Value     = ast.Value
	String    = ast.String
	Symbol    = ast.Symbol
	Keyword   = ast.Keyword
	Character = ast.Character
	Integer   = ast.Integer
	Float     = ast.Float
	Boolean   = ast.Boolean
	Nil       = ast.Nil
	Comment   = ast.Comment
	List      = ast.List
	Vector    = ast.Vector
	Set       = ast.Set
	Map       = ast.Map
	Entry     = ast.Entry
	Kind      = ast.Kind
	Position  = ast.Position

	ParseError = parser.ParseError
	Cache      = intern.Cache
)

var (
	ErrCommentNotPrintable = ast.ErrCommentNotPrintable
	ErrUnknownValue        = ast.ErrUnknownValue
)

// Parse reads the single value in text. Errors are *ParseError.
func Parse(text string) (Value, error) {
	return parser.ParseSource("", text)
}

// ParseWithCache is Parse with symbol and keyword text shared through cache.
// A cache may serve many concurrent parses.
func ParseWithCache(cache *Cache, text string) (Value, error) {
	if cache == nil {
		return Parse(text)
	}
	return parser.ParseSource("", text, parser.WithInterner(cache))
}

// ParseFile reads the value stored at path. Error positions carry the path.
func ParseFile(path string) (Value, error) {
	return parser.ParseFile(path)
}

// NewCache returns an empty identifier cache that parses may share.
func NewCache() *Cache {
	return intern.NewCache()
}

// ToString returns the canonical text of v. It fails for trees holding a
// Comment.
func ToString(v Value) (string, error) {
	return ast.ToString(v)
}

// Write prints the canonical text of v to w.
func Write(w io.Writer, v Value) error {
	return ast.Print(w, v)
}

// Compare orders values totally: first by variant, then by content. It
// returns -1, 0 or +1.
func Compare(a, b Value) int {
	return ast.Compare(a, b)
}

// Equal reports whether Compare(a, b) is 0.
func Equal(a, b Value) bool {
	return ast.Equal(a, b)
}
