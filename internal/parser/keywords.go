package parser

// RESERVED maps the bare words that read as literals instead of symbols.
var RESERVED = map[string]TokenType{
	"nil":   NIL,
	"true":  TRUE,
	"false": FALSE,
}

func lookupIdentifier(text string) TokenType {
	if t, ok := RESERVED[text]; ok {
		return t
	}
	return SYMBOL
}
