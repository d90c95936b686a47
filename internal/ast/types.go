package ast

// Kind identifies the variant of a Value. The declaration order is also the
// rank used when comparing values of different variants.
type Kind int

const (
	STRING Kind = iota
	SYMBOL
	KEYWORD
	CHARACTER
	INTEGER
	FLOAT
	BOOLEAN
	NIL
	COMMENT
	LIST
	VECTOR
	SET
	MAP
)

var kindNames = [...]string{
	STRING:    "String",
	SYMBOL:    "Symbol",
	KEYWORD:   "Keyword",
	CHARACTER: "Character",
	INTEGER:   "Integer",
	FLOAT:     "Float",
	BOOLEAN:   "Boolean",
	NIL:       "Nil",
	COMMENT:   "Comment",
	LIST:      "List",
	VECTOR:    "Vector",
	SET:       "Set",
	MAP:       "Map",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Position is a location in the source text.
type Position struct {
	Filename string
	Offset   int // 0-based byte offset
	Line     int // 1-based
	Column   int // 1-based
}
