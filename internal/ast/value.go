package ast

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Value is a node of a parsed document. Concrete types:
//
//   - String, Symbol, Keyword, Character
//   - Integer (Exact or Arbitrary), Float (Double or Exact)
//   - Boolean, Nil, Comment
//   - List, Vector, *Set, *Map
//
// Values are immutable once the parser returns them. Strings inside a value may
// share storage with the parsed input.
type Value interface {
	Kind() Kind
	String() string

	value() // sealed: only types in this package implement Value
}

// String is a string literal after escape resolution.
type String string

// Symbol is an identifier. Namespace is empty when the symbol has none.
type Symbol struct {
	Namespace string
	Name      string
}

// Keyword is an identifier written with a leading ':'.
type Keyword struct {
	Namespace string
	Name      string
}

// Character is a single Unicode scalar written with a leading '\'.
type Character rune

// Boolean is the literal true or false.
type Boolean bool

// Nil is the literal nil.
type Nil struct{}

// Comment is a line comment. Its text is discarded, so all comments are equal.
type Comment struct{}

// List is a parenthesized sequence.
type List []Value

// Vector is a bracketed sequence.
type Vector []Value

// IntegerPrecision tells which representation an Integer holds.
type IntegerPrecision int

const (
	Exact IntegerPrecision = iota
	Arbitrary
)

func (p IntegerPrecision) String() string {
	if p == Arbitrary {
		return "Arbitrary"
	}
	return "Exact"
}

// Integer is a whole number held either as an int64 (Exact) or as an unbounded
// big.Int (Arbitrary). The zero value is Exact 0.
type Integer struct {
	exact     int64
	arbitrary *big.Int
}

func ExactInteger(i int64) Integer {
	return Integer{exact: i}
}

// ArbitraryInteger copies b into an Arbitrary integer.
func ArbitraryInteger(b *big.Int) Integer {
	return Integer{arbitrary: new(big.Int).Set(b)}
}

func (i Integer) Precision() IntegerPrecision {
	if i.arbitrary != nil {
		return Arbitrary
	}
	return Exact
}

// Int64 returns the Exact payload. ok is false for Arbitrary integers.
func (i Integer) Int64() (v int64, ok bool) {
	if i.arbitrary != nil {
		return 0, false
	}
	return i.exact, true
}

// BigInt returns the value as a fresh big.Int regardless of precision.
func (i Integer) BigInt() *big.Int {
	if i.arbitrary != nil {
		return new(big.Int).Set(i.arbitrary)
	}
	return big.NewInt(i.exact)
}

// FloatPrecision tells which representation a Float holds.
type FloatPrecision int

const (
	Double FloatPrecision = iota
	ExactDecimal
)

func (p FloatPrecision) String() string {
	if p == ExactDecimal {
		return "Exact"
	}
	return "Double"
}

// Float is a fractional number held either as an IEEE double or as an
// arbitrary-precision decimal. The zero value is Double 0.
type Float struct {
	double  float64
	decimal decimal.Decimal
	exact   bool
}

func DoubleFloat(f float64) Float {
	return Float{double: f}
}

func ExactFloat(d decimal.Decimal) Float {
	return Float{decimal: d, exact: true}
}

func (f Float) Precision() FloatPrecision {
	if f.exact {
		return ExactDecimal
	}
	return Double
}

// Float64 returns the Double payload. ok is false for Exact decimals.
func (f Float) Float64() (v float64, ok bool) {
	if f.exact {
		return 0, false
	}
	return f.double, true
}

// Decimal returns the Exact payload. ok is false for Doubles.
func (f Float) Decimal() (d decimal.Decimal, ok bool) {
	if !f.exact {
		return decimal.Decimal{}, false
	}
	return f.decimal, true
}

func (f Float) isNaN() bool {
	return !f.exact && math.IsNaN(f.double)
}

func NewSymbol(namespace, name string) Symbol {
	return Symbol{Namespace: namespace, Name: name}
}

func NewKeyword(namespace, name string) Keyword {
	return Keyword{Namespace: namespace, Name: name}
}

func (String) Kind() Kind    { return STRING }
func (Symbol) Kind() Kind    { return SYMBOL }
func (Keyword) Kind() Kind   { return KEYWORD }
func (Character) Kind() Kind { return CHARACTER }
func (Integer) Kind() Kind   { return INTEGER }
func (Float) Kind() Kind     { return FLOAT }
func (Boolean) Kind() Kind   { return BOOLEAN }
func (Nil) Kind() Kind       { return NIL }
func (Comment) Kind() Kind   { return COMMENT }
func (List) Kind() Kind      { return LIST }
func (Vector) Kind() Kind    { return VECTOR }
func (*Set) Kind() Kind      { return SET }
func (*Map) Kind() Kind      { return MAP }

func (String) value()    {}
func (Symbol) value()    {}
func (Keyword) value()   {}
func (Character) value() {}
func (Integer) value()   {}
func (Float) value()     {}
func (Boolean) value()   {}
func (Nil) value()       {}
func (Comment) value()   {}
func (List) value()      {}
func (Vector) value()    {}
func (*Set) value()      {}
func (*Map) value()      {}
