package ast

import (
	"cmp"
	"strings"
)

// Compare defines the total order over values. Values of different kinds order
// by Kind; values of the same kind order by payload. Sets and maps store their
// contents in this order and the printer emits them in it.
func Compare(a, b Value) int {
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}

	switch x := a.(type) {
	case String:
		return strings.Compare(string(x), string(b.(String)))
	case Symbol:
		y := b.(Symbol)
		return compareIdent(x.Namespace, x.Name, y.Namespace, y.Name)
	case Keyword:
		y := b.(Keyword)
		return compareIdent(x.Namespace, x.Name, y.Namespace, y.Name)
	case Character:
		return cmp.Compare(x, b.(Character))
	case Integer:
		return compareInteger(x, b.(Integer))
	case Float:
		return compareFloat(x, b.(Float))
	case Boolean:
		return compareBool(bool(x), bool(b.(Boolean)))
	case Nil, Comment:
		return 0
	case List:
		return compareSeq(x, b.(List))
	case Vector:
		return compareSeq(x, b.(Vector))
	case *Set:
		return compareSeq(x.items, b.(*Set).items)
	case *Map:
		return compareEntries(x, b.(*Map))
	}
	return 0
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// compareIdent orders identifiers without a namespace before namespaced ones.
func compareIdent(ans, aname, bns, bname string) int {
	if c := strings.Compare(ans, bns); c != 0 {
		return c
	}
	return strings.Compare(aname, bname)
}

// compareInteger orders every Exact integer before every Arbitrary one.
func compareInteger(a, b Integer) int {
	if c := cmp.Compare(a.Precision(), b.Precision()); c != 0 {
		return c
	}
	if a.arbitrary != nil {
		return a.arbitrary.Cmp(b.arbitrary)
	}
	return cmp.Compare(a.exact, b.exact)
}

// compareFloat orders every Double before every Exact decimal. Doubles follow
// a total order in which -0 equals +0 and NaN is greater than everything else.
func compareFloat(a, b Float) int {
	if c := cmp.Compare(a.Precision(), b.Precision()); c != 0 {
		return c
	}
	if a.exact {
		return a.decimal.Cmp(b.decimal)
	}
	switch an, bn := a.isNaN(), b.isNaN(); {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	return cmp.Compare(a.double, b.double)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareSeq(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareEntries(a, b *Map) int {
	for i := 0; i < len(a.keys) && i < len(b.keys); i++ {
		if c := Compare(a.keys[i], b.keys[i]); c != 0 {
			return c
		}
		if c := Compare(a.vals[i], b.vals[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.keys), len(b.keys))
}
