package ast

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrCommentNotPrintable is returned when a tree containing a Comment is
	// printed. A comment's text is not kept, so it has no canonical spelling.
	ErrCommentNotPrintable = errors.New("comment values have no canonical text")
	ErrUnknownValue        = errors.New("unknown value type")
)

// namedChars are the characters that always print in their named form.
var namedChars = map[rune]string{
	'\n': "newline",
	'\r': "return",
	'\t': "tab",
	'\b': "backspace",
	'\f': "formfeed",
	' ':  "space",
}

// ToString returns the canonical text of v.
func ToString(v Value) (string, error) {
	var sb strings.Builder
	if err := appendValue(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Print writes the canonical text of v to w. Nothing is written when v cannot
// be printed.
func Print(w io.Writer, v Value) error {
	s, err := ToString(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func render(v Value) string {
	s, err := ToString(v)
	if err != nil {
		return "!!(" + err.Error() + ")!!"
	}
	return s
}

func (s String) String() string    { return render(s) }
func (s Symbol) String() string    { return render(s) }
func (k Keyword) String() string   { return render(k) }
func (c Character) String() string { return render(c) }
func (i Integer) String() string   { return render(i) }
func (f Float) String() string     { return render(f) }
func (b Boolean) String() string   { return render(b) }
func (n Nil) String() string       { return render(n) }
func (c Comment) String() string   { return render(c) }
func (l List) String() string      { return render(l) }
func (v Vector) String() string    { return render(v) }
func (s *Set) String() string      { return render(s) }
func (m *Map) String() string      { return render(m) }

func appendValue(sb *strings.Builder, v Value) error {
	switch x := v.(type) {
	case String:
		appendString(sb, string(x))
	case Symbol:
		appendIdent(sb, x.Namespace, x.Name)
	case Keyword:
		sb.WriteByte(':')
		appendIdent(sb, x.Namespace, x.Name)
	case Character:
		appendCharacter(sb, rune(x))
	case Integer:
		if x.arbitrary != nil {
			sb.WriteString(x.arbitrary.String())
			sb.WriteByte('N')
		} else {
			sb.WriteString(strconv.FormatInt(x.exact, 10))
		}
	case Float:
		if x.exact {
			sb.WriteString(x.decimal.String())
			sb.WriteByte('M')
		} else {
			sb.WriteString(formatDouble(x.double))
		}
	case Boolean:
		sb.WriteString(strconv.FormatBool(bool(x)))
	case Nil:
		sb.WriteString("nil")
	case Comment:
		return ErrCommentNotPrintable
	case List:
		return appendSeq(sb, "(", ")", x)
	case Vector:
		return appendSeq(sb, "[", "]", x)
	case *Set:
		return appendSeq(sb, "#{", "}", x.items)
	case *Map:
		sb.WriteByte('{')
		for i := range x.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := appendValue(sb, x.keys[i]); err != nil {
				return err
			}
			sb.WriteByte(' ')
			if err := appendValue(sb, x.vals[i]); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		return fmt.Errorf("%w: %T", ErrUnknownValue, v)
	}
	return nil
}

func appendSeq(sb *strings.Builder, open, close string, items []Value) error {
	sb.WriteString(open)
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if err := appendValue(sb, item); err != nil {
			return err
		}
	}
	sb.WriteString(close)
	return nil
}

func appendIdent(sb *strings.Builder, namespace, name string) {
	if namespace != "" {
		sb.WriteString(namespace)
		sb.WriteByte('/')
	}
	sb.WriteString(name)
}

func appendString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			sb.WriteByte(s[i])
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\b':
			sb.WriteString(`\b`)
		case r == '\f':
			sb.WriteString(`\f`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(sb, `\u%04X`, r)
		default:
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	sb.WriteByte('"')
}

func appendCharacter(sb *strings.Builder, r rune) {
	sb.WriteByte('\\')
	if name, ok := namedChars[r]; ok {
		sb.WriteString(name)
		return
	}
	switch {
	case r == 'n', r == 'r', r == 't', r == 'b', r == 'f':
		// one-letter spellings of these read back as control characters
		fmt.Fprintf(sb, "u%04X", r)
	case !unicode.IsPrint(r) && r <= 0xFFFF:
		fmt.Fprintf(sb, "u%04X", r)
	default:
		sb.WriteRune(r)
	}
}

// formatDouble returns the shortest text that reads back as f. The result
// always carries a '.' or an exponent so it re-reads as a Double.
func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "##NaN"
	case math.IsInf(f, 1):
		return "##Inf"
	case math.IsInf(f, -1):
		return "##-Inf"
	case f == 0:
		// covers -0
		return "0.0"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	s = strings.ReplaceAll(s, "E", "e")
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
