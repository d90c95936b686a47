package parser

import (
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"edn/internal/ast"
	"edn/internal/errors"

	"github.com/shopspring/decimal"
)

// numberPattern captures sign, integer digits, fraction, exponent and suffix.
var numberPattern = regexp.MustCompile(`^([+-]?)([0-9]+)(\.[0-9]+)?([eE][+-]?[0-9]+)?([NM])?$`)

// characterNames are the named character literals, matched against the whole token.
var characterNames = map[string]rune{
	"newline":   '\n',
	"return":    '\r',
	"tab":       '\t',
	"backspace": '\b',
	"formfeed":  '\f',
	"space":     ' ',
}

// shortCharacters are the one-letter character literals that denote control characters.
var shortCharacters = map[rune]rune{
	'n': '\n',
	'r': '\r',
	't': '\t',
	'b': '\b',
	'f': '\f',
}

var stringEscapes = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
}

// identifierPunctuation lists the non-alphanumeric characters allowed in symbols.
const identifierPunctuation = "*+!-_?<>=.'$%&#:"

// decodeString resolves the escapes of a STRING token. Without escapes the
// content is returned as a substring of the lexeme.
func decodeString(tok Token) (string, error) {
	body := tok.Lexeme[1 : len(tok.Lexeme)-1]
	if strings.IndexByte(body, '\\') < 0 {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}

		// body[i+1] always exists: the lexer only accepts a backslash followed by a character
		escPos := advance(tok.Position, tok.Lexeme[:i+1])
		next := body[i+1]
		if r, ok := stringEscapes[next]; ok {
			sb.WriteByte(r)
			i += 2
			continue
		}
		if next != 'u' {
			r, _ := utf8.DecodeRuneInString(body[i+1:])
			return "", newErrorWithHelp(errors.ErrorInvalidEscape,
				fmt.Sprintf("unknown escape sequence '\\%c'", r), escPos, 2,
				`valid escapes are \" \\ \n \t \r \b \f and \uXXXX`)
		}

		r, width, err := decodeUnicodeEscape(body[i:], escPos)
		if err != nil {
			return "", err
		}
		sb.WriteRune(r)
		i += width
	}
	return sb.String(), nil
}

// decodeUnicodeEscape reads `\uXXXX` at the start of s, joining a surrogate
// pair written as two escapes. It returns the scalar and the bytes consumed.
func decodeUnicodeEscape(s string, pos ast.Position) (rune, int, error) {
	hi, ok := parseHex4(s[2:])
	if !ok {
		return 0, 0, newErrorWithHelp(errors.ErrorInvalidEscape,
			"\\u must be followed by exactly four hexadecimal digits", pos, min(len(s), 6),
			`for example \u241F`)
	}
	if !utf16.IsSurrogate(hi) {
		return hi, 6, nil
	}
	if strings.HasPrefix(s[6:], `\u`) {
		if lo, ok := parseHex4(s[8:]); ok {
			if r := utf16.DecodeRune(hi, lo); r != utf8.RuneError {
				return r, 12, nil
			}
		}
	}
	return 0, 0, newError(errors.ErrorInvalidEscape,
		fmt.Sprintf("unpaired surrogate \\u%04X in string", hi), pos, 6)
}

func parseHex4(s string) (rune, bool) {
	if len(s) < 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func decodeCharacter(tok Token) (ast.Character, error) {
	body := tok.Lexeme[1:]

	if utf8.RuneCountInString(body) == 1 {
		r, _ := utf8.DecodeRuneInString(body)
		if ctrl, ok := shortCharacters[r]; ok {
			return ast.Character(ctrl), nil
		}
		return ast.Character(r), nil
	}

	if r, ok := characterNames[body]; ok {
		return ast.Character(r), nil
	}

	if body[0] == 'u' && len(body) == 5 {
		if r, ok := parseHex4(body[1:]); ok {
			if utf16.IsSurrogate(r) {
				return 0, newError(errors.ErrorInvalidCharacter,
					fmt.Sprintf("\\u%04X is a surrogate, not a character", r), tok.Position, len(tok.Lexeme))
			}
			return ast.Character(r), nil
		}
	}

	return 0, newErrorWithHelp(errors.ErrorInvalidCharacter,
		fmt.Sprintf("invalid character literal %q", tok.Lexeme), tok.Position, utf8.RuneCountInString(tok.Lexeme),
		"use a single character, \\uXXXX, or one of \\newline \\return \\tab \\backspace \\formfeed \\space")
}

func decodeNumber(tok Token) (ast.Value, error) {
	text := tok.Lexeme
	length := utf8.RuneCountInString(text)

	m := numberPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, newError(errors.ErrorInvalidNumber,
			fmt.Sprintf("invalid number %q", text), tok.Position, length)
	}
	fraction, exponent, suffix := m[3], m[4], m[5]
	floatShaped := fraction != "" || exponent != ""
	digits := strings.TrimSuffix(text, suffix)

	switch suffix {
	case "M":
		// the shape already matched, so only an int32 exponent overflow fails here
		d, err := decimal.NewFromString(strings.TrimPrefix(digits, "+"))
		if err == nil {
			d, err = boundDecimal(d)
		}
		if err != nil {
			return nil, newErrorWithHelp(errors.ErrorNumberOutOfRange,
				fmt.Sprintf("%q is outside the range of an exact decimal", text), tok.Position, length,
				fmt.Sprintf("exact decimals hold at most %d fractional digits and a %d-bit coefficient",
					maxDecimalScale, maxDecimalBits))
		}
		return ast.ExactFloat(d), nil

	case "N":
		if floatShaped {
			return nil, newErrorWithHelp(errors.ErrorInvalidNumericSuffix,
				fmt.Sprintf("suffix N is not allowed on the floating point literal %q", text), tok.Position, length,
				"use M for an exact decimal")
		}
		return ast.ArbitraryInteger(parseBigInt(digits)), nil
	}

	if floatShaped {
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			if math.IsInf(f, 0) {
				return nil, newErrorWithHelp(errors.ErrorNumberOutOfRange,
					fmt.Sprintf("%q is too large for a double", text), tok.Position, length,
					"add the M suffix for an exact decimal")
			}
			if numErr, ok := err.(*strconv.NumError); !ok || numErr.Err != strconv.ErrRange {
				return nil, newError(errors.ErrorInvalidNumber,
					fmt.Sprintf("invalid number %q", text), tok.Position, length)
			}
		}
		return ast.DoubleFloat(f), nil
	}

	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return ast.ExactInteger(n), nil
	}
	return ast.ArbitraryInteger(parseBigInt(digits)), nil
}

// Exact decimals are limited to a 96-bit coefficient and 28 digits of scale,
// so printing and comparing them stays proportional to the literal's length.
const (
	maxDecimalScale = 28
	maxDecimalBits  = 96
)

var errDecimalRange = stderrors.New("decimal out of range")

// boundDecimal normalizes d to its shortest coefficient and checks it against
// the exact decimal limits.
func boundDecimal(d decimal.Decimal) (decimal.Decimal, error) {
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return decimal.Zero, nil
	}
	exp := int64(d.Exponent())

	if exp < 0 {
		digits := coef.String()
		trimmed := strings.TrimRight(digits, "0")
		zeros := int64(len(digits) - len(trimmed))
		if zeros > -exp {
			zeros = -exp
		}
		if zeros > 0 {
			coef.SetString(digits[:len(digits)-int(zeros)], 10)
			exp += zeros
		}
	}

	if exp < -maxDecimalScale || exp > maxDecimalScale {
		return decimal.Decimal{}, errDecimalRange
	}
	if exp > 0 {
		coef.Mul(coef, new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil))
		exp = 0
	}
	if coef.BitLen() > maxDecimalBits {
		return decimal.Decimal{}, errDecimalRange
	}
	return decimal.NewFromBigInt(coef, int32(exp)), nil
}

// parseBigInt converts text already matched by numberPattern.
func parseBigInt(digits string) *big.Int {
	n, _ := new(big.Int).SetString(digits, 10)
	return n
}

func decodeSymbolic(tok Token) (ast.Float, error) {
	switch tok.Lexeme {
	case "##Inf":
		return ast.DoubleFloat(math.Inf(1)), nil
	case "##-Inf":
		return ast.DoubleFloat(math.Inf(-1)), nil
	case "##NaN":
		return ast.DoubleFloat(math.NaN()), nil
	}
	return ast.Float{}, newErrorWithHelp(errors.ErrorUnsupportedDispatch,
		fmt.Sprintf("unknown symbolic value %q", tok.Lexeme), tok.Position, utf8.RuneCountInString(tok.Lexeme),
		"symbolic values are ##Inf, ##-Inf and ##NaN")
}

// splitIdentifier validates symbol text and splits it into namespace and name.
func splitIdentifier(tok Token, text string) (string, string, error) {
	if text == "/" {
		return "", "/", nil
	}

	namespace, name, namespaced := strings.Cut(text, "/")
	if namespaced && name == "/" {
		// clojure.core// names the division function of a namespace
		return namespace, name, validateSegment(tok, namespace)
	}
	if strings.Contains(name, "/") {
		return "", "", newError(errors.ErrorInvalidIdentifier,
			fmt.Sprintf("%q has more than one '/'", tok.Lexeme), tok.Position, utf8.RuneCountInString(tok.Lexeme))
	}
	if !namespaced {
		return "", text, validateSegment(tok, text)
	}

	if err := validateSegment(tok, namespace); err != nil {
		return "", "", err
	}
	return namespace, name, validateSegment(tok, name)
}

func validateSegment(tok Token, seg string) error {
	length := utf8.RuneCountInString(tok.Lexeme)
	if seg == "" {
		return newError(errors.ErrorInvalidIdentifier,
			fmt.Sprintf("%q has an empty namespace or name", tok.Lexeme), tok.Position, length)
	}

	if isDigit(seg[0]) || ((seg[0] == '+' || seg[0] == '-' || seg[0] == '.') && len(seg) > 1 && isDigit(seg[1])) {
		return newErrorWithHelp(errors.ErrorInvalidIdentifier,
			fmt.Sprintf("%q: %q cannot start with a digit", tok.Lexeme, seg), tok.Position, length,
			"symbol and keyword segments must start with a non-numeric character")
	}
	if seg[0] == ':' || seg[0] == '#' {
		return newError(errors.ErrorInvalidIdentifier,
			fmt.Sprintf("%q: %q cannot start with %q", tok.Lexeme, seg, seg[0]), tok.Position, length)
	}

	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(identifierPunctuation, r) {
			continue
		}
		return newError(errors.ErrorInvalidIdentifier,
			fmt.Sprintf("%q contains the invalid character %q", tok.Lexeme, r), tok.Position, length)
	}
	return nil
}

func decodeSymbol(tok Token) (string, string, error) {
	return splitIdentifier(tok, tok.Lexeme)
}

func decodeKeyword(tok Token) (string, string, error) {
	body := tok.Lexeme[1:]
	if body == "" || body == "/" {
		return "", "", newError(errors.ErrorInvalidIdentifier,
			fmt.Sprintf("%q is not a valid keyword", tok.Lexeme), tok.Position, len(tok.Lexeme))
	}
	if body[0] == ':' {
		return "", "", newErrorWithHelp(errors.ErrorInvalidIdentifier,
			fmt.Sprintf("auto-resolved keyword %q is not supported", tok.Lexeme), tok.Position,
			utf8.RuneCountInString(tok.Lexeme), "write the namespace explicitly, as :ns/name")
	}
	return splitIdentifier(tok, body)
}
