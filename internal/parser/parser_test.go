package parser

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edn/internal/ast"
	"edn/internal/errors"
	"edn/internal/intern"
)

func pos(line, column, offset int) ast.Position {
	return ast.Position{Line: line, Column: column, Offset: offset}
}

func mustParse(t *testing.T, source string) ast.Value {
	t.Helper()
	v, err := ParseSource("test.edn", source)
	require.NoError(t, err, "source: %q", source)
	require.NotNil(t, v)
	return v
}

func parseError(t *testing.T, source string) *ParseError {
	t.Helper()
	v, err := ParseSource("test.edn", source)
	require.Error(t, err, "source: %q", source)
	assert.Nil(t, v, "failed parse must not return a value")

	pe, ok := err.(*ParseError)
	require.True(t, ok, "expected *ParseError, got %T", err)
	return pe
}

func bigInt(s string) *big.Int {
	n, _ := new(big.Int).SetString(s, 10)
	return n
}

func TestParseAccepts(t *testing.T) {
	inputs := []string{
		// strings
		`""`, `"hello"`, `"a \"quoted\" word"`, `"tab\there"`, `"é"`,
		// symbols and keywords
		`hello`, `some_namespace/hello`, `:hello`, `:some_namespace/hello`,
		`+`, `-`, `->`, `/`, `clojure.core//`, `a.b/c-d?`, `<=`, `*ns*`, `:a#b`,
		// characters
		`\n`, `\newline`, `\r`, `\return`, `\b`, `\backspace`, `\space`,
		`\t`, `\tab`, `\f`, `\formfeed`, `\u241F`, `\a`, `\(`, `\\`, `\é`,
		// integers
		`0`, `+0`, `-0`, `42`, `+42`, `-42`, `+42N`, `-42N`, `007`,
		// floats
		`0.0`, `+0.0`, `-0.0`, `42.1`, `+42.1`, `-42.1`, `+42M`, `-42M`,
		`-42.1e10`, `-42.1e+10`, `-42.1e-10`, `-42.1E10`, `-42.1E+10`, `-42.1E-10`,
		`1.5M`, `##Inf`, `##-Inf`, `##NaN`,
		// vectors
		`[]`, `[[]]`, `[[] []]`, `[[], []]`, `[[], [],]`, `[[], [],,,,,]`,
		// lists
		`()`, `(())`, `(() ())`, `((), ())`, `((), (),)`, `((), (),,,,,)`,
		// sets
		`#{}`, `#{#{}}`, `#{#{} #{}}`, `#{#{}, #{}}`, `#{#{}, #{},}`, `#{#{}, #{},,,,,}`,
		// maps
		`{}`, `{[] []}`, `{:hi :there}`, `{:hi "ok"}`, `{fine blah}`,
		`{[], []          ,}`, `{:hi, :there,,}`, `{:hi,,, ,, "ok"}`, `{fine ,,,,blah,,,,,}`,
		"{\n                :a :b\n\n\n\n                :c :d\n                ,:e :x\n\n\n\n    }",
		// comments and whitespace around the value
		"; leading\n[1 2]", "[1 2] ; trailing", "  \n\t[1]\n", "[1 ; inside\n 2]",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			mustParse(t, input)
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		input string
		code  string
	}{
		{`some_namespace/hello]`, errors.ErrorUnbalancedDelimiter},
		{`:some_namespace/hello]`, errors.ErrorUnbalancedDelimiter},
		{`{[]}`, errors.ErrorOddMapForms},
		{`{:a 1 :b}`, errors.ErrorOddMapForms},
		{``, errors.ErrorEmptyInput},
		{" ,,\n ", errors.ErrorEmptyInput},
		{`1 2`, errors.ErrorTrailingInput},
		{`[1 2`, errors.ErrorUnterminatedCollection},
		{`(1 2]`, errors.ErrorUnbalancedDelimiter},
		{`#{1 2)`, errors.ErrorUnbalancedDelimiter},
		{`)`, errors.ErrorUnbalancedDelimiter},
		{`"abc`, errors.ErrorUnterminatedString},
		{`"bad \q escape"`, errors.ErrorInvalidEscape},
		{`"\u12"`, errors.ErrorInvalidEscape},
		{`"\uD800"`, errors.ErrorInvalidEscape},
		{`\abc`, errors.ErrorInvalidCharacter},
		{`\u12`, errors.ErrorInvalidCharacter},
		{`\uD800`, errors.ErrorInvalidCharacter},
		{`\newlines`, errors.ErrorInvalidCharacter},
		{`ns/1abc`, errors.ErrorInvalidIdentifier},
		{`:1abc`, errors.ErrorInvalidIdentifier},
		{`:ns/1abc`, errors.ErrorInvalidIdentifier},
		{`:ns/-1`, errors.ErrorInvalidIdentifier},
		{`a/b/c`, errors.ErrorInvalidIdentifier},
		{`ns/`, errors.ErrorInvalidIdentifier},
		{`:`, errors.ErrorInvalidIdentifier},
		{`::auto`, errors.ErrorInvalidIdentifier},
		{`a@b`, errors.ErrorInvalidIdentifier},
		{`12abc`, errors.ErrorInvalidNumber},
		{`1.`, errors.ErrorInvalidNumber},
		{`0x1F`, errors.ErrorInvalidNumber},
		{`1.5N`, errors.ErrorInvalidNumericSuffix},
		{`1e5N`, errors.ErrorInvalidNumericSuffix},
		{`1e400`, errors.ErrorNumberOutOfRange},
		{`1e200000000M`, errors.ErrorNumberOutOfRange},
		{`1e-200000000M`, errors.ErrorNumberOutOfRange},
		{`1e99999999999M`, errors.ErrorNumberOutOfRange},
		{`1e29M`, errors.ErrorNumberOutOfRange},
		{`1e-29M`, errors.ErrorNumberOutOfRange},
		{`79228162514264337593543950336M`, errors.ErrorNumberOutOfRange},
		{`##Foo`, errors.ErrorUnsupportedDispatch},
		{`#inst "2024-01-01"`, errors.ErrorUnsupportedDispatch},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pe := parseError(t, tt.input)
			assert.Equal(t, tt.code, pe.Code, "message: %s", pe.Message)
		})
	}
}

func TestNestingDepthLimit(t *testing.T) {
	deepest := strings.Repeat("[", maxDepth) + strings.Repeat("]", maxDepth)
	text, err := ast.ToString(mustParse(t, deepest))
	require.NoError(t, err)
	assert.Equal(t, deepest, text)

	const levels = 1 << 20
	pe := parseError(t, strings.Repeat("[", levels)+strings.Repeat("]", levels))
	assert.Equal(t, errors.ErrorNestingTooDeep, pe.Code)
	assert.Equal(t, errors.Structural, pe.Category())
	assert.Equal(t, maxDepth+1, pe.Position.Column)
	assert.NotEmpty(t, pe.Help)

	pe = parseError(t, strings.Repeat("({#{", maxDepth))
	assert.Equal(t, errors.ErrorNestingTooDeep, pe.Code)
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, errors.Lexical, parseError(t, `"abc`).Category())
	assert.Equal(t, errors.Structural, parseError(t, `{[]}`).Category())
	assert.Equal(t, errors.Structural, parseError(t, `1 2`).Category())
	assert.Equal(t, errors.Numeric, parseError(t, `1.5N`).Category())
}

func TestErrorPositions(t *testing.T) {
	pe := parseError(t, "[1\n {:a 1 :b}]")
	assert.Equal(t, errors.ErrorOddMapForms, pe.Code)
	assert.Equal(t, 2, pe.Position.Line)
	assert.Equal(t, 2, pe.Position.Column)
	assert.Equal(t, 4, pe.Position.Offset)
	assert.Equal(t, "test.edn:2:2: map literal has 3 forms, expected an even number", pe.Error())

	pe = parseError(t, `"ok \x"`)
	assert.Equal(t, 1, pe.Position.Line)
	assert.Equal(t, 5, pe.Position.Column)

	pe = parseError(t, "(1 [2)")
	assert.Equal(t, 6, pe.Position.Column)
	assert.Contains(t, pe.Notes, `"[" opened at 1:4`)
}

func TestMapParityCountsComments(t *testing.T) {
	pe := parseError(t, "{:a 1 ; note\n}")
	assert.Equal(t, errors.ErrorOddMapForms, pe.Code)
	assert.Contains(t, pe.Notes, "comments inside a map count as forms")

	v := mustParse(t, "{:a ; value follows\n ; and another\n 1}")
	m := v.(*ast.Map)
	assert.Equal(t, 2, m.Len())
}

func TestSeparatorEquivalence(t *testing.T) {
	expected := mustParse(t, "[1 2 3]")
	for _, input := range []string{"[1,2,3]", "[1,2 3,]", "[ 1\n2\t,,3 ]", "[,,1,,2,,3,,]"} {
		assert.True(t, ast.Equal(expected, mustParse(t, input)), "input: %q", input)
	}
}

func TestIntegerPrecision(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Integer
	}{
		{"42", ast.ExactInteger(42)},
		{"-0", ast.ExactInteger(0)},
		{"007", ast.ExactInteger(7)},
		{"9223372036854775807", ast.ExactInteger(math.MaxInt64)},
		{"-9223372036854775807", ast.ExactInteger(math.MinInt64 + 1)},
		{"-9223372036854775808", ast.ExactInteger(math.MinInt64)},
		{"9223372036854775808", ast.ArbitraryInteger(bigInt("9223372036854775808"))},
		{"-9223372036854775809", ast.ArbitraryInteger(bigInt("-9223372036854775809"))},
		{"+42N", ast.ArbitraryInteger(big.NewInt(42))},
		{"-42N", ast.ArbitraryInteger(big.NewInt(-42))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := mustParse(t, tt.input)
			i, ok := v.(ast.Integer)
			require.True(t, ok, "expected Integer, got %T", v)
			assert.Equal(t, tt.expected.Precision(), i.Precision())
			assert.Zero(t, i.BigInt().Cmp(tt.expected.BigInt()))
		})
	}
}

func TestFloatPrecision(t *testing.T) {
	v := mustParse(t, "-42.1e-10")
	f := v.(ast.Float)
	assert.Equal(t, ast.Double, f.Precision())
	d, ok := f.Float64()
	require.True(t, ok)
	assert.Equal(t, -42.1e-10, d)

	for _, input := range []string{"+42M", "13M", "-42.1e-10M", "0.10M"} {
		f := mustParse(t, input).(ast.Float)
		assert.Equal(t, ast.ExactDecimal, f.Precision(), "input: %q", input)
	}

	dec, ok := mustParse(t, "+42M").(ast.Float).Decimal()
	require.True(t, ok)
	assert.True(t, dec.Equal(decimal.NewFromInt(42)))

	dec, _ = mustParse(t, "-42.1e-10M").(ast.Float).Decimal()
	assert.True(t, dec.Equal(decimal.RequireFromString("-0.00000000421")))

	bounds := []struct {
		input    string
		expected string
	}{
		{"79228162514264337593543950335M", "79228162514264337593543950335"},
		{"-79228162514264337593543950335M", "-79228162514264337593543950335"},
		{"1e28M", "10000000000000000000000000000"},
		{"1e-28M", "0.0000000000000000000000000001"},
		{"1.50000000000000000000000000000000000000M", "1.5"},
		{"0e999999999M", "0"},
		{"-0.0e-999999999M", "0"},
	}
	for _, tt := range bounds {
		dec, ok := mustParse(t, tt.input).(ast.Float).Decimal()
		require.True(t, ok, "input: %q", tt.input)
		assert.Equal(t, tt.expected, dec.String(), "input: %q", tt.input)
	}

	inf, _ := mustParse(t, "##-Inf").(ast.Float).Float64()
	assert.True(t, math.IsInf(inf, -1))
	nan, _ := mustParse(t, "##NaN").(ast.Float).Float64()
	assert.True(t, math.IsNaN(nan))

	tiny, _ := mustParse(t, "1e-400").(ast.Float).Float64()
	assert.Zero(t, tiny)
}

func TestCharacterLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected rune
	}{
		{`\n`, '\n'},
		{`\newline`, '\n'},
		{`\r`, '\r'},
		{`\return`, '\r'},
		{`\t`, '\t'},
		{`\tab`, '\t'},
		{`\b`, '\b'},
		{`\backspace`, '\b'},
		{`\f`, '\f'},
		{`\formfeed`, '\f'},
		{`\space`, ' '},
		{`\u241F`, '␟'},
		{`\u`, 'u'},
		{`\s`, 's'},
		{`\(`, '('},
		{`\\`, '\\'},
		{`\é`, 'é'},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, ast.Character(tt.expected), mustParse(t, tt.input))
		})
	}

	assert.True(t, ast.Equal(mustParse(t, `\n`), mustParse(t, `\newline`)))

	v := mustParse(t, `[\a \b \space]`)
	assert.Equal(t, ast.Vector{ast.Character('a'), ast.Character('\b'), ast.Character(' ')}, v)
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"plain"`, "plain"},
		{`"q\"q"`, `q"q`},
		{`"back\\slash"`, `back\slash`},
		{`"\n\t\r\b\f"`, "\n\t\r\b\f"},
		{`"été"`, "été"},
		{`"😀"`, "😀"},
		{"\"multi\nline\"", "multi\nline"},
		{`"a;b,c"`, "a;b,c"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, ast.String(tt.expected), mustParse(t, tt.input))
		})
	}
}

func TestIdentifiers(t *testing.T) {
	assert.Equal(t, ast.NewSymbol("", "hello"), mustParse(t, "hello"))
	assert.Equal(t, ast.NewSymbol("some_namespace", "hello"), mustParse(t, "some_namespace/hello"))
	assert.Equal(t, ast.NewKeyword("", "hello"), mustParse(t, ":hello"))
	assert.Equal(t, ast.NewKeyword("some_namespace", "hello"), mustParse(t, ":some_namespace/hello"))
	assert.Equal(t, ast.NewSymbol("", "/"), mustParse(t, "/"))
	assert.Equal(t, ast.NewSymbol("clojure.core", "/"), mustParse(t, "clojure.core//"))
	assert.Equal(t, ast.NewSymbol("", "-"), mustParse(t, "-"))
	assert.Equal(t, ast.NewSymbol("", "-a"), mustParse(t, "-a"))
	assert.Equal(t, ast.NewSymbol("", "a1"), mustParse(t, "a1"))
	assert.Equal(t, ast.NewSymbol("", "nil?"), mustParse(t, "nil?"))
}

func TestReservedWords(t *testing.T) {
	assert.Equal(t, ast.Nil{}, mustParse(t, "nil"))
	assert.Equal(t, ast.Boolean(true), mustParse(t, "true"))
	assert.Equal(t, ast.Boolean(false), mustParse(t, "false"))
	assert.Equal(t, ast.NewSymbol("", "truer"), mustParse(t, "truer"))
	assert.Equal(t, ast.NewKeyword("", "nil"), mustParse(t, ":nil"))
}

func TestComments(t *testing.T) {
	assert.Equal(t, ast.Comment{}, mustParse(t, "; only a comment"))
	assert.Equal(t, ast.Comment{}, mustParse(t, "; one\n; two\n"))

	v := mustParse(t, "(1 ; one\n 2)")
	assert.Equal(t, ast.List{ast.ExactInteger(1), ast.Comment{}, ast.ExactInteger(2)}, v)

	v = mustParse(t, "; header\n42 ; trailer")
	assert.Equal(t, ast.ExactInteger(42), v)

	s := mustParse(t, "#{; a\n ; b\n 1}").(*ast.Set)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(ast.Comment{}))
}

func TestSetsAndMaps(t *testing.T) {
	s := mustParse(t, "#{3 1 2 1 3}").(*ast.Set)
	assert.Equal(t, []ast.Value{ast.ExactInteger(1), ast.ExactInteger(2), ast.ExactInteger(3)}, s.Elements())

	m := mustParse(t, "{:b 1 :a 2 :b 3}").(*ast.Map)
	assert.Equal(t, 2, m.Len())
	got, ok := m.Get(ast.NewKeyword("", "b"))
	require.True(t, ok)
	assert.Equal(t, ast.ExactInteger(3), got)
	assert.Equal(t, []ast.Value{ast.NewKeyword("", "a"), ast.NewKeyword("", "b")}, m.Keys())
}

func TestEndToEndMap(t *testing.T) {
	v := mustParse(t, "{:a 1 :b [true nil 9]}")
	m, ok := v.(*ast.Map)
	require.True(t, ok)
	assert.Equal(t, 2, m.Len())

	a, _ := m.Get(ast.NewKeyword("", "a"))
	assert.Equal(t, ast.ExactInteger(1), a)

	b, _ := m.Get(ast.NewKeyword("", "b"))
	assert.Equal(t, ast.Vector{ast.Boolean(true), ast.Nil{}, ast.ExactInteger(9)}, b)

	text, err := ast.ToString(v)
	require.NoError(t, err)
	assert.Equal(t, "{:a 1, :b [true nil 9]}", text)
	assert.True(t, ast.Equal(v, mustParse(t, text)))
}

func TestParseWithInterner(t *testing.T) {
	cache := intern.NewCache()

	first, err := ParseSource("a.edn", "[:deps/x :deps/y sym]", WithInterner(cache))
	require.NoError(t, err)
	second, err := ParseSource("b.edn", "{:deps/x ns/sym}", WithInterner(cache))
	require.NoError(t, err)

	assert.Equal(t, 5, cache.Len()) // deps x y sym ns
	assert.Equal(t, ast.NewKeyword("deps", "x"), first.(ast.Vector)[0])
	assert.Equal(t, 1, second.(*ast.Map).Len())
}

func TestParseFile(t *testing.T) {
	v, err := ParseFile("../../examples/deps.edn")
	require.NoError(t, err)
	m, ok := v.(*ast.Map)
	require.True(t, ok)
	_, ok = m.Get(ast.NewKeyword("", "deps"))
	assert.True(t, ok)

	_, err = ParseFile("does-not-exist.edn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestDiagnosticConversion(t *testing.T) {
	pe := parseError(t, "{:a 1 ; dangling\n}")
	d := pe.Diagnostic()

	assert.Equal(t, errors.Error, d.Level)
	assert.Equal(t, errors.ErrorOddMapForms, d.Code)
	assert.Equal(t, pe.Message, d.Message)
	assert.Equal(t, pe.Position, d.Position)
	assert.Equal(t, "every key needs a value", d.HelpText)
	assert.Equal(t, []string{"comments inside a map count as forms"}, d.Notes)
}
