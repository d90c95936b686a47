package parser

import (
	"fmt"
	"unicode/utf8"

	"edn/internal/ast"
	"edn/internal/errors"
	"edn/internal/intern"
)

// Parser builds one value from a token stream by recursive descent. Each open
// collection is one frame of parseElements.
type Parser struct {
	filename string
	tokens   []Token
	current  int
	depth    int
	interner intern.Interner
}

// maxDepth bounds collection nesting so hostile input cannot exhaust the stack.
const maxDepth = 10000

// NewParser creates a parser over tokens ending in EOF. interner may be nil.
func NewParser(filename string, tokens []Token, interner intern.Interner) *Parser {
	return &Parser{
		filename: filename,
		tokens:   tokens,
		interner: interner,
	}
}

// ParseDocument reads exactly one value. Comments around the value are
// skipped; a document made only of comments is the Comment value.
func (p *Parser) ParseDocument() (ast.Value, error) {
	leading := p.skipComments()
	if p.isAtEnd() {
		if leading > 0 {
			return ast.Comment{}, nil
		}
		return nil, newError(errors.ErrorEmptyInput, "expected a value, found end of input", p.peek().Position, 1)
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.skipComments()
	if !p.isAtEnd() {
		tok := p.peek()
		if isCloser(tok.Type) {
			return nil, newError(errors.ErrorUnbalancedDelimiter,
				fmt.Sprintf("unexpected closing %q", tok.Lexeme), tok.Position, 1)
		}
		return nil, newErrorWithHelp(errors.ErrorTrailingInput,
			fmt.Sprintf("unexpected %q after a complete value", tok.Lexeme), tok.Position, utf8.RuneCountInString(tok.Lexeme),
			"a document holds a single value; wrap several values in a vector")
	}
	return value, nil
}

func (p *Parser) parseValue() (ast.Value, error) {
	if p.isAtEnd() {
		return nil, newError(errors.ErrorUnterminatedCollection, "unexpected end of input", p.peek().Position, 1)
	}

	tok := p.advance()
	switch tok.Type {
	case STRING:
		s, err := decodeString(tok)
		if err != nil {
			return nil, err
		}
		return ast.String(s), nil

	case CHARACTER:
		c, err := decodeCharacter(tok)
		if err != nil {
			return nil, err
		}
		return c, nil

	case NUMBER:
		return decodeNumber(tok)

	case SYMBOLIC:
		f, err := decodeSymbolic(tok)
		if err != nil {
			return nil, err
		}
		return f, nil

	case SYMBOL:
		ns, name, err := decodeSymbol(tok)
		if err != nil {
			return nil, err
		}
		return ast.NewSymbol(p.intern(ns), p.intern(name)), nil

	case KEYWORD:
		ns, name, err := decodeKeyword(tok)
		if err != nil {
			return nil, err
		}
		return ast.NewKeyword(p.intern(ns), p.intern(name)), nil

	case NIL:
		return ast.Nil{}, nil
	case TRUE:
		return ast.Boolean(true), nil
	case FALSE:
		return ast.Boolean(false), nil
	case COMMENT:
		return ast.Comment{}, nil

	case LEFT_PAREN:
		elems, err := p.parseElements(tok)
		if err != nil {
			return nil, err
		}
		return ast.List(elems), nil

	case LEFT_BRACKET:
		elems, err := p.parseElements(tok)
		if err != nil {
			return nil, err
		}
		return ast.Vector(elems), nil

	case SET_OPEN:
		elems, err := p.parseElements(tok)
		if err != nil {
			return nil, err
		}
		return ast.NewSet(elems...), nil

	case LEFT_BRACE:
		return p.parseMap(tok)

	case RIGHT_PAREN, RIGHT_BRACKET, RIGHT_BRACE:
		return nil, newError(errors.ErrorUnbalancedDelimiter,
			fmt.Sprintf("unexpected closing %q", tok.Lexeme), tok.Position, 1)
	}

	return nil, newError(errors.ErrorUnexpectedCharacter,
		fmt.Sprintf("unexpected token %s", tok.Type), tok.Position, 1)
}

// parseElements reads values up to the delimiter closing open and consumes it.
func (p *Parser) parseElements(open Token) ([]ast.Value, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, newErrorWithHelp(errors.ErrorNestingTooDeep,
			fmt.Sprintf("collections nested more than %d levels deep", maxDepth), open.Position, len(open.Lexeme),
			"flatten the document or split it into several documents")
	}

	closer := closers[open.Type]
	var elems []ast.Value

	for {
		if p.isAtEnd() {
			return nil, newErrorWithHelp(errors.ErrorUnterminatedCollection,
				fmt.Sprintf("unclosed %q", open.Lexeme), open.Position, len(open.Lexeme),
				fmt.Sprintf("add a closing %q", closingText(closer)))
		}
		if p.match(closer) {
			return elems, nil
		}

		if tok := p.peek(); isCloser(tok.Type) {
			err := newErrorWithHelp(errors.ErrorUnbalancedDelimiter,
				fmt.Sprintf("mismatched closing %q", tok.Lexeme), tok.Position, 1,
				fmt.Sprintf("expected %q", closingText(closer)))
			err.Notes = append(err.Notes, fmt.Sprintf("%q opened at %d:%d", open.Lexeme, open.Position.Line, open.Position.Column))
			return nil, err
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, value)
	}
}

// parseMap pairs up the forms of a map literal. Comments are forms too, so they
// take part in the pairing.
func (p *Parser) parseMap(open Token) (ast.Value, error) {
	elems, err := p.parseElements(open)
	if err != nil {
		return nil, err
	}

	if len(elems)%2 != 0 {
		err := newErrorWithHelp(errors.ErrorOddMapForms,
			fmt.Sprintf("map literal has %d forms, expected an even number", len(elems)), open.Position, 1,
			"every key needs a value")
		for _, v := range elems {
			if v.Kind() == ast.COMMENT {
				err.Notes = append(err.Notes, "comments inside a map count as forms")
				break
			}
		}
		return nil, err
	}

	m := ast.NewMap()
	for i := 0; i < len(elems); i += 2 {
		m.Insert(elems[i], elems[i+1])
	}
	return m, nil
}
