package parser

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

// skipComments consumes consecutive comments and reports how many there were.
func (p *Parser) skipComments() int {
	n := 0
	for p.match(COMMENT) {
		n++
	}
	return n
}

func (p *Parser) intern(s string) string {
	if p.interner == nil || s == "" {
		return s
	}
	return p.interner.Intern(s)
}

func closingText(tt TokenType) string {
	switch tt {
	case RIGHT_PAREN:
		return ")"
	case RIGHT_BRACKET:
		return "]"
	default:
		return "}"
	}
}
