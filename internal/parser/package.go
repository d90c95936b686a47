package parser

import (
	"fmt"
	"os"

	"edn/internal/ast"
	"edn/internal/intern"
)

// Option configures a single parse.
type Option func(*config)

type config struct {
	interner intern.Interner
}

// WithInterner shares symbol and keyword text through i.
func WithInterner(i intern.Interner) Option {
	return func(c *config) {
		c.interner = i
	}
}

// ParseSource reads the single value in source. On failure the error is a
// *ParseError and no value is returned.
func ParseSource(path string, source string, opts ...Option) (ast.Value, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	scanner := NewScanner(path, source)
	tokens, err := scanner.ScanTokens()
	if err != nil {
		return nil, err
	}

	parser := NewParser(path, tokens, cfg.interner)
	return parser.ParseDocument()
}

func ParseFile(path string, opts ...Option) (ast.Value, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseSource(path, string(source), opts...)
}
