// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"edn/internal/ast"
	"edn/internal/errors"
	"edn/internal/intern"
	"edn/internal/parser"
)

const (
	PROMPT          = ">> "
	CONTINUE_PROMPT = ".. "
)

// Start reads documents from in until it is exhausted and echoes each one in
// canonical form. Input whose collection or string is still open continues on
// the next line.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	cache := intern.NewCache()
	var pending strings.Builder

	for {
		if pending.Len() == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUE_PROMPT)
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		pending.WriteString(scanner.Text())
		source := pending.String()
		if strings.TrimSpace(source) == "" {
			pending.Reset()
			continue
		}

		value, err := parser.ParseSource("repl", source, parser.WithInterner(cache))
		if err != nil && incomplete(err) {
			pending.WriteString("\n")
			continue
		}
		pending.Reset()

		if err != nil {
			report(out, source, err)
			continue
		}

		text, err := ast.ToString(value)
		if err != nil {
			fmt.Fprintln(out, color.YellowString("%v", err))
			continue
		}
		fmt.Fprintln(out, text)
	}
}

// incomplete reports whether more input could still complete the document.
func incomplete(err error) bool {
	parseErr, ok := err.(*parser.ParseError)
	if !ok {
		return false
	}
	return parseErr.Code == errors.ErrorUnterminatedCollection || parseErr.Code == errors.ErrorUnterminatedString
}

func report(out io.Writer, source string, err error) {
	parseErr, ok := err.(*parser.ParseError)
	if !ok {
		fmt.Fprintln(out, color.RedString("%v", err))
		return
	}
	reporter := errors.NewErrorReporter("repl", source)
	fmt.Fprint(out, reporter.FormatError(parseErr.Diagnostic()))
}
