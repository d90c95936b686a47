// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"edn/internal/ast"
	"edn/internal/dump"
	"edn/internal/errors"
	"edn/internal/intern"
	"edn/internal/parser"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("edn-dump", flag.ContinueOnError)
	flags.SetOutput(stderr)
	format := flags.String("format", "edn", "output format: edn or yaml")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: edn-dump [-format edn|yaml] <file.edn>...")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 || (*format != "edn" && *format != "yaml") {
		flags.Usage()
		return 2
	}

	startTime := time.Now()
	cache := intern.NewCache()
	failed := false

	for _, path := range flags.Args() {
		if err := dumpFile(path, *format, cache, stdout, stderr); err != nil {
			failed = true
		}
	}

	formattedDuration := formatDuration(time.Since(startTime))
	if failed {
		fmt.Fprintln(stderr, color.RedString("Reading failed after %s", formattedDuration))
		return 1
	}
	fmt.Fprintln(stderr, color.GreenString("Successfully processed %d file(s) in %s", flags.NArg(), formattedDuration))
	return 0
}

func dumpFile(path, format string, cache *intern.Cache, stdout, stderr io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read file: %v\n", err)
		return err
	}

	value, err := parser.ParseSource(path, string(source), parser.WithInterner(cache))
	if err != nil {
		if parseErr, ok := err.(*parser.ParseError); ok {
			reporter := errors.NewErrorReporter(path, string(source))
			fmt.Fprint(stderr, reporter.FormatError(parseErr.Diagnostic()))
		} else {
			fmt.Fprintln(stderr, err)
		}
		return err
	}

	if format == "yaml" {
		err = dump.WriteYAML(stdout, value)
	} else {
		err = ast.Print(stdout, value)
		if err == nil {
			_, err = fmt.Fprintln(stdout)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", path, err)
	}
	return err
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
