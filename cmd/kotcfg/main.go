// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/cfg"
	"github.com/micromingle/kotlin/internal/cfg/pseudocode"
	"github.com/micromingle/kotlin/internal/errors"
	"github.com/micromingle/kotlin/internal/parser"
	"github.com/micromingle/kotlin/internal/resolve"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: kotcfg <file.kt>")
		os.Exit(1)
	}

	startTime := time.Now()
	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	file, parseErrors, scanErrors := parser.ParseSource(path, string(source))

	reporter := errors.NewErrorReporter(path, string(source))

	for _, e := range scanErrors {
		fmt.Print(reporter.FormatError(errors.CompilerError{
			Level:    errors.Error,
			Message:  e.Message,
			Position: ast.Position{Line: e.Position.Line, Column: e.Position.Column, Offset: e.Position.Offset},
			Length:   e.Length,
		}))
	}
	for _, e := range parseErrors {
		fmt.Print(reporter.FormatError(errors.CompilerError{
			Level:    errors.Error,
			Message:  e.Message,
			Position: ast.Position{Line: e.Position.Line, Column: e.Position.Column, Offset: e.Position.Offset},
			Length:   e.Length,
		}))
	}

	hasErrors := len(scanErrors) > 0 || len(parseErrors) > 0

	var lowered []*pseudocode.Pseudocode
	if file != nil {
		trace := resolve.Analyze(file)
		lowered = cfg.LowerFile(file, trace)

		for _, e := range trace.Diagnostics() {
			fmt.Print(reporter.FormatError(e))
			if e.Level == errors.Error {
				hasErrors = true
			}
		}
	}

	duration := time.Since(startTime)
	formattedDuration := formatDuration(duration)

	if !hasErrors {
		for _, p := range lowered {
			if fn, ok := p.Element().(*ast.Function); ok {
				fmt.Printf("== %s ==\n", fn.Name)
			}
			fmt.Print(pseudocode.Print(p))
			fmt.Println()
		}
		color.Green("Successfully processed %s in %s", path, formattedDuration)
	} else {
		color.Red("Compilation failed after %s", formattedDuration)
		os.Exit(1)
	}
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
