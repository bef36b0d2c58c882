// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/cfg"
	"github.com/micromingle/kotlin/internal/cfg/pseudocode"
	"github.com/micromingle/kotlin/internal/errors"
	"github.com/micromingle/kotlin/internal/parser"
	"github.com/micromingle/kotlin/internal/resolve"
)

const PROMPT = ">> "

// Start runs a read-lower-print loop. Each line is parsed as a list of
// declarations; a line that is a bare expression is wrapped in a
// synthetic function so it can be lowered too.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		Eval(line, out)
	}
}

// Eval lowers one input line and writes the result.
func Eval(line string, out io.Writer) {
	file, parseErrors, scanErrors := parser.ParseSource("<repl>", line)

	lowered := lowerDeclarations(file)
	if len(lowered) == 0 && len(parseErrors) == 0 && len(scanErrors) == 0 {
		// not a function declaration; retry as a bare expression
		expr, exprParseErrors, exprScanErrors := parser.ParseExpression("<repl>", line)
		parseErrors, scanErrors = exprParseErrors, exprScanErrors
		if expr != nil && len(parseErrors) == 0 && len(scanErrors) == 0 {
			lowered = lowerExpression(expr)
		}
	}

	reporter := errors.NewErrorReporter("<repl>", line)
	for _, e := range scanErrors {
		fmt.Fprint(out, reporter.FormatError(errors.CompilerError{
			Level:    errors.Error,
			Message:  e.Message,
			Position: ast.Position{Line: e.Position.Line, Column: e.Position.Column, Offset: e.Position.Offset},
			Length:   e.Length,
		}))
	}
	for _, e := range parseErrors {
		fmt.Fprint(out, reporter.FormatError(errors.CompilerError{
			Level:    errors.Error,
			Message:  e.Message,
			Position: ast.Position{Line: e.Position.Line, Column: e.Position.Column, Offset: e.Position.Offset},
			Length:   e.Length,
		}))
	}

	for _, p := range lowered {
		fmt.Fprint(out, pseudocode.Print(p.Pseudocode))
		for _, e := range p.Diagnostics {
			fmt.Fprint(out, reporter.FormatError(e))
		}
	}
}

type loweredResult struct {
	Pseudocode  *pseudocode.Pseudocode
	Diagnostics []errors.CompilerError
}

func lowerDeclarations(file *ast.File) []loweredResult {
	if file == nil {
		return nil
	}
	trace := resolve.Analyze(file)
	lowered := cfg.LowerFile(file, trace)

	var out []loweredResult
	for i, p := range lowered {
		r := loweredResult{Pseudocode: p}
		// attach diagnostics to the first result only; they are
		// file-scoped, not per-function
		if i == 0 {
			r.Diagnostics = trace.Diagnostics()
		}
		out = append(out, r)
	}
	return out
}

func lowerExpression(expr ast.Expr) []loweredResult {
	fn := &ast.Function{
		Pos:    expr.NodePos(),
		EndPos: expr.NodeEndPos(),
		Name:   "repl",
		Body:   expr,
	}
	file := &ast.File{Declarations: []ast.Node{fn}}
	return lowerDeclarations(file)
}
