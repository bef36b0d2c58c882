package parser

import "github.com/micromingle/kotlin/internal/ast"

// ParseSource parses a whole source file.
func ParseSource(filename string, source string) (*ast.File, []ParseError, []ScanError) {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	p := NewParser(filename, tokens)
	file := p.ParseFile()

	return file, p.errors, scanner.errors
}

// ParseExpression parses a single expression, mainly for tools and tests.
func ParseExpression(filename string, source string) (ast.Expr, []ParseError, []ScanError) {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	p := NewParser(filename, tokens)
	expr := p.parseExpression()

	return expr, p.errors, scanner.errors
}
