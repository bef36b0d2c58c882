package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = buildParser()

func buildParser() *participle.Parser[Outline] {
	p, err := participle.Build[Outline](
		participle.Lexer(OutlineLexer),
		participle.Elide("Whitespace", "Comment", "BlockComment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build outline parser: %w", err))
	}
	return p
}

func ParseFile(path string) (*Outline, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

func ParseSource(sourceName string, source string) (*Outline, error) {
	return parser.ParseString(sourceName, source)
}

// SymbolKind classifies outline entries.
type SymbolKind int

const (
	FunctionSymbol SymbolKind = iota
	PropertySymbol
	ObjectSymbol
	InitializerSymbol
)

// Symbol is one outline entry, with nested members for objects.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Line     int
	Column   int
	Children []Symbol
}

// Symbols flattens an outline into the symbol tree editors present.
func Symbols(o *Outline) []Symbol {
	return declarationSymbols(o.Declarations)
}

func declarationSymbols(decls []*Declaration) []Symbol {
	var out []Symbol
	for _, d := range decls {
		switch {
		case d.Function != nil:
			out = append(out, Symbol{
				Name:   d.Function.Name,
				Kind:   FunctionSymbol,
				Line:   d.Function.Pos.Line,
				Column: d.Function.Pos.Column,
			})
		case d.Property != nil:
			out = append(out, Symbol{
				Name:   d.Property.Name,
				Kind:   PropertySymbol,
				Line:   d.Property.Pos.Line,
				Column: d.Property.Pos.Column,
			})
		case d.Object != nil:
			out = append(out, Symbol{
				Name:     d.Object.Name,
				Kind:     ObjectSymbol,
				Line:     d.Object.Pos.Line,
				Column:   d.Object.Pos.Column,
				Children: declarationSymbols(d.Object.Body),
			})
		case d.Init != nil:
			out = append(out, Symbol{
				Name:   "init",
				Kind:   InitializerSymbol,
				Line:   d.Init.Pos.Line,
				Column: d.Init.Pos.Column,
			})
		}
	}
	return out
}
