package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var OutlineLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},
		{Name: "BlockComment", Pattern: `(?s)/\*.*?\*/`, Action: nil},

		// String literals; template expressions stay inside the token
		{Name: "String", Pattern: `"(\\.|\$\{[^}]*\}|[^"\\])*"`, Action: nil},

		// Literals
		{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`, Action: nil},
		{Name: "Int", Pattern: `[0-9]+`, Action: nil},

		// Keywords and identifiers
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},

		// Operators (longest first)
		{Name: "Operator", Pattern: `\|\||&&|==|!=|<=|>=|\+\+|--|\+=|-=|\*=|/=|%=|!!|\?\.|\?:|\.\.|->|[-+*/%=<>!?.@]`, Action: nil},

		// Punctuation
		{Name: "Punct", Pattern: `[{}()\[\],;:]`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
