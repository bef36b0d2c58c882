// Package grammar carries a coarse declaration-level grammar of the
// language. It does not understand expression structure; bodies are kept
// as balanced raw token runs. The full parser lives in internal/parser;
// this one exists for outline views, where resilience matters more than
// precision.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type Outline struct {
	Pos          lexer.Position
	EndPos       lexer.Position
	Declarations []*Declaration `parser:"@@*"`
}

type Declaration struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Function *FunctionSig `parser:"( @@"`
	Property *PropertySig `parser:"| @@"`
	Object   *ObjectSig   `parser:"| @@"`
	Init     *InitSig     `parser:"| @@ ) \";\"*"`
}

type FunctionSig struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string       `parser:"\"fun\" @Ident"`
	Params []*ParamSig  `parser:"\"(\" [ @@ { \",\" @@ } ] \")\""`
	Return *TypeSig     `parser:"[ \":\" @@ ]"`
	Block  *RawBody     `parser:"( @@"`
	Expr   *RawFragment `parser:"| \"=\" @@ )?"`
}

type ParamSig struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Name    string           `parser:"@Ident"`
	Type    *TypeSig         `parser:"[ \":\" @@ ]"`
	Default *DefaultFragment `parser:"[ \"=\" @@ ]"`
}

type PropertySig struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Var    bool         `parser:"( \"val\" | @\"var\" )"`
	Name   string       `parser:"@Ident"`
	Type   *TypeSig     `parser:"[ \":\" @@ ]"`
	Value  *RawFragment `parser:"[ ( \"=\" | \"by\" ) @@ ]"`
}

type ObjectSig struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string         `parser:"\"object\" @Ident"`
	Body   []*Declaration `parser:"\"{\" @@* \"}\""`
}

type InitSig struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Body   *RawBody `parser:"\"init\" @@"`
}

type TypeSig struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Name     string     `parser:"@Ident"`
	Generics []*TypeSig `parser:"[ \"<\" @@ { \",\" @@ } \">\" ]"`
	Nullable bool       `parser:"[ @\"?\" ]"`
}

// RawBody is a balanced braced token run.
type RawBody struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Parts  []*RawPart `parser:"\"{\" @@* \"}\""`
}

type RawPart struct {
	Nested *RawBody `parser:"  @@"`
	Token  string   `parser:"| @~(\"{\" | \"}\")"`
}

// RawFragment is an expression-shaped token run the outline does not
// interpret: everything up to the declaration separator.
type RawFragment struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Parts  []*RawFragmentPart `parser:"@@+"`
}

type RawFragmentPart struct {
	Nested *RawBody `parser:"  @@"`
	Token  string   `parser:"| @~(\"{\" | \"}\" | \";\" | \"fun\" | \"val\" | \"var\" | \"object\" | \"init\")"`
}

// DefaultFragment is a parameter default value. Unlike RawFragment it
// stops at the commas and closing parenthesis of the parameter list, so
// nested parentheses are tracked.
type DefaultFragment struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Parts  []*DefaultPart `parser:"@@+"`
}

type DefaultPart struct {
	Parens *RawParens `parser:"  @@"`
	Braces *RawBody   `parser:"| @@"`
	Token  string     `parser:"| @~(\"(\" | \")\" | \"{\" | \"}\" | \",\" | \";\")"`
}

// RawParens is a balanced parenthesized token run.
type RawParens struct {
	Parts []*ParenPart `parser:"\"(\" @@* \")\""`
}

type ParenPart struct {
	Nested *RawParens `parser:"  @@"`
	Braces *RawBody   `parser:"| @@"`
	Token  string     `parser:"| @~(\"(\" | \")\" | \"{\" | \"}\")"`
}
