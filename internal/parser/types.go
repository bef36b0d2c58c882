package parser

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	HEX_NUMBER
	STRING

	// Keywords
	FUN
	VAL
	VAR
	IF
	ELSE
	WHEN
	TRY
	CATCH
	FINALLY
	WHILE
	DO
	FOR
	BREAK
	CONTINUE
	RETURN
	THROW
	OBJECT
	INIT
	IS
	AS
	IN
	THIS
	NULL
	TRUE
	FALSE
	BY
	GET
	SET

	// Operators
	PLUS
	INCREMENT
	MINUS
	DECREMENT
	STAR
	SLASH
	PERCENT
	BANG
	BANG_EQUAL
	BANG_BANG
	NOT_IS
	NOT_IN
	EQUAL
	EQUAL_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	AND
	OR
	ELVIS
	QUESTION
	SAFE_DOT
	RANGE
	ARROW

	// Assignment operators
	PLUS_EQUAL
	MINUS_EQUAL
	STAR_EQUAL
	SLASH_EQUAL
	PERCENT_EQUAL

	// Separators
	COMMA
	DOT
	SEMICOLON
	COLON
	AT

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
)

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}
