package parser

var KEYWORDS = map[string]TokenType{
	"fun":      FUN,
	"val":      VAL,
	"var":      VAR,
	"if":       IF,
	"else":     ELSE,
	"when":     WHEN,
	"try":      TRY,
	"catch":    CATCH,
	"finally":  FINALLY,
	"while":    WHILE,
	"do":       DO,
	"for":      FOR,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"throw":    THROW,
	"object":   OBJECT,
	"init":     INIT,
	"is":       IS,
	"as":       AS,
	"in":       IN,
	"this":     THIS,
	"null":     NULL,
	"true":     TRUE,
	"false":    FALSE,
	"by":       BY,
	"get":      GET,
	"set":      SET,
}
