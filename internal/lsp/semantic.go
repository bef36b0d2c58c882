package lsp

import (
	"strings"

	"github.com/micromingle/kotlin/internal/parser"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

// collectSemanticTokens classifies the scanner's token stream. Working
// from tokens rather than the AST keeps highlighting alive while the
// file does not parse, which is most of the time in an editor.
func collectSemanticTokens(tokens []parser.Token) []SemanticToken {
	var out []SemanticToken

	for i, tok := range tokens {
		switch tok.Type {
		case parser.NUMBER, parser.HEX_NUMBER:
			out = append(out, makeToken(tok, len(tok.Lexeme), "number", 0))
		case parser.STRING:
			// the lexeme is the content without quotes; multi-line
			// literals cannot be encoded as a single token
			if !strings.ContainsRune(tok.Lexeme, '\n') {
				out = append(out, makeToken(tok, len(tok.Lexeme)+2, "string", 0))
			}
		case parser.IDENTIFIER:
			kind, declared := classifyIdentifier(tokens, i)
			modifiers := 0
			if declared {
				modifiers = 1 << indexOf("declaration", SemanticTokenModifiers)
			}
			out = append(out, makeToken(tok, len(tok.Lexeme), kind, modifiers))
		default:
			if isKeywordToken(tok.Type) {
				out = append(out, makeToken(tok, len(tok.Lexeme), "keyword", 0))
			}
		}
	}

	return out
}

// classifyIdentifier picks a token type from the surrounding tokens.
func classifyIdentifier(tokens []parser.Token, i int) (string, bool) {
	var prev, next parser.TokenType = parser.EOF, parser.EOF
	if i > 0 {
		prev = tokens[i-1].Type
	}
	if i+1 < len(tokens) {
		next = tokens[i+1].Type
	}

	switch prev {
	case parser.FUN:
		return "function", true
	case parser.VAL, parser.VAR:
		return "variable", true
	case parser.OBJECT:
		return "type", true
	case parser.COLON, parser.IS, parser.NOT_IS, parser.AS:
		return "type", false
	}

	if next == parser.LEFT_PAREN {
		return "function", false
	}
	if prev == parser.DOT || prev == parser.SAFE_DOT {
		return "property", false
	}
	return "variable", false
}

func isKeywordToken(tt parser.TokenType) bool {
	switch tt {
	case parser.FUN, parser.VAL, parser.VAR, parser.IF, parser.ELSE,
		parser.WHEN, parser.TRY, parser.CATCH, parser.FINALLY,
		parser.WHILE, parser.DO, parser.FOR, parser.BREAK,
		parser.CONTINUE, parser.RETURN, parser.THROW, parser.OBJECT,
		parser.INIT, parser.IS, parser.NOT_IS, parser.AS, parser.IN,
		parser.NOT_IN, parser.THIS, parser.NULL, parser.TRUE,
		parser.FALSE, parser.BY, parser.GET, parser.SET:
		return true
	}
	return false
}

// makeToken creates a semantic token for a scanner token
func makeToken(tok parser.Token, length int, tokenType string, modifiers int) SemanticToken {
	return SemanticToken{
		Line:           uint32(tok.Position.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(tok.Position.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0 // Default to first token type if not found
}
