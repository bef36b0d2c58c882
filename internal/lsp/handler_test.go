package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/micromingle/kotlin/internal/lsp"
)

func exampleURI(t *testing.T, name string) string {
	t.Helper()
	absPath, err := filepath.Abs(filepath.Join("../../examples", name))
	require.NoError(t, err, "Failed to get absolute path")
	return "file://" + filepath.ToSlash(absPath)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	handler := lsp.NewKotlinHandler()

	ctx := &glsp.Context{}
	params := &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{
			URI: exampleURI(t, "bank.kt"),
		},
	}

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, params)
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")
	require.NotEmpty(t, tokens.Data, "Returned token data should not be empty")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.NotEmpty(t, decoded, "No semantic tokens decoded")

	// fun deposit(account: Int, amount: Int): Int {
	assertToken(t, &decoded[0], 1, 1, 3, "keyword", nil)
	assertToken(t, &decoded[1], 1, 5, 7, "function", []string{"declaration"})
	assertToken(t, &decoded[2], 1, 13, 7, "variable", nil)
	assertToken(t, &decoded[3], 1, 22, 3, "type", nil)
	assertToken(t, &decoded[4], 1, 27, 6, "variable", nil)
	assertToken(t, &decoded[5], 1, 35, 3, "type", nil)
	assertToken(t, &decoded[6], 1, 41, 3, "type", nil)

	//     val next = account + amount
	assertToken(t, &decoded[7], 2, 5, 3, "keyword", nil)
	assertToken(t, &decoded[8], 2, 9, 4, "variable", []string{"declaration"})
	assertToken(t, &decoded[9], 2, 16, 7, "variable", nil)
	assertToken(t, &decoded[10], 2, 26, 6, "variable", nil)

	//     return next
	assertToken(t, &decoded[11], 3, 5, 6, "keyword", nil)
	assertToken(t, &decoded[12], 3, 12, 4, "variable", nil)

	kinds := make(map[string]int)
	for _, tok := range decoded {
		kinds[tok.Type]++
	}
	require.NotZero(t, kinds["string"], "string literals are highlighted")
	require.NotZero(t, kinds["number"], "number literals are highlighted")
	require.NotZero(t, kinds["function"], "call sites are highlighted as functions")
}

func TestTextDocumentDocumentSymbol(t *testing.T) {
	handler := lsp.NewKotlinHandler()

	ctx := &glsp.Context{}
	result, err := handler.TextDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{
			URI: exampleURI(t, "bank.kt"),
		},
	})
	require.NoError(t, err)

	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok, "Result should be a DocumentSymbol slice")
	require.Len(t, symbols, 4)

	names := []string{symbols[0].Name, symbols[1].Name, symbols[2].Name, symbols[3].Name}
	require.Equal(t, []string{"deposit", "withdraw", "report", "main"}, names)
	for _, s := range symbols {
		require.Equal(t, protocol.SymbolKindFunction, s.Kind)
	}

	require.Equal(t, uint32(0), symbols[0].Range.Start.Line, "ranges are 0-based")
}

func TestSemanticTokensSurviveBrokenBody(t *testing.T) {
	// highlighting works from the token stream, so a file that does not
	// parse still gets tokens
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.kt")
	source := `fun broken( {
    val x =
}`
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	handler := lsp.NewKotlinHandler()
	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{
			URI: "file://" + filepath.ToSlash(path),
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Data)
}

func TestUnknownFileIsReported(t *testing.T) {
	handler := lsp.NewKotlinHandler()
	_, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{
			URI: "file:///no/such/file.kt",
		},
	})
	require.Error(t, err)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // decoded positions are 1-based for readability
			Char:      char + 1,
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (token %d)", token.Index)
	require.Equal(t, expectedChar, token.Char, "char mismatch (token %d)", token.Index)
	require.Equal(t, expectedLength, token.Length, "length mismatch (token %d)", token.Index)
	require.Equal(t, expectedType, token.Type, "type mismatch (token %d)", token.Index)
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch (token %d)", token.Index)
}
