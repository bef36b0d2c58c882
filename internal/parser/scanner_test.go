package parser

import (
	"testing"
)

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "fun val var if else when try catch finally while do for break continue return throw object init customIdent"
	expected := []TokenType{
		FUN, VAL, VAR, IF, ELSE, WHEN, TRY, CATCH, FINALLY,
		WHILE, DO, FOR, BREAK, CONTINUE, RETURN, THROW, OBJECT, INIT, IDENTIFIER,
	}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %v, got %v", i, exp, tokens[i].Type)
		}
	}
}

func TestNumbers(t *testing.T) {
	input := "42 0 12345 0x0 0x1F 0xABC"
	expected := []TokenType{NUMBER, NUMBER, NUMBER, HEX_NUMBER, HEX_NUMBER, HEX_NUMBER}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %v, got %v", i, exp, tokens[i].Type)
		}
	}
}

func TestCompoundOperators(t *testing.T) {
	input := "++ -- += -= *= /= %= == != <= >= && || ?: ?. !! .. -> ="
	expected := []TokenType{
		INCREMENT, DECREMENT, PLUS_EQUAL, MINUS_EQUAL, STAR_EQUAL, SLASH_EQUAL,
		PERCENT_EQUAL, EQUAL_EQUAL, BANG_EQUAL, LESS_EQUAL, GREATER_EQUAL,
		AND, OR, ELVIS, SAFE_DOT, BANG_BANG, RANGE, ARROW, EQUAL,
	}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %v, got %v", i, exp, tokens[i].Type)
		}
	}
}

func TestBangFoldsWithIsAndIn(t *testing.T) {
	input := "x !is Int y !in r !isEmpty"
	expected := []TokenType{
		IDENTIFIER, NOT_IS, IDENTIFIER,
		IDENTIFIER, NOT_IN, IDENTIFIER,
		BANG, IDENTIFIER,
	}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %v, got %v (%q)", i, exp, tokens[i].Type, tokens[i].Lexeme)
		}
	}
}

func TestStrings(t *testing.T) {
	input := `"hello" "a $x b"`
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) < 2 {
		t.Fatalf("expected at least 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Type != STRING || tokens[0].Lexeme != "hello" {
		t.Errorf("expected STRING 'hello', got %v %q", tokens[0].Type, tokens[0].Lexeme)
	}
	if tokens[1].Type != STRING || tokens[1].Lexeme != "a $x b" {
		t.Errorf("template text is scanned verbatim, got %v %q", tokens[1].Type, tokens[1].Lexeme)
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	scanner := NewScanner(`"oops`)
	scanner.ScanTokens()

	if len(scanner.Errors()) == 0 {
		t.Fatal("expected a scan error for an unterminated string")
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := "fun // trailing\n/* block\ncomment */ main"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	expected := []TokenType{FUN, IDENTIFIER, EOF}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %v, got %v", i, exp, tokens[i].Type)
		}
	}
}

func TestPositionsAreOneBased(t *testing.T) {
	input := "fun main\nval x"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if tokens[0].Position.Line != 1 || tokens[0].Position.Column != 1 {
		t.Errorf("first token should be at 1:1, got %d:%d", tokens[0].Position.Line, tokens[0].Position.Column)
	}
	if tokens[2].Position.Line != 2 || tokens[2].Position.Column != 1 {
		t.Errorf("'val' should be at 2:1, got %d:%d", tokens[2].Position.Line, tokens[2].Position.Column)
	}
}

func TestScannerAtPreservesOrigin(t *testing.T) {
	scanner := NewScannerAt("x + y", Position{Line: 3, Column: 10, Offset: 25})
	tokens := scanner.ScanTokens()

	if tokens[0].Position.Line != 3 {
		t.Errorf("expected line 3, got %d", tokens[0].Position.Line)
	}
	if tokens[0].Position.Column != 10 {
		t.Errorf("expected column 10, got %d", tokens[0].Position.Column)
	}
	if tokens[0].Position.Offset != 25 {
		t.Errorf("expected offset 25, got %d", tokens[0].Position.Offset)
	}
}
