package parser

import (
	"fmt"
	"unicode"
)

type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

type Scanner struct {
	source      string
	tokens      []Token
	start       int
	current     int
	line        int
	startColumn int
	column      int
	// originOffset shifts reported offsets for fragment scanners.
	originOffset int
	errors       []ScanError
}

type ScanError struct {
	Message  string
	Position Position
	Length   int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// NewScannerAt starts scanning with an explicit origin, so fragments cut
// out of a larger source (string template expressions) keep absolute
// positions.
func NewScannerAt(source string, origin Position) *Scanner {
	s := NewScanner(source)
	s.line = origin.Line
	s.column = origin.Column
	s.start = 0
	s.current = 0
	s.originOffset = origin.Offset
	return s
}

func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.startColumn = s.column
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Position: Position{Line: s.line, Column: s.column, Offset: s.offset(s.current)}})
	return s.tokens
}

func (s *Scanner) Errors() []ScanError { return s.errors }

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	// Simple single-character tokens
	case '(':
		s.addToken(LEFT_PAREN)
	case ')':
		s.addToken(RIGHT_PAREN)
	case '{':
		s.addToken(LEFT_BRACE)
	case '}':
		s.addToken(RIGHT_BRACE)
	case '[':
		s.addToken(LEFT_BRACKET)
	case ']':
		s.addToken(RIGHT_BRACKET)
	case ',':
		s.addToken(COMMA)
	case ';':
		s.addToken(SEMICOLON)
	case ':':
		s.addToken(COLON)
	case '@':
		s.addToken(AT)

	// Operators with multi-character variants
	case '+':
		s.scanPlusOperator()
	case '-':
		s.scanMinusOperator()
	case '*':
		s.scanStarOperator()
	case '/':
		s.scanSlashOperator()
	case '%':
		s.scanPercentOperator()
	case '!':
		s.scanBangOperator()
	case '=':
		s.scanEqualOperator()
	case '<':
		s.scanLessOperator()
	case '>':
		s.scanGreaterOperator()
	case '&':
		s.scanAmpersandOperator()
	case '|':
		s.scanPipeOperator()
	case '?':
		s.scanQuestionOperator()
	case '.':
		s.scanDotOperator()

	// Whitespace (ignored)
	case ' ', '\r', '\t':
	case '\n':
		// Handled in advance()

	// String literals
	case '"':
		s.scanString()

	default:
		s.scanDefault(c)
	}
}

func (s *Scanner) scanPlusOperator() {
	if s.matchNext('+') {
		s.addToken(INCREMENT)
	} else if s.matchNext('=') {
		s.addToken(PLUS_EQUAL)
	} else {
		s.addToken(PLUS)
	}
}

func (s *Scanner) scanMinusOperator() {
	if s.matchNext('-') {
		s.addToken(DECREMENT)
	} else if s.matchNext('=') {
		s.addToken(MINUS_EQUAL)
	} else if s.matchNext('>') {
		s.addToken(ARROW)
	} else {
		s.addToken(MINUS)
	}
}

func (s *Scanner) scanStarOperator() {
	if s.matchNext('=') {
		s.addToken(STAR_EQUAL)
	} else {
		s.addToken(STAR)
	}
}

func (s *Scanner) scanSlashOperator() {
	if s.matchNext('=') {
		s.addToken(SLASH_EQUAL)
	} else if s.matchNext('/') {
		s.skipSingleLineComment()
	} else if s.matchNext('*') {
		s.skipBlockComment()
	} else {
		s.addToken(SLASH)
	}
}

func (s *Scanner) scanPercentOperator() {
	if s.matchNext('=') {
		s.addToken(PERCENT_EQUAL)
	} else {
		s.addToken(PERCENT)
	}
}

// '!' folds with a directly following 'is' or 'in' keyword, so '!is T'
// and '!in r' arrive as one token while '!isEmpty()' stays a negation.
func (s *Scanner) scanBangOperator() {
	if s.matchNext('=') {
		s.addToken(BANG_EQUAL)
	} else if s.matchNext('!') {
		s.addToken(BANG_BANG)
	} else if s.matchKeyword("is") {
		s.addToken(NOT_IS)
	} else if s.matchKeyword("in") {
		s.addToken(NOT_IN)
	} else {
		s.addToken(BANG)
	}
}

func (s *Scanner) scanEqualOperator() {
	if s.matchNext('=') {
		s.addToken(EQUAL_EQUAL)
	} else {
		s.addToken(EQUAL)
	}
}

func (s *Scanner) scanLessOperator() {
	if s.matchNext('=') {
		s.addToken(LESS_EQUAL)
	} else {
		s.addToken(LESS)
	}
}

func (s *Scanner) scanGreaterOperator() {
	if s.matchNext('=') {
		s.addToken(GREATER_EQUAL)
	} else {
		s.addToken(GREATER)
	}
}

func (s *Scanner) scanAmpersandOperator() {
	if s.matchNext('&') {
		s.addToken(AND)
	} else {
		s.reportError("Unexpected character: '&'")
	}
}

func (s *Scanner) scanPipeOperator() {
	if s.matchNext('|') {
		s.addToken(OR)
	} else {
		s.reportError("Unexpected character: '|'")
	}
}

func (s *Scanner) scanQuestionOperator() {
	if s.matchNext('.') {
		s.addToken(SAFE_DOT)
	} else if s.matchNext(':') {
		s.addToken(ELVIS)
	} else {
		s.addToken(QUESTION)
	}
}

func (s *Scanner) scanDotOperator() {
	if s.matchNext('.') {
		s.addToken(RANGE)
	} else {
		s.addToken(DOT)
	}
}

func (s *Scanner) scanDefault(c byte) {
	if isDigit(c) {
		s.scanNumber()
	} else if isAlpha(c) {
		s.scanIdentifier()
	} else {
		s.reportError(fmt.Sprintf("Unexpected character: %q", c))
	}
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

// matchKeyword consumes word only if it ends at a word boundary.
func (s *Scanner) matchKeyword(word string) bool {
	end := s.current + len(word)
	if end > len(s.source) || s.source[s.current:end] != word {
		return false
	}
	if end < len(s.source) {
		next := s.source[end]
		if isAlpha(next) || isDigit(next) {
			return false
		}
	}
	for range word {
		s.advance()
	}
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) offset(i int) int { return i + s.originOffset }

func (s *Scanner) addToken(tokenType TokenType) {
	text := s.source[s.start:s.current]
	s.tokens = append(s.tokens, Token{
		Type:   tokenType,
		Lexeme: text,
		Position: Position{
			Line:   s.line,
			Column: s.startColumn,
			Offset: s.offset(s.start),
		},
	})
}

func (s *Scanner) reportError(message string) {
	s.errors = append(s.errors, ScanError{
		Message:  message,
		Position: Position{Line: s.line, Column: s.startColumn, Offset: s.offset(s.start)},
		Length:   s.current - s.start,
	})
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return unicode.IsLetter(rune(c)) || c == '_'
}

func (s *Scanner) scanIdentifier() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	s.addToken(lookupIdentifier(text))
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return IDENTIFIER
}

func (s *Scanner) scanNumber() {
	if s.source[s.start] == '0' && (s.peek() == 'x' || s.peek() == 'X') {
		s.advance()
		if !isHexDigit(s.peek()) {
			s.reportError("Invalid hex literal: expected hex digit after 0x")
			return
		}
		for isHexDigit(s.peek()) {
			s.advance()
		}
		s.addToken(HEX_NUMBER)
		return
	}
	for isDigit(s.peek()) {
		s.advance()
	}
	s.addToken(NUMBER)
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') ||
		('a' <= c && c <= 'f') ||
		('A' <= c && c <= 'F')
}

// scanString keeps template expressions intact: a '"' inside ${...} does
// not terminate the literal, and escapes are skipped as pairs. The token
// lexeme is the raw content without the surrounding quotes.
func (s *Scanner) scanString() {
	depth := 0
	for !s.isAtEnd() {
		c := s.peek()
		if c == '\\' {
			s.advance()
			if !s.isAtEnd() {
				s.advance()
			}
			continue
		}
		if c == '$' && s.peekNext() == '{' {
			s.advance()
			s.advance()
			depth++
			continue
		}
		if depth > 0 {
			if c == '{' {
				depth++
			} else if c == '}' {
				depth--
			}
			s.advance()
			continue
		}
		if c == '"' {
			break
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.reportError("Unterminated string.")
		return
	}
	s.advance()
	value := s.source[s.start+1 : s.current-1]
	s.tokens = append(s.tokens, Token{Type: STRING, Lexeme: value, Position: Position{
		Line: s.line, Column: s.startColumn, Offset: s.offset(s.start)},
	})
}

func (s *Scanner) skipSingleLineComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *Scanner) skipBlockComment() {
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			return
		}
		s.advance()
	}
	s.reportError("Unterminated block comment.")
}
