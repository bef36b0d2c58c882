package parser

import "github.com/micromingle/kotlin/internal/ast"

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) checkAt(offset int, tt TokenType) bool {
	idx := p.current + offset
	if idx >= len(p.tokens) {
		return false
	}
	return p.tokens[idx].Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, message string) Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	illegal := Token{Type: ILLEGAL, Position: p.peek().Position}
	p.advance()
	return illegal
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) errorAtCurrent(message string) {
	pos := p.peek().Position
	p.errors = append(p.errors, ParseError{
		Message:  message,
		Position: pos,
	})
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Offset: tok.Position.Offset,
		Line:   tok.Position.Line,
		Column: tok.Position.Column,
	}
}

func (p *Parser) makeEndPos(tok Token) ast.Position {
	return ast.Position{
		Offset: tok.Position.Offset + len(tok.Lexeme),
		Line:   tok.Position.Line,
		Column: tok.Position.Column + len(tok.Lexeme),
	}
}

func endOf(e ast.Node) ast.Position {
	if e == nil {
		return ast.Position{}
	}
	return e.NodeEndPos()
}

func (p *Parser) makeOpRef(tok Token) *ast.OperationRef {
	return &ast.OperationRef{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Op:     tok.Lexeme,
	}
}

// skipSemicolons eats statement separators; they are optional everywhere.
func (p *Parser) skipSemicolons() {
	for p.match(SEMICOLON) {
	}
}

func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}

		switch p.peek().Type {
		case FUN, VAL, VAR, IF, WHEN, TRY, WHILE, DO, FOR, RETURN, OBJECT, INIT:
			return
		}

		p.advance()
	}
}
