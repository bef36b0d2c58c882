package parser

import (
	"strings"

	"github.com/micromingle/kotlin/internal/ast"
)

// parseStringLiteral turns a string token into a plain literal or, when
// it interpolates expressions, a string template. Embedded expressions
// are re-scanned from their exact source positions so diagnostics inside
// templates point at the right place.
func (p *Parser) parseStringLiteral(tok Token) ast.Expr {
	content := tok.Lexeme
	if !strings.ContainsRune(content, '$') {
		return &ast.Literal{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Kind:   ast.StringLiteral,
			Value:  unescape(content),
		}
	}

	template := &ast.StringTemplate{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
	}

	// cursor tracks the absolute position of content[i]; the +1 skips the
	// opening quote
	cursor := Position{
		Line:   tok.Position.Line,
		Column: tok.Position.Column + 1,
		Offset: tok.Position.Offset + 1,
	}
	textStartPos := cursor
	var text strings.Builder

	flushText := func(endPos Position) {
		if text.Len() == 0 {
			return
		}
		template.Entries = append(template.Entries, &ast.TemplateEntry{
			Pos:    ast.Position{Line: textStartPos.Line, Column: textStartPos.Column, Offset: textStartPos.Offset},
			EndPos: ast.Position{Line: endPos.Line, Column: endPos.Column, Offset: endPos.Offset},
			Text:   text.String(),
		})
		text.Reset()
	}

	i := 0
	bump := func(c byte) {
		if c == '\n' {
			cursor.Line++
			cursor.Column = 1
		} else {
			cursor.Column++
		}
		cursor.Offset++
		i++
	}

	for i < len(content) {
		c := content[i]
		switch {
		case c == '\\' && i+1 < len(content):
			text.WriteByte(unescapeByte(content[i+1]))
			bump(c)
			bump(content[i])
		case c == '$' && i+1 < len(content) && content[i+1] == '{':
			flushText(cursor)
			bump(c)
			bump(content[i]) // '{'
			exprStart := i
			exprStartPos := cursor
			depth := 1
			for i < len(content) && depth > 0 {
				switch content[i] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				bump(content[i])
			}
			fragment := content[exprStart:i]
			if depth != 0 || strings.TrimSpace(fragment) == "" {
				p.errors = append(p.errors, ParseError{
					Message:  "malformed template expression",
					Position: exprStartPos,
				})
			} else {
				value := p.parseTemplateFragment(fragment, exprStartPos)
				template.Entries = append(template.Entries, &ast.TemplateEntry{
					Pos:    ast.Position{Line: exprStartPos.Line, Column: exprStartPos.Column, Offset: exprStartPos.Offset},
					EndPos: ast.Position{Line: cursor.Line, Column: cursor.Column, Offset: cursor.Offset},
					Value:  value,
				})
			}
			if i < len(content) {
				bump(content[i]) // '}'
			}
			textStartPos = cursor
		case c == '$' && i+1 < len(content) && (isAlpha(content[i+1])):
			flushText(cursor)
			bump(c)
			nameStart := i
			nameStartPos := cursor
			for i < len(content) && (isAlpha(content[i]) || isDigit(content[i])) {
				bump(content[i])
			}
			name := content[nameStart:i]
			template.Entries = append(template.Entries, &ast.TemplateEntry{
				Pos:    ast.Position{Line: nameStartPos.Line, Column: nameStartPos.Column, Offset: nameStartPos.Offset},
				EndPos: ast.Position{Line: cursor.Line, Column: cursor.Column, Offset: cursor.Offset},
				Value: &ast.Name{
					Pos:        ast.Position{Line: nameStartPos.Line, Column: nameStartPos.Column, Offset: nameStartPos.Offset},
					EndPos:     ast.Position{Line: cursor.Line, Column: cursor.Column, Offset: cursor.Offset},
					Identifier: name,
				},
			})
			textStartPos = cursor
		default:
			text.WriteByte(c)
			bump(c)
		}
	}
	flushText(cursor)

	return template
}

// parseTemplateFragment parses one interpolated expression in place.
func (p *Parser) parseTemplateFragment(fragment string, origin Position) ast.Expr {
	scanner := NewScannerAt(fragment, origin)
	tokens := scanner.ScanTokens()
	for _, e := range scanner.Errors() {
		p.errors = append(p.errors, ParseError{Message: e.Message, Position: e.Position, Length: e.Length})
	}
	sub := NewParser(p.filename, tokens)
	value := sub.parseExpression()
	p.errors = append(p.errors, sub.errors...)
	return value
}

func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(unescapeByte(s[i]))
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}
