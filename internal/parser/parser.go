package parser

import (
	"github.com/micromingle/kotlin/internal/ast"
)

type ParseError struct {
	Message  string
	Position Position
	Length   int
}

type Parser struct {
	filename string
	tokens   []Token
	current  int
	errors   []ParseError
}

func NewParser(filename string, tokens []Token) *Parser {
	return &Parser{filename: filename, tokens: tokens}
}

func (p *Parser) Errors() []ParseError { return p.errors }

// ParseFile parses a whole source file of top-level declarations.
func (p *Parser) ParseFile() *ast.File {
	file := &ast.File{Pos: p.makePos(p.peek())}
	p.skipSemicolons()
	for !p.isAtEnd() {
		decl := p.parseDeclaration()
		if decl == nil {
			p.synchronize()
		} else {
			file.Declarations = append(file.Declarations, decl)
		}
		p.skipSemicolons()
	}
	file.EndPos = p.makePos(p.peek())
	return file
}

func (p *Parser) parseDeclaration() ast.Node {
	switch p.peek().Type {
	case FUN:
		return p.parseFunction()
	case VAL, VAR:
		return p.parsePropertyOrMultiDeclaration()
	case OBJECT:
		if p.checkAt(1, IDENTIFIER) {
			return p.parseObjectDeclaration()
		}
		p.errorAtCurrent("expected a name after 'object' in declaration position")
		return nil
	case INIT:
		return p.parseClassInitializer()
	default:
		p.errorAtCurrent("expected a declaration")
		return nil
	}
}

func (p *Parser) parseFunction() ast.Node {
	funTok := p.consume(FUN, "expected 'fun'")
	nameTok := p.consume(IDENTIFIER, "expected function name")

	fn := &ast.Function{
		Pos:  p.makePos(funTok),
		Name: nameTok.Lexeme,
	}

	p.consume(LEFT_PAREN, "expected '(' after function name")
	fn.Params = p.parseParameterList()
	closing := p.consume(RIGHT_PAREN, "expected ')' after parameters")

	if p.match(COLON) {
		fn.ReturnType = p.parseTypeRef()
	}

	switch {
	case p.check(LEFT_BRACE):
		fn.Body = p.parseBlock()
		fn.EndPos = endOf(fn.Body)
	case p.match(EQUAL):
		fn.Body = p.parseExpression()
		fn.EndPos = endOf(fn.Body)
	default:
		// declaration without a body
		fn.EndPos = p.makeEndPos(closing)
	}
	return fn
}

func (p *Parser) parseParameterList() []*ast.Parameter {
	var params []*ast.Parameter
	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		params = append(params, p.parseParameter())
		if !p.match(COMMA) {
			break
		}
	}
	return params
}

func (p *Parser) parseParameter() *ast.Parameter {
	nameTok := p.consume(IDENTIFIER, "expected parameter name")
	param := &ast.Parameter{
		Pos:    p.makePos(nameTok),
		EndPos: p.makeEndPos(nameTok),
		Name:   nameTok.Lexeme,
	}
	if p.match(COLON) {
		param.Type = p.parseTypeRef()
		param.EndPos = param.Type.EndPos
	}
	if p.match(EQUAL) {
		param.DefaultValue = p.parseExpression()
		param.EndPos = endOf(param.DefaultValue)
	}
	return param
}

func (p *Parser) parsePropertyOrMultiDeclaration() ast.Node {
	kindTok := p.advance() // val or var
	if p.check(LEFT_PAREN) {
		return p.parseMultiDeclaration(kindTok)
	}
	return p.parseProperty(kindTok)
}

func (p *Parser) parseProperty(kindTok Token) ast.Node {
	nameTok := p.consume(IDENTIFIER, "expected property name")
	prop := &ast.Property{
		Pos:    p.makePos(kindTok),
		EndPos: p.makeEndPos(nameTok),
		Var:    kindTok.Type == VAR,
		Name:   nameTok.Lexeme,
	}
	if p.match(COLON) {
		prop.Type = p.parseTypeRef()
		prop.EndPos = prop.Type.EndPos
	}
	switch {
	case p.match(EQUAL):
		prop.Initializer = p.parseExpression()
		prop.EndPos = endOf(prop.Initializer)
	case p.match(BY):
		prop.Delegate = p.parseExpression()
		prop.EndPos = endOf(prop.Delegate)
	}
	for p.check(GET) || p.check(SET) {
		acc := p.parsePropertyAccessor()
		prop.Accessors = append(prop.Accessors, acc)
		prop.EndPos = acc.EndPos
	}
	return prop
}

func (p *Parser) parsePropertyAccessor() *ast.PropertyAccessor {
	kindTok := p.advance() // get or set
	acc := &ast.PropertyAccessor{
		Pos:    p.makePos(kindTok),
		Getter: kindTok.Type == GET,
	}
	p.consume(LEFT_PAREN, "expected '(' after accessor keyword")
	if !acc.Getter && p.check(IDENTIFIER) {
		acc.Params = append(acc.Params, p.parseParameter())
	}
	closing := p.consume(RIGHT_PAREN, "expected ')' in accessor")
	switch {
	case p.check(LEFT_BRACE):
		acc.Body = p.parseBlock()
		acc.EndPos = endOf(acc.Body)
	case p.match(EQUAL):
		acc.Body = p.parseExpression()
		acc.EndPos = endOf(acc.Body)
	default:
		acc.EndPos = p.makeEndPos(closing)
	}
	return acc
}

func (p *Parser) parseMultiDeclaration(kindTok Token) ast.Node {
	decl := &ast.MultiDeclaration{Pos: p.makePos(kindTok)}
	p.consume(LEFT_PAREN, "expected '(' in destructuring declaration")
	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		entryTok := p.consume(IDENTIFIER, "expected component name")
		decl.Entries = append(decl.Entries, &ast.MultiDeclarationEntry{
			Pos:    p.makePos(entryTok),
			EndPos: p.makeEndPos(entryTok),
			Name:   entryTok.Lexeme,
		})
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(RIGHT_PAREN, "expected ')' in destructuring declaration")
	p.consume(EQUAL, "expected '=' after destructuring components")
	decl.Initializer = p.parseExpression()
	decl.EndPos = endOf(decl.Initializer)
	return decl
}

func (p *Parser) parseObjectDeclaration() ast.Node {
	objTok := p.consume(OBJECT, "expected 'object'")
	p.consume(IDENTIFIER, "expected object name")
	decl := p.parseObjectBody(p.makePos(objTok))
	return decl
}

// parseObjectBody parses the braced member list shared by named objects
// and object literals.
func (p *Parser) parseObjectBody(pos ast.Position) *ast.ObjectDeclaration {
	decl := &ast.ObjectDeclaration{Pos: pos}
	p.consume(LEFT_BRACE, "expected '{' to open object body")
	p.skipSemicolons()
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		member := p.parseDeclaration()
		if member == nil {
			p.synchronize()
		} else {
			decl.Declarations = append(decl.Declarations, member)
		}
		p.skipSemicolons()
	}
	closing := p.consume(RIGHT_BRACE, "expected '}' to close object body")
	decl.EndPos = p.makeEndPos(closing)
	return decl
}

func (p *Parser) parseClassInitializer() ast.Node {
	initTok := p.consume(INIT, "expected 'init'")
	body := p.parseBlock()
	return &ast.ClassInitializer{
		Pos:    p.makePos(initTok),
		EndPos: endOf(body),
		Body:   body,
	}
}

func (p *Parser) parseTypeRef() *ast.TypeRef {
	nameTok := p.consume(IDENTIFIER, "expected type name")
	ref := &ast.TypeRef{
		Pos:    p.makePos(nameTok),
		EndPos: p.makeEndPos(nameTok),
		Name:   nameTok.Lexeme,
	}
	if p.check(LESS) {
		ref.Name += p.parseTypeArguments()
		ref.EndPos = p.makeEndPos(p.previous())
	}
	if p.match(QUESTION) {
		ref.Name += "?"
		ref.EndPos = p.makeEndPos(p.previous())
	}
	return ref
}

// parseTypeArguments flattens generic arguments back into the type name;
// the lowering never inspects type structure.
func (p *Parser) parseTypeArguments() string {
	text := "<"
	p.consume(LESS, "expected '<'")
	for !p.check(GREATER) && !p.isAtEnd() {
		arg := p.parseTypeRef()
		text += arg.Name
		if p.match(COMMA) {
			text += ", "
			continue
		}
		break
	}
	p.consume(GREATER, "expected '>' to close type arguments")
	return text + ">"
}

// parseBlock parses a braced statement list.
func (p *Parser) parseBlock() *ast.Block {
	opening := p.consume(LEFT_BRACE, "expected '{'")
	block := &ast.Block{Pos: p.makePos(opening)}
	p.skipSemicolons()
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
		} else {
			block.Statements = append(block.Statements, stmt)
		}
		p.skipSemicolons()
	}
	closing := p.consume(RIGHT_BRACE, "expected '}'")
	block.EndPos = p.makeEndPos(closing)
	return block
}

func (p *Parser) parseStatement() ast.Node {
	switch p.peek().Type {
	case VAL, VAR:
		return p.parsePropertyOrMultiDeclaration()
	case FUN:
		return p.parseFunction()
	case OBJECT:
		if p.checkAt(1, IDENTIFIER) {
			return p.parseObjectDeclaration()
		}
		return p.parseExpression()
	default:
		return p.parseExpression()
	}
}
