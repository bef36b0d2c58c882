package parser

import (
	"github.com/micromingle/kotlin/internal/ast"
)

var binaryPrecedence = map[TokenType]int{
	EQUAL: 1, PLUS_EQUAL: 1, MINUS_EQUAL: 1, STAR_EQUAL: 1, SLASH_EQUAL: 1, PERCENT_EQUAL: 1,
	ELVIS: 2,
	OR:    3,
	AND:   4,
	EQUAL_EQUAL: 5, BANG_EQUAL: 5,
	LESS: 6, LESS_EQUAL: 6, GREATER: 6, GREATER_EQUAL: 6,
	IN: 7, NOT_IN: 7, IS: 7, NOT_IS: 7,
	RANGE: 8,
	PLUS:  9, MINUS: 9,
	STAR: 10, SLASH: 10, PERCENT: 10,
}

// rightAssociative marks the precedence levels that bind to the right.
func rightAssociative(prec int) bool {
	return prec <= 2 // assignments and elvis
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrattExpr(1)
}

func (p *Parser) parsePrattExpr(minPrec int) ast.Expr {
	expr := p.parsePrefixExpr()

	for {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Type]
		if !ok || prec < minPrec {
			break
		}

		p.advance()

		// type tests read a type name, not a right operand
		if tok.Type == IS || tok.Type == NOT_IS {
			typeRef := p.parseTypeRef()
			expr = &ast.IsExpr{
				Pos:      expr.NodePos(),
				EndPos:   typeRef.EndPos,
				Left:     expr,
				Not:      tok.Type == NOT_IS,
				TypeName: typeRef.Name,
			}
			continue
		}

		nextPrec := prec + 1
		if rightAssociative(prec) {
			nextPrec = prec
		}
		right := p.parsePrattExpr(nextPrec)

		expr = &ast.Binary{
			Pos:    expr.NodePos(),
			EndPos: endOf(right),
			Left:   expr,
			OpRef:  p.makeOpRef(tok),
			Right:  right,
		}
	}

	return expr
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	if p.match(MINUS, PLUS, BANG, INCREMENT, DECREMENT) {
		op := p.previous()
		base := p.parsePrefixExpr()
		return &ast.Unary{
			Pos:    p.makePos(op),
			EndPos: endOf(base),
			OpRef:  p.makeOpRef(op),
			Base:   base,
		}
	}
	return p.parsePostfixExpr(p.parsePrimaryExpr())
}

func (p *Parser) parsePostfixExpr(expr ast.Expr) ast.Expr {
	for {
		switch {
		case p.check(DOT) || p.check(SAFE_DOT):
			safe := p.peek().Type == SAFE_DOT
			p.advance()
			expr = p.parseSelector(expr, safe)

		case p.check(LEFT_PAREN):
			expr = p.parseCall(expr)

		case p.check(LEFT_BRACE) && isCalleeLike(expr):
			lambda := p.parseFunctionLiteral()
			expr = &ast.Call{
				Pos:        expr.NodePos(),
				EndPos:     endOf(lambda),
				Callee:     expr,
				LambdaArgs: []ast.Expr{lambda},
			}

		case p.check(LEFT_BRACKET):
			expr = p.parseIndexAccess(expr)

		case p.check(INCREMENT) || p.check(DECREMENT) || p.check(BANG_BANG):
			op := p.advance()
			expr = &ast.Unary{
				Pos:     expr.NodePos(),
				EndPos:  p.makeEndPos(op),
				OpRef:   p.makeOpRef(op),
				Base:    expr,
				Postfix: true,
			}

		case p.check(AS):
			p.advance()
			op := "as"
			if p.match(QUESTION) {
				op = "as?"
			}
			typeRef := p.parseTypeRef()
			expr = &ast.TypeOp{
				Pos:      expr.NodePos(),
				EndPos:   typeRef.EndPos,
				Left:     expr,
				Op:       op,
				TypeName: typeRef.Name,
			}

		default:
			return expr
		}
	}
}

// parseSelector parses the member after '.' or '?.': a plain name or a
// member call. The call keeps the name as its callee, wrapped in the
// qualified expression.
func (p *Parser) parseSelector(receiver ast.Expr, safe bool) ast.Expr {
	nameTok := p.consume(IDENTIFIER, "expected member name after '.'")
	var selector ast.Expr = &ast.Name{
		Pos:        p.makePos(nameTok),
		EndPos:     p.makeEndPos(nameTok),
		Identifier: nameTok.Lexeme,
	}
	if p.check(LEFT_PAREN) {
		selector = p.parseCall(selector)
	} else if p.check(LEFT_BRACE) {
		lambda := p.parseFunctionLiteral()
		selector = &ast.Call{
			Pos:        selector.NodePos(),
			EndPos:     endOf(lambda),
			Callee:     selector,
			LambdaArgs: []ast.Expr{lambda},
		}
	}
	if p.check(LEFT_BRACKET) {
		selector = p.parseIndexAccess(selector)
	}
	return &ast.Qualified{
		Pos:      receiver.NodePos(),
		EndPos:   endOf(selector),
		Receiver: receiver,
		Selector: selector,
		Safe:     safe,
	}
}

func isCalleeLike(e ast.Expr) bool {
	_, ok := e.(*ast.Name)
	return ok
}

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	p.consume(LEFT_PAREN, "expected '('")
	call := &ast.Call{
		Pos:    callee.NodePos(),
		Callee: callee,
	}
	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		call.Args = append(call.Args, p.parseArgument())
		if !p.match(COMMA) {
			break
		}
	}
	closing := p.consume(RIGHT_PAREN, "expected ')' after arguments")
	call.EndPos = p.makeEndPos(closing)
	if p.check(LEFT_BRACE) {
		lambda := p.parseFunctionLiteral()
		call.LambdaArgs = append(call.LambdaArgs, lambda)
		call.EndPos = endOf(lambda)
	}
	return call
}

func (p *Parser) parseArgument() *ast.Argument {
	start := p.peek()
	arg := &ast.Argument{Pos: p.makePos(start)}
	if p.check(IDENTIFIER) && p.checkAt(1, EQUAL) {
		nameTok := p.advance()
		p.advance() // '='
		arg.Name = nameTok.Lexeme
	}
	arg.Value = p.parseExpression()
	arg.EndPos = endOf(arg.Value)
	return arg
}

func (p *Parser) parseIndexAccess(array ast.Expr) ast.Expr {
	p.consume(LEFT_BRACKET, "expected '['")
	access := &ast.ArrayAccess{
		Pos:   array.NodePos(),
		Array: array,
	}
	for !p.check(RIGHT_BRACKET) && !p.isAtEnd() {
		access.Indices = append(access.Indices, p.parseExpression())
		if !p.match(COMMA) {
			break
		}
	}
	closing := p.consume(RIGHT_BRACKET, "expected ']' after indices")
	access.EndPos = p.makeEndPos(closing)
	return access
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case NUMBER, HEX_NUMBER:
		p.advance()
		return &ast.Literal{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Kind: ast.IntLiteral, Value: tok.Lexeme}
	case TRUE, FALSE:
		p.advance()
		return &ast.Literal{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Kind: ast.BooleanLiteral, Value: tok.Lexeme}
	case NULL:
		p.advance()
		return &ast.Literal{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Kind: ast.NullLiteral, Value: tok.Lexeme}
	case STRING:
		p.advance()
		return p.parseStringLiteral(tok)
	case THIS:
		p.advance()
		this := &ast.ThisExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}
		if p.check(AT) && p.checkAt(1, IDENTIFIER) {
			p.advance()
			labelTok := p.advance()
			this.Label = labelTok.Lexeme
			this.EndPos = p.makeEndPos(labelTok)
		}
		return this
	case IDENTIFIER:
		if p.checkAt(1, AT) {
			return p.parseLabeledExpr()
		}
		p.advance()
		return &ast.Name{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Identifier: tok.Lexeme}
	case LEFT_PAREN:
		p.advance()
		inner := p.parseExpression()
		closing := p.consume(RIGHT_PAREN, "expected ')'")
		return &ast.Paren{Pos: p.makePos(tok), EndPos: p.makeEndPos(closing), Inner: inner}
	case LEFT_BRACE:
		return p.parseFunctionLiteral()
	case IF:
		return p.parseIfExpr()
	case WHEN:
		return p.parseWhenExpr()
	case TRY:
		return p.parseTryExpr()
	case WHILE:
		return p.parseWhileExpr()
	case DO:
		return p.parseDoWhileExpr()
	case FOR:
		return p.parseForExpr()
	case BREAK:
		p.advance()
		jump := &ast.Break{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}
		jump.Label, jump.EndPos = p.parseOptionalJumpLabel(jump.EndPos)
		return jump
	case CONTINUE:
		p.advance()
		jump := &ast.Continue{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}
		jump.Label, jump.EndPos = p.parseOptionalJumpLabel(jump.EndPos)
		return jump
	case RETURN:
		return p.parseReturnExpr()
	case THROW:
		p.advance()
		value := p.parseExpression()
		return &ast.Throw{Pos: p.makePos(tok), EndPos: endOf(value), Value: value}
	case OBJECT:
		p.advance()
		body := p.parseObjectBody(p.makePos(tok))
		return &ast.ObjectLiteral{Pos: p.makePos(tok), EndPos: body.EndPos, Declaration: body}
	default:
		p.errorAtCurrent("expected an expression")
		p.advance()
		return &ast.BadExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}
	}
}

func (p *Parser) parseLabeledExpr() ast.Expr {
	labelTok := p.advance()
	p.consume(AT, "expected '@' after label")
	base := p.parseExpression()
	return &ast.Labeled{
		Pos:    p.makePos(labelTok),
		EndPos: endOf(base),
		Label:  labelTok.Lexeme,
		Base:   base,
	}
}

func (p *Parser) parseOptionalJumpLabel(end ast.Position) (string, ast.Position) {
	if p.check(AT) && p.checkAt(1, IDENTIFIER) {
		p.advance()
		labelTok := p.advance()
		return labelTok.Lexeme, p.makeEndPos(labelTok)
	}
	return "", end
}

func (p *Parser) parseReturnExpr() ast.Expr {
	tok := p.advance()
	ret := &ast.Return{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}
	ret.Label, ret.EndPos = p.parseOptionalJumpLabel(ret.EndPos)
	if p.canStartExpression() {
		ret.Value = p.parseExpression()
		ret.EndPos = endOf(ret.Value)
	}
	return ret
}

// canStartExpression decides whether a return carries a value.
func (p *Parser) canStartExpression() bool {
	switch p.peek().Type {
	case SEMICOLON, RIGHT_BRACE, RIGHT_PAREN, RIGHT_BRACKET, COMMA, EOF, ELSE, CATCH, FINALLY:
		return false
	}
	return true
}

// parseControlBody parses a branch or loop body: a block or a single
// expression.
func (p *Parser) parseControlBody() ast.Expr {
	if p.check(LEFT_BRACE) {
		return p.parseBlock()
	}
	return p.parseExpression()
}

func (p *Parser) parseIfExpr() ast.Expr {
	tok := p.advance()
	p.consume(LEFT_PAREN, "expected '(' after 'if'")
	cond := p.parseExpression()
	p.consume(RIGHT_PAREN, "expected ')' after condition")
	then := p.parseControlBody()
	expr := &ast.If{Pos: p.makePos(tok), EndPos: endOf(then), Condition: cond, Then: then}
	p.skipSemicolons()
	if p.match(ELSE) {
		expr.Else = p.parseControlBody()
		expr.EndPos = endOf(expr.Else)
	}
	return expr
}

func (p *Parser) parseWhileExpr() ast.Expr {
	tok := p.advance()
	p.consume(LEFT_PAREN, "expected '(' after 'while'")
	cond := p.parseExpression()
	p.consume(RIGHT_PAREN, "expected ')' after condition")
	body := p.parseControlBody()
	return &ast.While{Pos: p.makePos(tok), EndPos: endOf(body), Condition: cond, Body: body}
}

func (p *Parser) parseDoWhileExpr() ast.Expr {
	tok := p.advance()
	body := p.parseControlBody()
	p.consume(WHILE, "expected 'while' after do-while body")
	p.consume(LEFT_PAREN, "expected '(' after 'while'")
	cond := p.parseExpression()
	closing := p.consume(RIGHT_PAREN, "expected ')' after condition")
	return &ast.DoWhile{Pos: p.makePos(tok), EndPos: p.makeEndPos(closing), Body: body, Condition: cond}
}

func (p *Parser) parseForExpr() ast.Expr {
	tok := p.advance()
	loop := &ast.For{Pos: p.makePos(tok)}
	p.consume(LEFT_PAREN, "expected '(' after 'for'")
	if p.check(LEFT_PAREN) {
		multi := &ast.MultiDeclaration{Pos: p.makePos(p.peek())}
		p.advance()
		for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
			entryTok := p.consume(IDENTIFIER, "expected component name")
			multi.Entries = append(multi.Entries, &ast.MultiDeclarationEntry{
				Pos:    p.makePos(entryTok),
				EndPos: p.makeEndPos(entryTok),
				Name:   entryTok.Lexeme,
			})
			if !p.match(COMMA) {
				break
			}
		}
		closing := p.consume(RIGHT_PAREN, "expected ')' after components")
		multi.EndPos = p.makeEndPos(closing)
		loop.MultiParameter = multi
	} else {
		loop.Parameter = p.parseParameter()
	}
	p.consume(IN, "expected 'in' in for loop")
	loop.RangeExpr = p.parseExpression()
	p.consume(RIGHT_PAREN, "expected ')' after loop range")
	loop.Body = p.parseControlBody()
	loop.EndPos = endOf(loop.Body)
	return loop
}

func (p *Parser) parseWhenExpr() ast.Expr {
	tok := p.advance()
	expr := &ast.When{Pos: p.makePos(tok)}
	if p.match(LEFT_PAREN) {
		expr.Subject = p.parseExpression()
		p.consume(RIGHT_PAREN, "expected ')' after when subject")
	}
	p.consume(LEFT_BRACE, "expected '{' to open when body")
	p.skipSemicolons()
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		expr.Entries = append(expr.Entries, p.parseWhenEntry())
		p.skipSemicolons()
	}
	closing := p.consume(RIGHT_BRACE, "expected '}' to close when body")
	expr.EndPos = p.makeEndPos(closing)
	return expr
}

func (p *Parser) parseWhenEntry() *ast.WhenEntry {
	entry := &ast.WhenEntry{Pos: p.makePos(p.peek())}
	if p.match(ELSE) {
		entry.IsElse = true
	} else {
		for {
			entry.Conditions = append(entry.Conditions, p.parseWhenCondition())
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(ARROW, "expected '->' in when entry")
	entry.Body = p.parseControlBody()
	entry.EndPos = endOf(entry.Body)
	return entry
}

func (p *Parser) parseWhenCondition() ast.WhenCondition {
	tok := p.peek()
	switch tok.Type {
	case IN, NOT_IN:
		p.advance()
		rangeExpr := p.parseExpression()
		return &ast.WhenConditionInRange{
			Pos:       p.makePos(tok),
			EndPos:    endOf(rangeExpr),
			Not:       tok.Type == NOT_IN,
			RangeExpr: rangeExpr,
			OpRef:     p.makeOpRef(tok),
		}
	case IS, NOT_IS:
		p.advance()
		typeRef := p.parseTypeRef()
		return &ast.WhenConditionIsPattern{
			Pos:      p.makePos(tok),
			EndPos:   typeRef.EndPos,
			Not:      tok.Type == NOT_IS,
			TypeName: typeRef.Name,
		}
	default:
		value := p.parseExpression()
		return &ast.WhenConditionExpression{
			Pos:    value.NodePos(),
			EndPos: endOf(value),
			Value:  value,
		}
	}
}

func (p *Parser) parseTryExpr() ast.Expr {
	tok := p.advance()
	expr := &ast.Try{Pos: p.makePos(tok)}
	expr.TryBlock = p.parseBlock()
	expr.EndPos = endOf(expr.TryBlock)
	for p.check(CATCH) {
		catchTok := p.advance()
		p.consume(LEFT_PAREN, "expected '(' after 'catch'")
		param := p.parseParameter()
		p.consume(RIGHT_PAREN, "expected ')' after catch parameter")
		body := p.parseBlock()
		expr.Catches = append(expr.Catches, &ast.CatchClause{
			Pos:       p.makePos(catchTok),
			EndPos:    endOf(body),
			Parameter: param,
			Body:      body,
		})
		expr.EndPos = endOf(body)
	}
	if p.check(FINALLY) {
		finallyTok := p.advance()
		body := p.parseBlock()
		expr.Finally = &ast.FinallySection{
			Pos:    p.makePos(finallyTok),
			EndPos: endOf(body),
			Body:   body,
		}
		expr.EndPos = endOf(body)
	}
	return expr
}

// parseFunctionLiteral parses { params -> statements } or { statements }.
func (p *Parser) parseFunctionLiteral() ast.Expr {
	opening := p.consume(LEFT_BRACE, "expected '{' to open function literal")
	lit := &ast.FunctionLiteral{Pos: p.makePos(opening)}
	lit.Params = p.tryParseLambdaParameters()

	body := &ast.Block{Pos: p.makePos(p.peek())}
	p.skipSemicolons()
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
		} else {
			body.Statements = append(body.Statements, stmt)
		}
		p.skipSemicolons()
	}
	closing := p.consume(RIGHT_BRACE, "expected '}' to close function literal")
	body.EndPos = p.makeEndPos(closing)
	lit.Body = body
	lit.EndPos = p.makeEndPos(closing)
	return lit
}

// tryParseLambdaParameters backtracks unless an explicit parameter list
// followed by '->' is present.
func (p *Parser) tryParseLambdaParameters() []*ast.Parameter {
	save := p.current
	saveErrors := len(p.errors)
	var params []*ast.Parameter
	for p.check(IDENTIFIER) {
		params = append(params, p.parseParameter())
		if !p.match(COMMA) {
			break
		}
	}
	if len(params) > 0 && p.match(ARROW) {
		return params
	}
	p.current = save
	p.errors = p.errors[:saveErrors]
	return nil
}
