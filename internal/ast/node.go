package ast

// NodeType identifies the concrete kind of a node without reflection.
type NodeType int

const (
	BAD_EXPR NodeType = iota
	LITERAL
	NAME
	THIS_EXPR
	TEMPLATE_ENTRY
	STRING_TEMPLATE
	PAREN
	LABELED
	OPERATION_REF
	BINARY
	UNARY
	ARRAY_ACCESS
	ARGUMENT
	CALL
	QUALIFIED
	IF
	WHEN
	WHEN_ENTRY
	WHEN_CONDITION_IN_RANGE
	WHEN_CONDITION_IS_PATTERN
	WHEN_CONDITION_EXPRESSION
	TRY
	CATCH_CLAUSE
	FINALLY_SECTION
	WHILE
	DO_WHILE
	FOR
	BREAK
	CONTINUE
	RETURN
	THROW
	BLOCK
	FUNCTION_LITERAL
	OBJECT_LITERAL
	IS_EXPR
	TYPE_OP
	TYPE_REF
	FUNCTION
	PARAMETER
	PROPERTY
	PROPERTY_ACCESSOR
	MULTI_DECLARATION
	MULTI_DECLARATION_ENTRY
	CLASS_INITIALIZER
	OBJECT_DECLARATION
	FILE
)

func (e *BadExpr) NodePos() Position    { return e.Pos }
func (e *BadExpr) NodeEndPos() Position { return e.EndPos }
func (*BadExpr) NodeType() NodeType     { return BAD_EXPR }

func (l *Literal) NodePos() Position    { return l.Pos }
func (l *Literal) NodeEndPos() Position { return l.EndPos }
func (*Literal) NodeType() NodeType     { return LITERAL }

func (n *Name) NodePos() Position    { return n.Pos }
func (n *Name) NodeEndPos() Position { return n.EndPos }
func (*Name) NodeType() NodeType     { return NAME }

func (t *ThisExpr) NodePos() Position    { return t.Pos }
func (t *ThisExpr) NodeEndPos() Position { return t.EndPos }
func (*ThisExpr) NodeType() NodeType     { return THIS_EXPR }

func (te *TemplateEntry) NodePos() Position    { return te.Pos }
func (te *TemplateEntry) NodeEndPos() Position { return te.EndPos }
func (*TemplateEntry) NodeType() NodeType      { return TEMPLATE_ENTRY }

func (st *StringTemplate) NodePos() Position    { return st.Pos }
func (st *StringTemplate) NodeEndPos() Position { return st.EndPos }
func (*StringTemplate) NodeType() NodeType      { return STRING_TEMPLATE }

func (p *Paren) NodePos() Position    { return p.Pos }
func (p *Paren) NodeEndPos() Position { return p.EndPos }
func (*Paren) NodeType() NodeType     { return PAREN }

func (l *Labeled) NodePos() Position    { return l.Pos }
func (l *Labeled) NodeEndPos() Position { return l.EndPos }
func (*Labeled) NodeType() NodeType     { return LABELED }

func (o *OperationRef) NodePos() Position    { return o.Pos }
func (o *OperationRef) NodeEndPos() Position { return o.EndPos }
func (*OperationRef) NodeType() NodeType     { return OPERATION_REF }

func (b *Binary) NodePos() Position    { return b.Pos }
func (b *Binary) NodeEndPos() Position { return b.EndPos }
func (*Binary) NodeType() NodeType     { return BINARY }

func (u *Unary) NodePos() Position    { return u.Pos }
func (u *Unary) NodeEndPos() Position { return u.EndPos }
func (*Unary) NodeType() NodeType     { return UNARY }

func (a *ArrayAccess) NodePos() Position    { return a.Pos }
func (a *ArrayAccess) NodeEndPos() Position { return a.EndPos }
func (*ArrayAccess) NodeType() NodeType     { return ARRAY_ACCESS }

func (a *Argument) NodePos() Position    { return a.Pos }
func (a *Argument) NodeEndPos() Position { return a.EndPos }
func (*Argument) NodeType() NodeType     { return ARGUMENT }

func (c *Call) NodePos() Position    { return c.Pos }
func (c *Call) NodeEndPos() Position { return c.EndPos }
func (*Call) NodeType() NodeType     { return CALL }

func (q *Qualified) NodePos() Position    { return q.Pos }
func (q *Qualified) NodeEndPos() Position { return q.EndPos }
func (*Qualified) NodeType() NodeType     { return QUALIFIED }

func (i *If) NodePos() Position    { return i.Pos }
func (i *If) NodeEndPos() Position { return i.EndPos }
func (*If) NodeType() NodeType     { return IF }

func (w *When) NodePos() Position    { return w.Pos }
func (w *When) NodeEndPos() Position { return w.EndPos }
func (*When) NodeType() NodeType     { return WHEN }

func (we *WhenEntry) NodePos() Position    { return we.Pos }
func (we *WhenEntry) NodeEndPos() Position { return we.EndPos }
func (*WhenEntry) NodeType() NodeType      { return WHEN_ENTRY }

func (wc *WhenConditionInRange) NodePos() Position    { return wc.Pos }
func (wc *WhenConditionInRange) NodeEndPos() Position { return wc.EndPos }
func (*WhenConditionInRange) NodeType() NodeType      { return WHEN_CONDITION_IN_RANGE }

func (wc *WhenConditionIsPattern) NodePos() Position    { return wc.Pos }
func (wc *WhenConditionIsPattern) NodeEndPos() Position { return wc.EndPos }
func (*WhenConditionIsPattern) NodeType() NodeType      { return WHEN_CONDITION_IS_PATTERN }

func (wc *WhenConditionExpression) NodePos() Position    { return wc.Pos }
func (wc *WhenConditionExpression) NodeEndPos() Position { return wc.EndPos }
func (*WhenConditionExpression) NodeType() NodeType      { return WHEN_CONDITION_EXPRESSION }

func (t *Try) NodePos() Position    { return t.Pos }
func (t *Try) NodeEndPos() Position { return t.EndPos }
func (*Try) NodeType() NodeType     { return TRY }

func (c *CatchClause) NodePos() Position    { return c.Pos }
func (c *CatchClause) NodeEndPos() Position { return c.EndPos }
func (*CatchClause) NodeType() NodeType     { return CATCH_CLAUSE }

func (f *FinallySection) NodePos() Position    { return f.Pos }
func (f *FinallySection) NodeEndPos() Position { return f.EndPos }
func (*FinallySection) NodeType() NodeType     { return FINALLY_SECTION }

func (w *While) NodePos() Position    { return w.Pos }
func (w *While) NodeEndPos() Position { return w.EndPos }
func (*While) NodeType() NodeType     { return WHILE }

func (d *DoWhile) NodePos() Position    { return d.Pos }
func (d *DoWhile) NodeEndPos() Position { return d.EndPos }
func (*DoWhile) NodeType() NodeType     { return DO_WHILE }

func (f *For) NodePos() Position    { return f.Pos }
func (f *For) NodeEndPos() Position { return f.EndPos }
func (*For) NodeType() NodeType     { return FOR }

func (b *Break) NodePos() Position    { return b.Pos }
func (b *Break) NodeEndPos() Position { return b.EndPos }
func (*Break) NodeType() NodeType     { return BREAK }

func (c *Continue) NodePos() Position    { return c.Pos }
func (c *Continue) NodeEndPos() Position { return c.EndPos }
func (*Continue) NodeType() NodeType     { return CONTINUE }

func (r *Return) NodePos() Position    { return r.Pos }
func (r *Return) NodeEndPos() Position { return r.EndPos }
func (*Return) NodeType() NodeType     { return RETURN }

func (t *Throw) NodePos() Position    { return t.Pos }
func (t *Throw) NodeEndPos() Position { return t.EndPos }
func (*Throw) NodeType() NodeType     { return THROW }

func (b *Block) NodePos() Position    { return b.Pos }
func (b *Block) NodeEndPos() Position { return b.EndPos }
func (*Block) NodeType() NodeType     { return BLOCK }

func (f *FunctionLiteral) NodePos() Position    { return f.Pos }
func (f *FunctionLiteral) NodeEndPos() Position { return f.EndPos }
func (*FunctionLiteral) NodeType() NodeType     { return FUNCTION_LITERAL }

func (o *ObjectLiteral) NodePos() Position    { return o.Pos }
func (o *ObjectLiteral) NodeEndPos() Position { return o.EndPos }
func (*ObjectLiteral) NodeType() NodeType     { return OBJECT_LITERAL }

func (i *IsExpr) NodePos() Position    { return i.Pos }
func (i *IsExpr) NodeEndPos() Position { return i.EndPos }
func (*IsExpr) NodeType() NodeType     { return IS_EXPR }

func (t *TypeOp) NodePos() Position    { return t.Pos }
func (t *TypeOp) NodeEndPos() Position { return t.EndPos }
func (*TypeOp) NodeType() NodeType     { return TYPE_OP }

func (t *TypeRef) NodePos() Position    { return t.Pos }
func (t *TypeRef) NodeEndPos() Position { return t.EndPos }
func (*TypeRef) NodeType() NodeType     { return TYPE_REF }

func (f *Function) NodePos() Position    { return f.Pos }
func (f *Function) NodeEndPos() Position { return f.EndPos }
func (*Function) NodeType() NodeType     { return FUNCTION }

func (p *Parameter) NodePos() Position    { return p.Pos }
func (p *Parameter) NodeEndPos() Position { return p.EndPos }
func (*Parameter) NodeType() NodeType     { return PARAMETER }

func (p *Property) NodePos() Position    { return p.Pos }
func (p *Property) NodeEndPos() Position { return p.EndPos }
func (*Property) NodeType() NodeType     { return PROPERTY }

func (p *PropertyAccessor) NodePos() Position    { return p.Pos }
func (p *PropertyAccessor) NodeEndPos() Position { return p.EndPos }
func (*PropertyAccessor) NodeType() NodeType     { return PROPERTY_ACCESSOR }

func (m *MultiDeclaration) NodePos() Position    { return m.Pos }
func (m *MultiDeclaration) NodeEndPos() Position { return m.EndPos }
func (*MultiDeclaration) NodeType() NodeType     { return MULTI_DECLARATION }

func (m *MultiDeclarationEntry) NodePos() Position    { return m.Pos }
func (m *MultiDeclarationEntry) NodeEndPos() Position { return m.EndPos }
func (*MultiDeclarationEntry) NodeType() NodeType     { return MULTI_DECLARATION_ENTRY }

func (c *ClassInitializer) NodePos() Position    { return c.Pos }
func (c *ClassInitializer) NodeEndPos() Position { return c.EndPos }
func (*ClassInitializer) NodeType() NodeType     { return CLASS_INITIALIZER }

func (o *ObjectDeclaration) NodePos() Position    { return o.Pos }
func (o *ObjectDeclaration) NodeEndPos() Position { return o.EndPos }
func (*ObjectDeclaration) NodeType() NodeType     { return OBJECT_DECLARATION }

func (f *File) NodePos() Position    { return f.Pos }
func (f *File) NodeEndPos() Position { return f.EndPos }
func (*File) NodeType() NodeType     { return FILE }

func (*BadExpr) exprNode()                 {}
func (*Literal) exprNode()                 {}
func (*Name) exprNode()                    {}
func (*ThisExpr) exprNode()                {}
func (*StringTemplate) exprNode()          {}
func (*Paren) exprNode()                   {}
func (*Labeled) exprNode()                 {}
func (*OperationRef) exprNode()            {}
func (*Binary) exprNode()                  {}
func (*Unary) exprNode()                   {}
func (*ArrayAccess) exprNode()             {}
func (*Call) exprNode()                    {}
func (*Qualified) exprNode()               {}
func (*If) exprNode()                      {}
func (*When) exprNode()                    {}
func (*Try) exprNode()                     {}
func (*While) exprNode()                   {}
func (*DoWhile) exprNode()                 {}
func (*For) exprNode()                     {}
func (*Break) exprNode()                   {}
func (*Continue) exprNode()                {}
func (*Return) exprNode()                  {}
func (*Throw) exprNode()                   {}
func (*Block) exprNode()                   {}
func (*FunctionLiteral) exprNode()         {}
func (*ObjectLiteral) exprNode()           {}
func (*IsExpr) exprNode()                  {}
func (*TypeOp) exprNode()                  {}

func (*Function) declNode()          {}
func (*Property) declNode()          {}
func (*MultiDeclaration) declNode()  {}
func (*ClassInitializer) declNode()  {}
func (*ObjectDeclaration) declNode() {}

func (*WhenConditionInRange) whenConditionNode()    {}
func (*WhenConditionIsPattern) whenConditionNode()  {}
func (*WhenConditionExpression) whenConditionNode() {}
